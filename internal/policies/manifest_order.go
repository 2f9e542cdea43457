package policies

import (
	"sort"

	"workload-manifests/internal/types"
)

// ManifestOrder ranks manifests: ids from the known-manifest list come
// first in list order, everything else follows alphabetically.
type ManifestOrder struct {
	rank map[string]int
}

func NewManifestOrder(known []types.ManifestID) ManifestOrder {
	order := ManifestOrder{rank: make(map[string]int, len(known))}
	for idx, id := range known {
		if _, ok := order.rank[id.Key()]; ok {
			continue
		}
		order.rank[id.Key()] = idx
	}
	return order
}

func (o ManifestOrder) Rank(id types.ManifestID) (int, bool) {
	idx, ok := o.rank[id.Key()]
	return idx, ok
}

func (o ManifestOrder) Less(a types.ManifestID, b types.ManifestID) bool {
	rankA, knownA := o.Rank(a)
	rankB, knownB := o.Rank(b)
	switch {
	case knownA && knownB && rankA != rankB:
		return rankA < rankB
	case knownA && !knownB:
		return true
	case !knownA && knownB:
		return false
	}
	return types.CompareManifestIDs(a, b) < 0
}

func (o ManifestOrder) Sort(manifests []types.ReadableWorkloadManifest) {
	sort.SliceStable(manifests, func(i, j int) bool {
		return o.Less(types.ManifestID(manifests[i].ManifestID), types.ManifestID(manifests[j].ManifestID))
	})
}
