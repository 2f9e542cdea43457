package core

import (
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"workload-manifests/internal/policies"
	"workload-manifests/internal/ports"
	"workload-manifests/internal/types"
)

type assemblyInputs struct {
	roots []string
	band  types.SdkFeatureBand
	known []types.ManifestID
	order policies.ManifestOrder
}

// manifestTable keeps one manifest per id; a later add replaces the whole
// entry for a case-insensitively equal id.
type manifestTable struct {
	byKey map[string]types.ReadableWorkloadManifest
}

func newManifestTable() manifestTable {
	return manifestTable{byKey: map[string]types.ReadableWorkloadManifest{}}
}

func (t manifestTable) add(manifest types.ReadableWorkloadManifest) {
	t.byKey[types.ManifestID(manifest.ManifestID).Key()] = manifest
}

func (t manifestTable) has(id types.ManifestID) bool {
	_, ok := t.byKey[id.Key()]
	return ok
}

func (t manifestTable) values() []types.ReadableWorkloadManifest {
	out := make([]types.ReadableWorkloadManifest, 0, len(t.byKey))
	for _, manifest := range t.byKey {
		out = append(out, manifest)
	}
	return out
}

// assembleManifests layers, in order: the directory scan of the current
// band, the active workload set, install-state overrides, and a fallback
// to older bands for known ids that are still missing. Any missing
// workload set or install-state manifest fails the whole assembly.
func assembleManifests(scanner ports.ManifestScannerPort, in assemblyInputs, res resolution) ([]types.ReadableWorkloadManifest, error) {
	if res.deferred != nil {
		return nil, res.deferred
	}
	table := newManifestTable()

	scanned, err := scanner.ScanFeatureBand(in.roots, in.band)
	if err != nil {
		return nil, err
	}
	for _, manifest := range scanned {
		version := manifest.Version
		if version == "" {
			version = filepath.Base(manifest.Directory)
		}
		table.add(scanner.Readable(manifest.ID, manifest.Directory, in.band.String(), version))
	}

	if res.workloadSet != nil {
		for _, spec := range res.workloadSet.Specifiers() {
			dir, ok := scanner.FindSpecifier(in.roots, spec)
			if !ok {
				return nil, policies.ManifestFromWorkloadSetNotFound(spec.String(), res.workloadSet.Version)
			}
			table.add(scanner.Readable(spec.ID, dir, spec.FeatureBand.String(), spec.Version.String()))
		}
	}

	if res.useInstallStateManifests() {
		for _, spec := range res.installStateManifests.Specifiers() {
			dir, ok := scanner.FindSpecifier(in.roots, spec)
			if !ok {
				return nil, policies.ManifestFromInstallStateNotFound(spec.String(), res.installStatePath)
			}
			table.add(scanner.Readable(spec.ID, dir, spec.FeatureBand.String(), spec.Version.String()))
		}
	}

	for _, id := range in.known {
		if table.has(id) {
			continue
		}
		manifest, ok, err := fallbackForMissingManifest(scanner, in, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		log.Debug().
			Str("manifest", id.String()).
			Str("band", manifest.ManifestFeatureBand).
			Msg("using manifest from an earlier feature band")
		table.add(manifest)
	}

	manifests := table.values()
	in.order.Sort(manifests)
	return manifests, nil
}

// fallbackForMissingManifest searches the last manifest root only, newest
// eligible band first. Eligible bands are older than the current band or
// equal to its release form.
func fallbackForMissingManifest(scanner ports.ManifestScannerPort, in assemblyInputs, id types.ManifestID) (types.ReadableWorkloadManifest, bool, error) {
	if len(in.roots) == 0 {
		return types.ReadableWorkloadManifest{}, false, nil
	}
	root := in.roots[len(in.roots)-1]
	bands, err := scanner.FeatureBands(root)
	if err != nil {
		return types.ReadableWorkloadManifest{}, false, err
	}

	var candidates []types.SdkFeatureBand
	for _, band := range bands {
		if band.Less(in.band) || in.band.StringWithoutPrerelease() == band.String() {
			candidates = append(candidates, band)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Compare(candidates[j]) > 0
	})

	for _, band := range candidates {
		resolved, ok := scanner.ResolveManifestDirectory(filepath.Join(root, band.String(), id.String()))
		if !ok {
			continue
		}
		return scanner.Readable(id, resolved.Directory, band.String(), filepath.Base(resolved.Directory)), true, nil
	}
	return types.ReadableWorkloadManifest{}, false, nil
}
