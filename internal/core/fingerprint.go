package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"workload-manifests/internal/types"
)

// manifestFingerprint derives a workload version from the resolved
// manifest set: "<band>-manifests.<first 4 bytes of sha256, hex>" over
// "id.band.version" entries sorted by id and joined with ";".
func manifestFingerprint(band types.SdkFeatureBand, manifests []types.ReadableWorkloadManifest) string {
	ordered := append([]types.ReadableWorkloadManifest(nil), manifests...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return types.CompareManifestIDs(types.ManifestID(ordered[i].ManifestID), types.ManifestID(ordered[j].ManifestID)) < 0
	})
	entries := make([]string, 0, len(ordered))
	for _, manifest := range ordered {
		entries = append(entries, fmt.Sprintf("%s.%s.%s", manifest.ManifestID, manifest.ManifestFeatureBand, manifest.ManifestVersion))
	}
	sum := sha256.Sum256([]byte(strings.Join(entries, ";")))
	return fmt.Sprintf("%s-manifests.%s", band.StringWithoutPrerelease(), hex.EncodeToString(sum[:4]))
}
