package types

import "strings"

// ManifestID names a workload manifest (the manifest directory name).
// Identity and ordering are ordinal and case-insensitive.
type ManifestID string

func (id ManifestID) String() string {
	return string(id)
}

// Key returns the case-folded form used for map lookups.
func (id ManifestID) Key() string {
	return strings.ToUpper(string(id))
}

func (id ManifestID) Equal(other ManifestID) bool {
	return id.Key() == other.Key()
}

// CompareManifestIDs orders ids ordinally after upper-casing both sides.
func CompareManifestIDs(a ManifestID, b ManifestID) int {
	return strings.Compare(a.Key(), b.Key())
}
