package types

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

type ManifestVersionBand struct {
	Version     ManifestVersion
	FeatureBand SdkFeatureBand
}

// WorkloadSet is a coherent bundle pinning manifest versions. Version is
// the name of the workload set directory it was read from.
type WorkloadSet struct {
	Version               string
	IsBaselineWorkloadSet bool
	ManifestVersions      map[ManifestID]ManifestVersionBand
}

func NewWorkloadSet(version string) WorkloadSet {
	return WorkloadSet{
		Version:          version,
		ManifestVersions: map[ManifestID]ManifestVersionBand{},
	}
}

// Set replaces any entry whose id matches case-insensitively.
func (s *WorkloadSet) Set(id ManifestID, entry ManifestVersionBand) {
	if s.ManifestVersions == nil {
		s.ManifestVersions = map[ManifestID]ManifestVersionBand{}
	}
	for existing := range s.ManifestVersions {
		if existing.Equal(id) {
			delete(s.ManifestVersions, existing)
		}
	}
	s.ManifestVersions[id] = entry
}

func (s WorkloadSet) Lookup(id ManifestID) (ManifestVersionBand, bool) {
	if entry, ok := s.ManifestVersions[id]; ok {
		return entry, true
	}
	for existing, entry := range s.ManifestVersions {
		if existing.Equal(id) {
			return entry, true
		}
	}
	return ManifestVersionBand{}, false
}

func (s WorkloadSet) Len() int {
	return len(s.ManifestVersions)
}

// Specifiers lists the pinned manifests ordered by id.
func (s WorkloadSet) Specifiers() []ManifestSpecifier {
	out := make([]ManifestSpecifier, 0, len(s.ManifestVersions))
	for id, entry := range s.ManifestVersions {
		out = append(out, ManifestSpecifier{ID: id, Version: entry.Version, FeatureBand: entry.FeatureBand})
	}
	sort.Slice(out, func(i, j int) bool {
		return CompareManifestIDs(out[i].ID, out[j].ID) < 0
	})
	return out
}

// MergeDictionary adds "id": "version/band" entries, overwriting existing
// ids. Entries without a band use defaultBand.
func (s *WorkloadSet) MergeDictionary(entries map[string]string, defaultBand SdkFeatureBand) error {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		entry, err := ParseManifestVersionBand(entries[key], defaultBand)
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid workload set entry for %s", key)).
				WithCause(err)
		}
		s.Set(ManifestID(key), entry)
	}
	return nil
}

// Dictionary renders the set in its on-disk "version/band" form.
func (s WorkloadSet) Dictionary() map[string]string {
	out := make(map[string]string, len(s.ManifestVersions))
	for id, entry := range s.ManifestVersions {
		out[id.String()] = entry.Version.String() + "/" + entry.FeatureBand.String()
	}
	return out
}

func WorkloadSetFromDictionary(version string, entries map[string]string, defaultBand SdkFeatureBand) (WorkloadSet, error) {
	set := NewWorkloadSet(version)
	if err := set.MergeDictionary(entries, defaultBand); err != nil {
		return WorkloadSet{}, err
	}
	return set, nil
}

func ParseManifestVersionBand(value string, defaultBand SdkFeatureBand) (ManifestVersionBand, error) {
	parts := strings.SplitN(value, "/", 2)
	version, err := ParseManifestVersion(parts[0])
	if err != nil {
		return ManifestVersionBand{}, err
	}
	band := defaultBand
	if len(parts) > 1 {
		band, err = NewSdkFeatureBand(parts[1])
		if err != nil {
			return ManifestVersionBand{}, err
		}
	}
	return ManifestVersionBand{Version: version, FeatureBand: band}, nil
}

// ToWorkloadSetPackageVersion decomposes a workload set version
// ({major}.{minor}.{patch}[.{setPatch}][-pre|+build]) into the version of
// the package that carries it and the SDK feature band it belongs to.
// A fourth component becomes the package patch and drops any prerelease
// label from the band; without it the package patch is 0 and the band
// keeps the prerelease label.
func ToWorkloadSetPackageVersion(workloadSetVersion string) (string, SdkFeatureBand, error) {
	core := workloadSetVersion
	suffix := ""
	if idx := strings.IndexAny(workloadSetVersion, "-+"); idx >= 0 {
		core = workloadSetVersion[:idx]
		suffix = workloadSetVersion[idx:]
	}
	components := strings.Split(core, ".")
	if len(components) < 3 || len(components) > 4 {
		return "", SdkFeatureBand{}, invalidWorkloadSetVersion(workloadSetVersion, nil)
	}
	for _, component := range components {
		if _, err := strconv.ParseUint(component, 10, 64); err != nil {
			return "", SdkFeatureBand{}, invalidWorkloadSetVersion(workloadSetVersion, err)
		}
	}
	major, minor, patch := components[0], components[1], components[2]

	var (
		band SdkFeatureBand
		err  error
	)
	packageVersion := major + "." + patch + "."
	if len(components) == 3 {
		packageVersion += "0"
		band, err = NewSdkFeatureBand(workloadSetVersion)
	} else {
		packageVersion += components[3]
		band, err = NewSdkFeatureBand(major + "." + minor + "." + patch)
	}
	if err != nil {
		return "", SdkFeatureBand{}, invalidWorkloadSetVersion(workloadSetVersion, err)
	}
	return packageVersion + suffix, band, nil
}

// WorkloadSetFeatureBand returns the SDK feature band a workload set
// version belongs to.
func WorkloadSetFeatureBand(workloadSetVersion string) (SdkFeatureBand, error) {
	_, band, err := ToWorkloadSetPackageVersion(workloadSetVersion)
	return band, err
}

func invalidWorkloadSetVersion(version string, cause error) error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid workload set version %q", version))
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return builder
}
