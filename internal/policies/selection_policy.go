package policies

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// WorkloadSetSource records which input selected the active workload set.
type WorkloadSetSource string

const (
	SourceNone             WorkloadSetSource = ""
	SourceExplicit         WorkloadSetSource = "explicit"
	SourceGlobalJSON       WorkloadSetSource = "global.json"
	SourceInstallState     WorkloadSetSource = "install-state"
	SourceHighestAvailable WorkloadSetSource = "highest-available"
)

// LegacyBaselineBand is where baseline workload sets were filed regardless
// of the band their version belongs to.
const LegacyBaselineBand = "8.0.100"

// UsesInstallStateManifests reports whether install-state manifest
// overrides apply on top of a selection from source. They are kept when
// the install state itself chose the set (third-party manifests outside
// the set) or when no set is active.
func UsesInstallStateManifests(source WorkloadSetSource) bool {
	switch source {
	case SourceNone, SourceInstallState:
		return true
	default:
		return false
	}
}

// PinNotFound builds the error for a pinned workload set version that is
// not installed. origin names the file the pin came from, if any.
func PinNotFound(source WorkloadSetSource, version string, origin string) error {
	var msg string
	switch source {
	case SourceExplicit:
		msg = fmt.Sprintf("workload set version %s was not found", version)
	case SourceGlobalJSON:
		msg = fmt.Sprintf("workload set version %s specified in %s was not found; restore workloads to install it", version, origin)
	case SourceInstallState:
		msg = fmt.Sprintf("workload set version %s from install state %s was not found", version, origin)
	default:
		msg = fmt.Sprintf("workload set version %s was not found", version)
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(msg)
}

// ManifestFromWorkloadSetNotFound reports a workload set entry whose
// manifest directory is not on disk.
func ManifestFromWorkloadSetNotFound(specifier string, workloadSetVersion string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("manifest %s from workload set %s was not found", specifier, workloadSetVersion))
}

// ManifestFromInstallStateNotFound reports an install-state manifest entry
// whose manifest directory is not on disk.
func ManifestFromInstallStateNotFound(specifier string, installStatePath string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("manifest %s from install state %s was not found", specifier, installStatePath))
}
