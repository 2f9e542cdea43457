package ports

import "workload-manifests/internal/types"

// InstallStatePort reads installer state and installation layout markers.
type InstallStatePort interface {
	// Load returns an empty state when the file does not exist.
	Load(path string) (types.InstallState, error)
	IsUserLocal(sdkRoot string, band types.SdkFeatureBand) bool
	DirectoryExists(path string) bool
}

// GlobalJSONPort reads the workload version pinned by global.json.
type GlobalJSONPort interface {
	// WorkloadVersion returns "" when path is empty, missing, or has no
	// sdk.workloadVersion.
	WorkloadVersion(path string) (string, error)
	Find(startDir string) (string, bool)
}
