package ports

import "workload-manifests/internal/types"

// ManifestProviderPort is what the workload resolver layer consumes. The
// SDK-directory provider implements the full selection and assembly
// pipeline; the temp-directory provider serves fixed manifest folders.
type ManifestProviderPort interface {
	GetManifests() ([]types.ReadableWorkloadManifest, error)
	GetWorkloadVersion() (types.WorkloadVersionInfo, error)
	GetSdkFeatureBand() string
	GetAvailableWorkloadSets() (map[string]types.WorkloadSet, error)
	RefreshWorkloadManifests() error
}

// ManifestScannerPort locates manifest directories under manifest roots.
type ManifestScannerPort interface {
	// ScanFeatureBand resolves every manifest id directory under
	// <root>/<band> across roots; the first root declaring a directory
	// name wins.
	ScanFeatureBand(roots []string, band types.SdkFeatureBand) ([]types.ResolvedManifestDirectory, error)

	// ScanDirectory resolves every manifest id directory directly under dir.
	ScanDirectory(dir string) ([]types.ResolvedManifestDirectory, error)

	// ResolveManifestDirectory picks the newest versioned subfolder of an
	// id directory, or the id directory itself for the legacy layout.
	ResolveManifestDirectory(dir string) (types.ResolvedManifestDirectory, bool)

	// FindSpecifier returns the first <root>/<band>/<id>/<version> that
	// holds a WorkloadManifest.json.
	FindSpecifier(roots []string, spec types.ManifestSpecifier) (string, bool)

	// FeatureBands lists the band folders directly under root that parse.
	FeatureBands(root string) ([]types.SdkFeatureBand, error)

	// Readable wraps a resolved directory in a lazily-opened handle.
	Readable(id types.ManifestID, dir string, band string, version string) types.ReadableWorkloadManifest
}

// KnownManifestsPort loads the SDK-shipped list of expected manifest ids.
type KnownManifestsPort interface {
	// KnownManifestIDs returns nil, nil when the SDK ships no list.
	KnownManifestIDs(sdkRoot string, sdkVersion string) ([]types.ManifestID, error)
}
