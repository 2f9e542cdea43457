package app

import "workload-manifests/internal/types"

// ProviderRequest selects the installation to inspect. When ManifestsDir
// is set the SDK layout is ignored and every manifest folder directly
// under it is served as-is.
type ProviderRequest struct {
	SdkRoot            string
	SdkVersion         string
	UserProfileDir     string
	GlobalJSONPath     string
	SearchDir          string
	WorkloadSetVersion string
	ManifestsDir       string
}

type ManifestEntry struct {
	ID           string `json:"id" yaml:"id"`
	FeatureBand  string `json:"featureBand" yaml:"featureBand"`
	Version      string `json:"version" yaml:"version"`
	Directory    string `json:"directory" yaml:"directory"`
	ManifestPath string `json:"manifestPath" yaml:"manifestPath"`
	Localized    bool   `json:"localized" yaml:"localized"`
}

type ManifestsResult struct {
	FeatureBand string          `json:"featureBand" yaml:"featureBand"`
	Manifests   []ManifestEntry `json:"manifests" yaml:"manifests"`
}

type WorkloadVersionResult struct {
	FeatureBand string                    `json:"featureBand" yaml:"featureBand"`
	Info        types.WorkloadVersionInfo `json:"workload" yaml:"workload"`
}

type FeatureBandRequest struct {
	SdkVersion string
}

type FeatureBandResult struct {
	SdkVersion  string `json:"sdkVersion" yaml:"sdkVersion"`
	FeatureBand string `json:"featureBand" yaml:"featureBand"`
	Release     string `json:"release" yaml:"release"`
}

type WorkloadSetsRequest struct {
	Provider ProviderRequest
	AllBands bool
}

type WorkloadSetSummary struct {
	Version     string            `json:"version" yaml:"version"`
	FeatureBand string            `json:"featureBand" yaml:"featureBand"`
	Baseline    bool              `json:"baseline,omitempty" yaml:"baseline,omitempty"`
	Active      bool              `json:"active,omitempty" yaml:"active,omitempty"`
	Manifests   map[string]string `json:"manifests" yaml:"manifests"`
}

type WorkloadSetsResult struct {
	FeatureBand  string               `json:"featureBand" yaml:"featureBand"`
	ActiveSource string               `json:"activeSource,omitempty" yaml:"activeSource,omitempty"`
	Sets         []WorkloadSetSummary `json:"workloadSets" yaml:"workloadSets"`
}

type PackageVersionRequest struct {
	WorkloadSetVersion string
}

type PackageVersionResult struct {
	WorkloadSetVersion string `json:"workloadSetVersion" yaml:"workloadSetVersion"`
	PackageVersion     string `json:"packageVersion" yaml:"packageVersion"`
	FeatureBand        string `json:"featureBand" yaml:"featureBand"`
}
