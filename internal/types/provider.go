package types

// ProviderOptions configures an SDK-directory manifest provider. At most
// one of GlobalJSONPath and WorkloadSetVersion may be set.
type ProviderOptions struct {
	SdkRootPath        string
	SdkVersion         string
	UserProfileDir     string
	GlobalJSONPath     string
	WorkloadSetVersion string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

type WorkloadVersionInfo struct {
	Version string `json:"version" yaml:"version"`
	// IsInstalled is false only when global.json pins a workload set that
	// is not on disk.
	IsInstalled                           bool   `json:"isInstalled" yaml:"isInstalled"`
	WorkloadSetsEnabledWithoutWorkloadSet bool   `json:"workloadSetsEnabledWithoutWorkloadSet" yaml:"workloadSetsEnabledWithoutWorkloadSet"`
	GlobalJSONPath                        string `json:"globalJsonPath,omitempty" yaml:"globalJsonPath,omitempty"`
}

// ManifestRoots is the ordered list of manifest roots; earlier roots win.
// InstallRoot is where install state and metadata live (the SDK root, or
// the user profile dir in user-local mode).
type ManifestRoots struct {
	Roots       []string
	InstallRoot string
}
