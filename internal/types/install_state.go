package types

// InstallState mirrors the installer-authored default.json for one band.
type InstallState struct {
	UseWorkloadSets *bool             `json:"useWorkloadSets,omitempty" yaml:"useWorkloadSets,omitempty"`
	WorkloadVersion string            `json:"workloadVersion,omitempty" yaml:"workloadVersion,omitempty"`
	Manifests       map[string]string `json:"manifests,omitempty" yaml:"manifests,omitempty"`
}

func (s InstallState) WorkloadSetsEnabled() bool {
	return s.UseWorkloadSets != nil && *s.UseWorkloadSets
}
