package ports

import "workload-manifests/internal/types"

// WorkloadSetRepositoryPort discovers installed workload set bundles.
type WorkloadSetRepositoryPort interface {
	// AvailableWorkloadSets returns the sets filed under exactly band,
	// keyed by version. Earlier roots win on duplicate versions.
	AvailableWorkloadSets(roots []string, band types.SdkFeatureBand) (map[string]types.WorkloadSet, error)

	// AllWorkloadSets returns the sets of every feature band under roots.
	AllWorkloadSets(roots []string) (map[string]types.WorkloadSet, error)
}
