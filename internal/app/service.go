package app

import (
	"os"

	"workload-manifests/internal/adapters"
	"workload-manifests/internal/core"
	"workload-manifests/internal/ports"
)

type Service struct {
	Scanner      ports.ManifestScannerPort
	WorkloadSets ports.WorkloadSetRepositoryPort
	InstallState ports.InstallStatePort
	GlobalJSON   ports.GlobalJSONPort
	KnownIDs     ports.KnownManifestsPort
	LookupEnv    func(string) (string, bool)
	// Architecture overrides the install-state folder name; empty uses
	// the running process architecture.
	Architecture string
}

func NewService() Service {
	return Service{
		Scanner:      adapters.NewManifestDirectoryAdapter(),
		WorkloadSets: adapters.NewWorkloadSetDirAdapter(),
		InstallState: adapters.NewInstallStateFileAdapter(),
		GlobalJSON:   adapters.NewGlobalJSONFileAdapter(),
		KnownIDs:     adapters.NewKnownManifestsFileAdapter(),
		LookupEnv:    os.LookupEnv,
	}
}

func (s Service) providerPorts() core.ProviderPorts {
	return core.ProviderPorts{
		Scanner:      s.Scanner,
		WorkloadSets: s.WorkloadSets,
		InstallState: s.InstallState,
		GlobalJSON:   s.GlobalJSON,
		KnownIDs:     s.KnownIDs,
		Architecture: s.Architecture,
	}
}
