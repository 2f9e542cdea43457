package core

import (
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"workload-manifests/internal/ports"
	"workload-manifests/internal/types"
)

// TempDirectoryProvider serves every manifest directory found directly
// under one folder, such as a freshly extracted update. It has no
// workload sets and nothing to refresh.
type TempDirectoryProvider struct {
	path    string
	band    types.SdkFeatureBand
	scanner ports.ManifestScannerPort
}

func NewTempDirectoryProvider(path string, sdkVersion string, scanner ports.ManifestScannerPort) (*TempDirectoryProvider, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifests directory cannot be empty")
	}
	if scanner == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest scanner is required")
	}
	band, err := types.NewSdkFeatureBand(sdkVersion)
	if err != nil {
		return nil, err
	}
	return &TempDirectoryProvider{path: path, band: band, scanner: scanner}, nil
}

func (p *TempDirectoryProvider) GetManifests() ([]types.ReadableWorkloadManifest, error) {
	resolved, err := p.scanner.ScanDirectory(p.path)
	if err != nil {
		return nil, err
	}
	manifests := make([]types.ReadableWorkloadManifest, 0, len(resolved))
	for _, manifest := range resolved {
		version := manifest.Version
		if version == "" {
			version = filepath.Base(manifest.Directory)
		}
		manifests = append(manifests, p.scanner.Readable(manifest.ID, manifest.Directory, p.band.String(), version))
	}
	return manifests, nil
}

func (p *TempDirectoryProvider) GetWorkloadVersion() (types.WorkloadVersionInfo, error) {
	manifests, err := p.GetManifests()
	if err != nil {
		return types.WorkloadVersionInfo{}, err
	}
	return types.WorkloadVersionInfo{
		Version:     manifestFingerprint(p.band, manifests),
		IsInstalled: true,
	}, nil
}

func (p *TempDirectoryProvider) GetSdkFeatureBand() string {
	return p.band.String()
}

func (p *TempDirectoryProvider) GetAvailableWorkloadSets() (map[string]types.WorkloadSet, error) {
	return map[string]types.WorkloadSet{}, nil
}

func (p *TempDirectoryProvider) RefreshWorkloadManifests() error {
	return nil
}

var _ ports.ManifestProviderPort = (*TempDirectoryProvider)(nil)
