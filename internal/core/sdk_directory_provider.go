package core

import (
	"context"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"workload-manifests/internal/policies"
	"workload-manifests/internal/ports"
	"workload-manifests/internal/types"
)

// ProviderPorts are the filesystem collaborators of a provider.
type ProviderPorts struct {
	Scanner      ports.ManifestScannerPort
	WorkloadSets ports.WorkloadSetRepositoryPort
	InstallState ports.InstallStatePort
	GlobalJSON   ports.GlobalJSONPort
	KnownIDs     ports.KnownManifestsPort
	// Architecture names the install-state folder; defaults to the
	// running process architecture.
	Architecture string
}

func (p ProviderPorts) validate() error {
	if p.Scanner == nil || p.WorkloadSets == nil || p.InstallState == nil || p.GlobalJSON == nil || p.KnownIDs == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest provider requires scanner, workload set, install state, global.json and known manifest ports")
	}
	return nil
}

// SdkDirectoryProvider resolves the manifests of one SDK installation.
// Selection runs at construction and on RefreshWorkloadManifests; the
// manifest directories are re-scanned on every GetManifests call.
// It is not safe for concurrent use.
type SdkDirectoryProvider struct {
	ports            ProviderPorts
	sdkRoot          string
	sdkVersion       string
	band             types.SdkFeatureBand
	roots            types.ManifestRoots
	known            []types.ManifestID
	order            policies.ManifestOrder
	explicitVersion  string
	globalJSONPath   string
	installStatePath string

	current resolution
}

func NewSdkDirectoryProvider(ctx context.Context, opts types.ProviderOptions, deps ProviderPorts) (*SdkDirectoryProvider, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.SdkVersion) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sdk version cannot be empty")
	}
	if strings.TrimSpace(opts.SdkRootPath) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sdk root path cannot be empty")
	}
	if opts.GlobalJSONPath != "" && opts.WorkloadSetVersion != "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("cannot specify both a global.json path and a workload set version")
	}
	band, err := types.NewSdkFeatureBand(opts.SdkVersion)
	if err != nil {
		return nil, err
	}
	assert.NotEmpty(ctx, band.String(), "feature band must be derived from the sdk version")

	rootPolicy := policies.NewManifestRootPolicy(opts.LookupEnv)
	roots := rootPolicy.Resolve(policies.RootInputs{
		SdkRoot:        opts.SdkRootPath,
		UserProfileDir: opts.UserProfileDir,
		UserLocal:      deps.InstallState.IsUserLocal(opts.SdkRootPath, band),
		UserRootExists: deps.InstallState.DirectoryExists(policies.UserManifestRoot(opts.UserProfileDir)),
	})

	known, err := deps.KnownIDs.KnownManifestIDs(opts.SdkRootPath, opts.SdkVersion)
	if err != nil {
		return nil, err
	}

	arch := deps.Architecture
	if arch == "" {
		arch = policies.ProcessArchitecture()
	}
	provider := &SdkDirectoryProvider{
		ports:            deps,
		sdkRoot:          opts.SdkRootPath,
		sdkVersion:       opts.SdkVersion,
		band:             band,
		roots:            roots,
		known:            known,
		order:            policies.NewManifestOrder(known),
		explicitVersion:  opts.WorkloadSetVersion,
		globalJSONPath:   opts.GlobalJSONPath,
		installStatePath: policies.InstallStatePath(roots.InstallRoot, band, arch),
	}
	log.Debug().
		Strs("roots", roots.Roots).
		Str("band", band.String()).
		Int("known_manifests", len(known)).
		Msg("configured manifest provider")

	if err := provider.RefreshWorkloadManifests(); err != nil {
		return nil, err
	}
	return provider, nil
}

// ForWorkloadSet builds a provider pinned to one workload set version.
func ForWorkloadSet(ctx context.Context, sdkRoot string, sdkVersion string, userProfileDir string, workloadSetVersion string, deps ProviderPorts) (*SdkDirectoryProvider, error) {
	return NewSdkDirectoryProvider(ctx, types.ProviderOptions{
		SdkRootPath:        sdkRoot,
		SdkVersion:         sdkVersion,
		UserProfileDir:     userProfileDir,
		WorkloadSetVersion: workloadSetVersion,
	}, deps)
}

// RefreshWorkloadManifests re-runs workload set selection. On error the
// previous selection stays in place.
func (p *SdkDirectoryProvider) RefreshWorkloadManifests() error {
	next, err := resolveSelection(selectionPorts{
		workloadSets: p.ports.WorkloadSets,
		globalJSON:   p.ports.GlobalJSON,
		installState: p.ports.InstallState,
	}, selectionInputs{
		roots:            p.roots.Roots,
		band:             p.band,
		explicitVersion:  p.explicitVersion,
		globalJSONPath:   p.globalJSONPath,
		installStatePath: p.installStatePath,
	})
	if err != nil {
		return err
	}
	p.current = next
	return nil
}

func (p *SdkDirectoryProvider) GetManifests() ([]types.ReadableWorkloadManifest, error) {
	return assembleManifests(p.ports.Scanner, assemblyInputs{
		roots: p.roots.Roots,
		band:  p.band,
		known: p.known,
		order: p.order,
	}, p.current)
}

func (p *SdkDirectoryProvider) GetWorkloadVersion() (types.WorkloadVersionInfo, error) {
	res := p.current
	if res.globalJSONVersion != "" {
		return types.WorkloadVersionInfo{
			Version:        res.globalJSONVersion,
			IsInstalled:    res.deferred == nil,
			GlobalJSONPath: res.globalJSONPath,
		}, nil
	}
	if res.deferred != nil {
		return types.WorkloadVersionInfo{}, res.deferred
	}
	if res.workloadSet != nil && res.workloadSet.Version != "" {
		return types.WorkloadVersionInfo{Version: res.workloadSet.Version, IsInstalled: true}, nil
	}
	manifests, err := p.GetManifests()
	if err != nil {
		return types.WorkloadVersionInfo{}, err
	}
	return types.WorkloadVersionInfo{
		Version:                               manifestFingerprint(p.band, manifests),
		IsInstalled:                           true,
		WorkloadSetsEnabledWithoutWorkloadSet: res.workloadSetsEnabled,
	}, nil
}

func (p *SdkDirectoryProvider) GetSdkFeatureBand() string {
	return p.band.String()
}

// GetAvailableWorkloadSets lists the sets installed for this SDK's band
// only; sets of other bands are never offered.
func (p *SdkDirectoryProvider) GetAvailableWorkloadSets() (map[string]types.WorkloadSet, error) {
	return p.ports.WorkloadSets.AvailableWorkloadSets(p.roots.Roots, p.band)
}

// GetAllWorkloadSets lists installed sets across every feature band.
func (p *SdkDirectoryProvider) GetAllWorkloadSets() (map[string]types.WorkloadSet, error) {
	return p.ports.WorkloadSets.AllWorkloadSets(p.roots.Roots)
}

// ActiveWorkloadSet returns the selected set, if any, and what selected it.
func (p *SdkDirectoryProvider) ActiveWorkloadSet() (*types.WorkloadSet, policies.WorkloadSetSource) {
	if p.current.workloadSet == nil {
		return nil, p.current.source
	}
	set := *p.current.workloadSet
	return &set, p.current.source
}

func (p *SdkDirectoryProvider) ManifestRoots() []string {
	return append([]string(nil), p.roots.Roots...)
}

func (p *SdkDirectoryProvider) InstallStatePath() string {
	return p.installStatePath
}

var _ ports.ManifestProviderPort = (*SdkDirectoryProvider)(nil)
