package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"workload-manifests/internal/core"
	"workload-manifests/internal/ports"
	"workload-manifests/internal/types"
)

const (
	userProfileFolderName = ".dotnet"
	cliHomeEnv            = "DOTNET_CLI_HOME"
)

func (s Service) ListManifests(ctx context.Context, req ProviderRequest) (ManifestsResult, error) {
	provider, err := s.openProvider(ctx, req)
	if err != nil {
		return ManifestsResult{}, err
	}
	manifests, err := provider.GetManifests()
	if err != nil {
		return ManifestsResult{}, err
	}
	entries := make([]ManifestEntry, 0, len(manifests))
	for _, manifest := range manifests {
		localized, err := hasLocalization(manifest)
		if err != nil {
			return ManifestsResult{}, err
		}
		entries = append(entries, ManifestEntry{
			ID:           manifest.ManifestID,
			FeatureBand:  manifest.ManifestFeatureBand,
			Version:      manifest.ManifestVersion,
			Directory:    manifest.ManifestDirectory,
			ManifestPath: manifest.ManifestPath,
			Localized:    localized,
		})
	}
	return ManifestsResult{FeatureBand: provider.GetSdkFeatureBand(), Manifests: entries}, nil
}

func (s Service) WorkloadVersion(ctx context.Context, req ProviderRequest) (WorkloadVersionResult, error) {
	provider, err := s.openProvider(ctx, req)
	if err != nil {
		return WorkloadVersionResult{}, err
	}
	info, err := provider.GetWorkloadVersion()
	if err != nil {
		return WorkloadVersionResult{}, err
	}
	return WorkloadVersionResult{FeatureBand: provider.GetSdkFeatureBand(), Info: info}, nil
}

func (s Service) FeatureBand(req FeatureBandRequest) (FeatureBandResult, error) {
	band, err := types.NewSdkFeatureBand(req.SdkVersion)
	if err != nil {
		return FeatureBandResult{}, err
	}
	return FeatureBandResult{
		SdkVersion:  strings.TrimSpace(req.SdkVersion),
		FeatureBand: band.String(),
		Release:     band.StringWithoutPrerelease(),
	}, nil
}

func (s Service) WorkloadSets(ctx context.Context, req WorkloadSetsRequest) (WorkloadSetsResult, error) {
	if strings.TrimSpace(req.Provider.ManifestsDir) != "" {
		return WorkloadSetsResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workload sets are not available for a plain manifests directory")
	}
	provider, err := s.sdkProvider(ctx, req.Provider)
	if err != nil {
		return WorkloadSetsResult{}, err
	}
	var sets map[string]types.WorkloadSet
	if req.AllBands {
		sets, err = provider.GetAllWorkloadSets()
	} else {
		sets, err = provider.GetAvailableWorkloadSets()
	}
	if err != nil {
		return WorkloadSetsResult{}, err
	}

	active, source := provider.ActiveWorkloadSet()
	result := WorkloadSetsResult{FeatureBand: provider.GetSdkFeatureBand()}
	if active != nil {
		result.ActiveSource = string(source)
	}
	versions := make([]string, 0, len(sets))
	for version := range sets {
		versions = append(versions, version)
	}
	core.SortWorkloadSetVersions(versions)
	for _, version := range versions {
		set := sets[version]
		band := provider.GetSdkFeatureBand()
		if setBand, err := types.WorkloadSetFeatureBand(version); err == nil {
			band = setBand.String()
		}
		result.Sets = append(result.Sets, WorkloadSetSummary{
			Version:     version,
			FeatureBand: band,
			Baseline:    set.IsBaselineWorkloadSet,
			Active:      active != nil && active.Version == version,
			Manifests:   set.Dictionary(),
		})
	}
	return result, nil
}

func (s Service) PackageVersion(req PackageVersionRequest) (PackageVersionResult, error) {
	version := strings.TrimSpace(req.WorkloadSetVersion)
	if version == "" {
		return PackageVersionResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workload set version is required")
	}
	packageVersion, band, err := types.ToWorkloadSetPackageVersion(version)
	if err != nil {
		return PackageVersionResult{}, err
	}
	return PackageVersionResult{
		WorkloadSetVersion: version,
		PackageVersion:     packageVersion,
		FeatureBand:        band.String(),
	}, nil
}

func (s Service) openProvider(ctx context.Context, req ProviderRequest) (ports.ManifestProviderPort, error) {
	if dir := strings.TrimSpace(req.ManifestsDir); dir != "" {
		return core.NewTempDirectoryProvider(dir, req.SdkVersion, s.Scanner)
	}
	return s.sdkProvider(ctx, req)
}

func (s Service) sdkProvider(ctx context.Context, req ProviderRequest) (*core.SdkDirectoryProvider, error) {
	sdkRoot := strings.TrimSpace(req.SdkRoot)
	if sdkRoot == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sdk root is required")
	}
	globalJSON := strings.TrimSpace(req.GlobalJSONPath)
	explicit := strings.TrimSpace(req.WorkloadSetVersion)
	if globalJSON == "" && explicit == "" && strings.TrimSpace(req.SearchDir) != "" {
		if found, ok := s.GlobalJSON.Find(req.SearchDir); ok {
			log.Debug().Str("path", found).Msg("using discovered global.json")
			globalJSON = found
		}
	}
	userProfile := strings.TrimSpace(req.UserProfileDir)
	if userProfile == "" {
		userProfile = s.defaultUserProfileDir()
	}
	return core.NewSdkDirectoryProvider(ctx, types.ProviderOptions{
		SdkRootPath:        sdkRoot,
		SdkVersion:         strings.TrimSpace(req.SdkVersion),
		UserProfileDir:     userProfile,
		GlobalJSONPath:     globalJSON,
		WorkloadSetVersion: explicit,
		LookupEnv:          s.LookupEnv,
	}, s.providerPorts())
}

func (s Service) defaultUserProfileDir() string {
	lookupEnv := s.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	if home, _ := lookupEnv(cliHomeEnv); strings.TrimSpace(home) != "" {
		return filepath.Join(strings.TrimSpace(home), userProfileFolderName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, userProfileFolderName)
}

func hasLocalization(manifest types.ReadableWorkloadManifest) (bool, error) {
	stream, err := manifest.OpenLocalizationStream()
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to open localization catalog for " + manifest.ManifestID).
			WithCause(err)
	}
	if stream == nil {
		return false, nil
	}
	_ = stream.Close()
	return true, nil
}
