package adapters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"workload-manifests/internal/ports"
	"workload-manifests/internal/types"
)

const WorkloadSetsFolderName = "workloadsets"

// Manifest ids that older SDKs shipped and newer SDKs replaced. Their
// directories may linger on disk and must never be loaded.
var outdatedManifestIDs = map[string]struct{}{
	"MICROSOFT.NET.WORKLOAD.ANDROID":           {},
	"MICROSOFT.NET.WORKLOAD.BLAZORWEBASSEMBLY": {},
	"MICROSOFT.NET.WORKLOAD.IOS":               {},
	"MICROSOFT.NET.WORKLOAD.MACCATALYST":       {},
	"MICROSOFT.NET.WORKLOAD.MACOS":             {},
	"MICROSOFT.NET.WORKLOAD.TVOS":              {},
	"MICROSOFT.NET.WORKLOAD.MONO.TOOLCHAIN":    {},
}

type ManifestDirectoryAdapter struct {
	Localization LocalizationCatalogAdapter
}

func NewManifestDirectoryAdapter() ManifestDirectoryAdapter {
	return ManifestDirectoryAdapter{Localization: NewLocalizationCatalogAdapter()}
}

func (a ManifestDirectoryAdapter) ScanFeatureBand(roots []string, band types.SdkFeatureBand) ([]types.ResolvedManifestDirectory, error) {
	// Collect directory names first so an id present under several roots
	// is resolved once, from the first root that has it.
	seen := map[string]struct{}{}
	var candidates []string
	for _, root := range roots {
		bandDir := filepath.Join(root, band.String())
		entries, err := readDirIfExists(bandDir)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("failed to list manifest directory %s", bandDir)).
				WithCause(err)
		}
		for _, entry := range entries {
			if !isDirEntry(bandDir, entry) {
				continue
			}
			key := types.ManifestID(entry.Name()).Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			candidates = append(candidates, filepath.Join(bandDir, entry.Name()))
		}
	}

	var resolved []types.ResolvedManifestDirectory
	for _, dir := range candidates {
		if manifest, ok := a.ResolveManifestDirectory(dir); ok {
			resolved = append(resolved, manifest)
		}
	}
	return resolved, nil
}

func (a ManifestDirectoryAdapter) ScanDirectory(dir string) ([]types.ResolvedManifestDirectory, error) {
	entries, err := readDirIfExists(dir)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to list manifest directory %s", dir)).
			WithCause(err)
	}
	var resolved []types.ResolvedManifestDirectory
	for _, entry := range entries {
		if !isDirEntry(dir, entry) {
			continue
		}
		if manifest, ok := a.ResolveManifestDirectory(filepath.Join(dir, entry.Name())); ok {
			resolved = append(resolved, manifest)
		}
	}
	return resolved, nil
}

func (a ManifestDirectoryAdapter) ResolveManifestDirectory(dir string) (types.ResolvedManifestDirectory, bool) {
	id := types.ManifestID(filepath.Base(dir))
	if IsReservedManifestDirectory(id.String()) {
		return types.ResolvedManifestDirectory{}, false
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return types.ResolvedManifestDirectory{}, false
	}

	// Versioned subfolders are assumed newer than a manifest placed
	// directly in the id directory.
	var (
		bestName    string
		bestVersion types.ManifestVersion
	)
	for _, entry := range entries {
		if !isDirEntry(dir, entry) {
			continue
		}
		if !fileExists(filepath.Join(dir, entry.Name(), types.WorkloadManifestFileName)) {
			continue
		}
		version, err := types.ParseManifestVersion(entry.Name())
		if err != nil {
			log.Debug().Str("dir", filepath.Join(dir, entry.Name())).Msg("ignoring manifest folder with unparsable version")
			continue
		}
		if bestName == "" || version.Compare(bestVersion) > 0 {
			bestName = entry.Name()
			bestVersion = version
		}
	}
	if bestName != "" {
		return types.ResolvedManifestDirectory{
			ID:        id,
			Directory: filepath.Join(dir, bestName),
			Version:   bestName,
		}, true
	}

	manifestPath := filepath.Join(dir, types.WorkloadManifestFileName)
	if !fileExists(manifestPath) {
		return types.ResolvedManifestDirectory{}, false
	}
	version, err := sniffManifestVersion(manifestPath)
	if err != nil {
		log.Debug().Err(err).Str("path", manifestPath).Msg("could not read manifest version")
		version = ""
	}
	return types.ResolvedManifestDirectory{ID: id, Directory: dir, Version: version}, true
}

func (a ManifestDirectoryAdapter) FindSpecifier(roots []string, spec types.ManifestSpecifier) (string, bool) {
	for _, root := range roots {
		dir := filepath.Join(root, spec.FeatureBand.String(), spec.ID.String(), spec.Version.String())
		if fileExists(filepath.Join(dir, types.WorkloadManifestFileName)) {
			return dir, true
		}
	}
	return "", false
}

func (a ManifestDirectoryAdapter) FeatureBands(root string) ([]types.SdkFeatureBand, error) {
	entries, err := readDirIfExists(root)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to list manifest root %s", root)).
			WithCause(err)
	}
	var bands []types.SdkFeatureBand
	for _, entry := range entries {
		if !isDirEntry(root, entry) {
			continue
		}
		band, err := types.NewSdkFeatureBand(entry.Name())
		if err != nil {
			continue
		}
		bands = append(bands, band)
	}
	return bands, nil
}

func (a ManifestDirectoryAdapter) Readable(id types.ManifestID, dir string, band string, version string) types.ReadableWorkloadManifest {
	manifestPath := filepath.Join(dir, types.WorkloadManifestFileName)
	return types.NewReadableWorkloadManifest(id.String(), dir, manifestPath, band, version, a.Localization.Opener(manifestPath))
}

// IsReservedManifestDirectory reports names under a feature band folder
// that are never manifests.
func IsReservedManifestDirectory(name string) bool {
	if strings.EqualFold(name, WorkloadSetsFolderName) {
		return true
	}
	_, outdated := outdatedManifestIDs[strings.ToUpper(name)]
	return outdated
}

// sniffManifestVersion reads only the top-level "version" property of a
// WorkloadManifest.json. Older manifests use a bare number.
func sniffManifestVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var header struct {
		Version json.RawMessage `json:"version"`
	}
	if err := decodeLenientJSON(data, &header); err != nil {
		return "", err
	}
	if len(header.Version) == 0 {
		return "", fmt.Errorf("manifest %s has no version", path)
	}
	var text string
	if err := json.Unmarshal(header.Version, &text); err == nil {
		return text, nil
	}
	var number json.Number
	if err := json.Unmarshal(header.Version, &number); err != nil {
		return "", fmt.Errorf("manifest %s has a malformed version: %w", path, err)
	}
	return number.String(), nil
}

var _ ports.ManifestScannerPort = ManifestDirectoryAdapter{}
