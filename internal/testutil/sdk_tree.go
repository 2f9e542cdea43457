// Package testutil lays out SDK installation trees on disk for tests:
// manifest folders, workload sets, install state, known-id lists and
// global.json files.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SdkTree is an SDK installation rooted in a test temp dir.
type SdkTree struct {
	t    *testing.T
	Root string
}

func NewSdkTree(t *testing.T) *SdkTree {
	t.Helper()
	return &SdkTree{t: t, Root: t.TempDir()}
}

// ManifestsRoot is <Root>/sdk-manifests.
func (s *SdkTree) ManifestsRoot() string {
	return filepath.Join(s.Root, "sdk-manifests")
}

// AddManifest writes <Root>/sdk-manifests/<band>/<id>/<version>/WorkloadManifest.json.
func (s *SdkTree) AddManifest(band string, id string, version string) string {
	s.t.Helper()
	return AddManifestAt(s.t, s.ManifestsRoot(), band, id, version)
}

// AddLegacyManifest writes a manifest directly in the id folder, without
// a version subfolder.
func (s *SdkTree) AddLegacyManifest(band string, id string, version string) string {
	s.t.Helper()
	dir := filepath.Join(s.ManifestsRoot(), band, id)
	WriteFile(s.t, filepath.Join(dir, "WorkloadManifest.json"), ManifestJSON(version))
	return dir
}

// AddWorkloadSet writes each named file into
// <Root>/sdk-manifests/<band>/workloadsets/<version>/.
func (s *SdkTree) AddWorkloadSet(band string, version string, files map[string]string) string {
	s.t.Helper()
	return AddWorkloadSetAt(s.t, s.ManifestsRoot(), band, version, files)
}

// WriteInstallState writes <Root>/metadata/workloads/<arch>/<band>/InstallState/default.json.
func (s *SdkTree) WriteInstallState(arch string, band string, content string) string {
	s.t.Helper()
	return WriteInstallStateAt(s.t, s.Root, arch, band, content)
}

// WriteKnownManifests writes <Root>/sdk/<sdkVersion>/<fileName>, one id per line.
func (s *SdkTree) WriteKnownManifests(sdkVersion string, fileName string, ids ...string) string {
	s.t.Helper()
	content := ""
	for _, id := range ids {
		content += id + "\n"
	}
	return WriteFile(s.t, filepath.Join(s.Root, "sdk", sdkVersion, fileName), content)
}

// MarkUserLocal creates the marker that switches a band to user-local installs.
func (s *SdkTree) MarkUserLocal(band string) {
	s.t.Helper()
	WriteFile(s.t, filepath.Join(s.Root, "metadata", "workloads", band, "userlocal"), "")
}

func AddManifestAt(t *testing.T, root string, band string, id string, version string) string {
	t.Helper()
	dir := filepath.Join(root, band, id, version)
	WriteFile(t, filepath.Join(dir, "WorkloadManifest.json"), ManifestJSON(version))
	return dir
}

func AddWorkloadSetAt(t *testing.T, root string, band string, version string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(root, band, "workloadsets", version)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		WriteFile(t, filepath.Join(dir, name), content)
	}
	return dir
}

func WriteInstallStateAt(t *testing.T, installRoot string, arch string, band string, content string) string {
	t.Helper()
	return WriteFile(t, filepath.Join(installRoot, "metadata", "workloads", arch, band, "InstallState", "default.json"), content)
}

// WriteGlobalJSON writes a global.json pinning workloadVersion in dir.
func WriteGlobalJSON(t *testing.T, dir string, workloadVersion string) string {
	t.Helper()
	content := fmt.Sprintf("{\n  // pinned for tests\n  \"sdk\": {\n    \"version\": \"8.0.100\",\n    \"workloadVersion\": %q,\n  }\n}\n", workloadVersion)
	return WriteFile(t, filepath.Join(dir, "global.json"), content)
}

// ManifestJSON is a minimal WorkloadManifest.json body.
func ManifestJSON(version string) string {
	return fmt.Sprintf("{\n  \"version\": %q,\n  \"workloads\": {},\n  \"packs\": {}\n}\n", version)
}

// WorkloadSetJSON renders id -> "version/band" entries.
func WorkloadSetJSON(t *testing.T, entries map[string]string) string {
	t.Helper()
	data, err := json.MarshalIndent(entries, "", "  ")
	require.NoError(t, err)
	return string(data)
}

func WriteFile(t *testing.T, path string, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
