package core

import (
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workload-manifests/internal/testutil"
)

func TestTempDirectoryProvider(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "Example.Manifest", "WorkloadManifest.json"), testutil.ManifestJSON("1.2.3"))
	testutil.WriteFile(t, filepath.Join(dir, "Other.Manifest", "2.0.0", "WorkloadManifest.json"), testutil.ManifestJSON("2.0.0"))
	testutil.WriteFile(t, filepath.Join(dir, "workloadsets", "8.0.101", "a.workloadset.json"), "{}")

	provider, err := NewTempDirectoryProvider(dir, "8.0.100", filesystemPorts().Scanner)
	require.NoError(t, err)

	manifests, err := provider.GetManifests()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Example.Manifest@1.2.3/8.0.100", "Other.Manifest@2.0.0/8.0.100"}, summarize(manifests))

	info, err := provider.GetWorkloadVersion()
	require.NoError(t, err)
	assert.Equal(t, "8.0.100-manifests.20bbf11c", info.Version)
	assert.True(t, info.IsInstalled)

	sets, err := provider.GetAvailableWorkloadSets()
	require.NoError(t, err)
	assert.Empty(t, sets)
	assert.NoError(t, provider.RefreshWorkloadManifests())
	assert.Equal(t, "8.0.100", provider.GetSdkFeatureBand())
}

func TestNewTempDirectoryProviderErrors(t *testing.T) {
	scanner := filesystemPorts().Scanner
	tests := []struct {
		name       string
		path       string
		sdkVersion string
	}{
		{name: "empty path", path: " ", sdkVersion: "8.0.100"},
		{name: "bad sdk version", path: t.TempDir(), sdkVersion: "eight"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTempDirectoryProvider(tt.path, tt.sdkVersion, scanner)
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
		})
	}

	_, err := NewTempDirectoryProvider(t.TempDir(), "8.0.100", nil)
	require.Error(t, err)
}
