package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"workload-manifests/internal/adapters"
	"workload-manifests/internal/testutil"
	"workload-manifests/internal/types"
)

func noEnv(string) string { return "" }

func noLookupEnv(string) (string, bool) { return "", false }

func lookupEnvOf(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func filesystemPorts() ProviderPorts {
	return ProviderPorts{
		Scanner: adapters.ManifestDirectoryAdapter{
			Localization: adapters.LocalizationCatalogAdapter{Getenv: noEnv},
		},
		WorkloadSets: adapters.NewWorkloadSetDirAdapter(),
		InstallState: adapters.NewInstallStateFileAdapter(),
		GlobalJSON:   adapters.NewGlobalJSONFileAdapter(),
		KnownIDs:     adapters.NewKnownManifestsFileAdapter(),
		Architecture: "X64",
	}
}

func providerOptions(t *testing.T, tree *testutil.SdkTree, sdkVersion string) types.ProviderOptions {
	t.Helper()
	return types.ProviderOptions{
		SdkRootPath:    tree.Root,
		SdkVersion:     sdkVersion,
		UserProfileDir: t.TempDir(),
		LookupEnv:      noLookupEnv,
	}
}

func newTestProvider(t *testing.T, opts types.ProviderOptions) *SdkDirectoryProvider {
	t.Helper()
	provider, err := NewSdkDirectoryProvider(context.Background(), opts, filesystemPorts())
	require.NoError(t, err)
	return provider
}

// summarize renders manifests as "id@version/band" in result order.
func summarize(manifests []types.ReadableWorkloadManifest) []string {
	out := make([]string, 0, len(manifests))
	for _, manifest := range manifests {
		out = append(out, fmt.Sprintf("%s@%s/%s", manifest.ManifestID, manifest.ManifestVersion, manifest.ManifestFeatureBand))
	}
	return out
}

func setFile(t *testing.T, entries map[string]string) map[string]string {
	t.Helper()
	return map[string]string{"microsoft.net.workloads.workloadset.json": testutil.WorkloadSetJSON(t, entries)}
}
