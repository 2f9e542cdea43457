package policies

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"workload-manifests/internal/types"
)

func fakeEnv(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestManifestRootPolicyResolve(t *testing.T) {
	sdk := filepath.Join("opt", "dotnet")
	profile := filepath.Join("home", "dev", ".dotnet")
	tests := []struct {
		name   string
		env    map[string]string
		inputs RootInputs
		want   types.ManifestRoots
	}{
		{
			name:   "sdk root only",
			inputs: RootInputs{SdkRoot: sdk, UserProfileDir: profile},
			want: types.ManifestRoots{
				Roots:       []string{filepath.Join(sdk, "sdk-manifests")},
				InstallRoot: sdk,
			},
		},
		{
			name:   "user local install",
			inputs: RootInputs{SdkRoot: sdk, UserProfileDir: profile, UserLocal: true, UserRootExists: true},
			want: types.ManifestRoots{
				Roots:       []string{filepath.Join(profile, "sdk-manifests"), filepath.Join(sdk, "sdk-manifests")},
				InstallRoot: profile,
			},
		},
		{
			name:   "user local marker without user root",
			inputs: RootInputs{SdkRoot: sdk, UserProfileDir: profile, UserLocal: true},
			want: types.ManifestRoots{
				Roots:       []string{filepath.Join(sdk, "sdk-manifests")},
				InstallRoot: sdk,
			},
		},
		{
			name:   "environment roots prepended",
			env:    map[string]string{ManifestRootsEnv: "/extra/one:/extra/two::"},
			inputs: RootInputs{SdkRoot: sdk},
			want: types.ManifestRoots{
				Roots:       []string{"/extra/one", "/extra/two", filepath.Join(sdk, "sdk-manifests")},
				InstallRoot: sdk,
			},
		},
		{
			name: "ignore default roots",
			env: map[string]string{
				ManifestRootsEnv:              "/extra/one",
				IgnoreDefaultManifestRootsEnv: "1",
			},
			inputs: RootInputs{SdkRoot: sdk, UserProfileDir: profile, UserLocal: true, UserRootExists: true},
			want: types.ManifestRoots{
				Roots:       []string{"/extra/one"},
				InstallRoot: profile,
			},
		},
		{
			name: "ignore variable set but empty",
			env: map[string]string{
				ManifestRootsEnv:              "/extra/one",
				IgnoreDefaultManifestRootsEnv: "",
			},
			inputs: RootInputs{SdkRoot: sdk},
			want: types.ManifestRoots{
				Roots:       []string{"/extra/one"},
				InstallRoot: sdk,
			},
		},
		{
			name:   "ignore variable without environment roots",
			env:    map[string]string{IgnoreDefaultManifestRootsEnv: ""},
			inputs: RootInputs{SdkRoot: sdk},
			want:   types.ManifestRoots{InstallRoot: sdk},
		},
		{
			name:   "empty environment roots",
			env:    map[string]string{ManifestRootsEnv: ""},
			inputs: RootInputs{SdkRoot: sdk},
			want: types.ManifestRoots{
				Roots:       []string{filepath.Join(sdk, "sdk-manifests")},
				InstallRoot: sdk,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := NewManifestRootPolicy(fakeEnv(tt.env))
			policy.ListSeparator = ":"
			got := policy.Resolve(tt.inputs)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected roots (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInstallStatePath(t *testing.T) {
	got := InstallStatePath("/opt/dotnet", types.MustFeatureBand("8.0.204"), "X64")
	assert.Equal(t, filepath.Join("/opt/dotnet", "metadata", "workloads", "X64", "8.0.200", "InstallState", "default.json"), got)
}

func TestArchitectureName(t *testing.T) {
	tests := map[string]string{
		"amd64":   "X64",
		"arm64":   "Arm64",
		"386":     "X86",
		"riscv64": "RiscV64",
		"wasm":    "wasm",
	}
	for goarch, want := range tests {
		assert.Equal(t, want, ArchitectureName(goarch), goarch)
	}
	assert.NotEmpty(t, ProcessArchitecture())
}

func TestUserManifestRoot(t *testing.T) {
	assert.Equal(t, "", UserManifestRoot("  "))
	assert.Equal(t, filepath.Join("home", ".dotnet", "sdk-manifests"), UserManifestRoot(filepath.Join("home", ".dotnet")))
}
