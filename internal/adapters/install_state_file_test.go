package adapters

import (
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workload-manifests/internal/testutil"
	"workload-manifests/internal/types"
)

func TestInstallStateLoad(t *testing.T) {
	tree := testutil.NewSdkTree(t)
	path := tree.WriteInstallState("X64", "8.0.200", `{
  "useWorkloadSets": true,
  "workloadVersion": "8.0.201",
  "manifests": {
    "Contoso.Workload": "1.2.0/8.0.200", // third party
  },
}`)

	state, err := NewInstallStateFileAdapter().Load(path)
	require.NoError(t, err)
	enabled := true
	if diff := cmp.Diff(types.InstallState{
		UseWorkloadSets: &enabled,
		WorkloadVersion: "8.0.201",
		Manifests:       map[string]string{"Contoso.Workload": "1.2.0/8.0.200"},
	}, state); diff != "" {
		t.Fatalf("unexpected install state (-want +got):\n%s", diff)
	}
	assert.True(t, state.WorkloadSetsEnabled())
}

func TestInstallStateLoadMissingFile(t *testing.T) {
	adapter := NewInstallStateFileAdapter()

	state, err := adapter.Load(filepath.Join(t.TempDir(), "default.json"))
	require.NoError(t, err)
	assert.Equal(t, types.InstallState{}, state)
	assert.False(t, state.WorkloadSetsEnabled())

	state, err = adapter.Load("")
	require.NoError(t, err)
	assert.Equal(t, types.InstallState{}, state)
}

func TestInstallStateLoadMalformed(t *testing.T) {
	tree := testutil.NewSdkTree(t)
	path := tree.WriteInstallState("X64", "8.0.200", `{"workloadVersion": 8}`)

	_, err := NewInstallStateFileAdapter().Load(path)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestIsUserLocal(t *testing.T) {
	tree := testutil.NewSdkTree(t)
	adapter := NewInstallStateFileAdapter()
	band := types.MustFeatureBand("8.0.200")

	assert.False(t, adapter.IsUserLocal(tree.Root, band))
	tree.MarkUserLocal("8.0.200")
	assert.True(t, adapter.IsUserLocal(tree.Root, band))
	assert.False(t, adapter.IsUserLocal(tree.Root, types.MustFeatureBand("8.0.100")))

	assert.True(t, adapter.DirectoryExists(tree.Root))
	assert.False(t, adapter.DirectoryExists(filepath.Join(tree.Root, "nope")))
}
