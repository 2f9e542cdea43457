package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workload-manifests/internal/policies"
	"workload-manifests/internal/types"
)

type stubWorkloadSets struct {
	byBand map[string][]string
	err    error
}

func (s stubWorkloadSets) AvailableWorkloadSets(_ []string, band types.SdkFeatureBand) (map[string]types.WorkloadSet, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := map[string]types.WorkloadSet{}
	for _, version := range s.byBand[band.String()] {
		out[version] = types.NewWorkloadSet(version)
	}
	return out, nil
}

func (s stubWorkloadSets) AllWorkloadSets(_ []string) (map[string]types.WorkloadSet, error) {
	return nil, s.err
}

type stubGlobalJSON struct {
	version string
	err     error
}

func (s stubGlobalJSON) WorkloadVersion(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	return s.version, s.err
}

func (s stubGlobalJSON) Find(string) (string, bool) { return "", false }

type stubInstallState struct {
	state types.InstallState
	err   error
}

func (s stubInstallState) Load(string) (types.InstallState, error) { return s.state, s.err }
func (s stubInstallState) IsUserLocal(string, types.SdkFeatureBand) bool { return false }
func (s stubInstallState) DirectoryExists(string) bool { return false }

func TestResolveSelectionPriority(t *testing.T) {
	sets := stubWorkloadSets{byBand: map[string][]string{
		"8.0.200": {"8.0.201", "8.0.202", "8.0.203"},
		"8.0.100": {"8.0.100.1"},
	}}
	enabled, disabled := true, false
	tests := []struct {
		name        string
		explicit    string
		globalJSON  string
		state       types.InstallState
		wantVersion string
		wantSource  policies.WorkloadSetSource
	}{
		{name: "highest available", state: types.InstallState{UseWorkloadSets: &enabled}, wantVersion: "8.0.203", wantSource: policies.SourceHighestAvailable},
		{name: "no install state", wantSource: policies.SourceNone},
		{name: "workload sets disabled", state: types.InstallState{UseWorkloadSets: &disabled}, wantSource: policies.SourceNone},
		{name: "install state", state: types.InstallState{WorkloadVersion: "8.0.202"}, wantVersion: "8.0.202", wantSource: policies.SourceInstallState},
		{name: "global.json over install state", globalJSON: "8.0.201", state: types.InstallState{WorkloadVersion: "8.0.202"}, wantVersion: "8.0.201", wantSource: policies.SourceGlobalJSON},
		{name: "explicit over everything", explicit: "8.0.202", globalJSON: "8.0.201", wantVersion: "8.0.202", wantSource: policies.SourceExplicit},
		{name: "pin from another band", explicit: "8.0.100.1", wantVersion: "8.0.100.1", wantSource: policies.SourceExplicit},
		{name: "install state manifests without workload sets", state: types.InstallState{Manifests: map[string]string{"A": "1.0.0"}}, wantSource: policies.SourceNone},
		{name: "install state version over highest available", state: types.InstallState{UseWorkloadSets: &enabled, WorkloadVersion: "8.0.201"}, wantVersion: "8.0.201", wantSource: policies.SourceInstallState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := selectionInputs{
				roots:            []string{"/sdk/sdk-manifests"},
				band:             types.MustFeatureBand("8.0.200"),
				explicitVersion:  tt.explicit,
				installStatePath: "/sdk/default.json",
			}
			global := stubGlobalJSON{version: tt.globalJSON}
			if tt.globalJSON != "" {
				in.globalJSONPath = "/repo/global.json"
			}
			res, err := resolveSelection(selectionPorts{
				workloadSets: sets,
				globalJSON:   global,
				installState: stubInstallState{state: tt.state},
			}, in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSource, res.source)
			if tt.wantVersion == "" {
				assert.Nil(t, res.workloadSet)
				return
			}
			require.NotNil(t, res.workloadSet)
			assert.Equal(t, tt.wantVersion, res.workloadSet.Version)
		})
	}
}

func TestResolveSelectionHighestAvailableReplacesInstallStateManifests(t *testing.T) {
	enabled := true
	deps := selectionPorts{
		workloadSets: stubWorkloadSets{byBand: map[string][]string{"8.0.200": {"8.0.201"}}},
		globalJSON:   stubGlobalJSON{},
		installState: stubInstallState{state: types.InstallState{
			UseWorkloadSets: &enabled,
			Manifests:       map[string]string{"A": "1.0.0"},
		}},
	}
	res, err := resolveSelection(deps, selectionInputs{band: types.MustFeatureBand("8.0.200"), installStatePath: "/sdk/default.json"})
	require.NoError(t, err)
	require.NotNil(t, res.workloadSet)
	assert.Equal(t, "8.0.201", res.workloadSet.Version)
	assert.Equal(t, policies.SourceHighestAvailable, res.source)
	assert.Nil(t, res.installStateManifests)
	assert.False(t, res.useInstallStateManifests())
	assert.True(t, res.workloadSetsEnabled)
}

func TestResolveSelectionErrors(t *testing.T) {
	band := types.MustFeatureBand("8.0.200")
	tests := []struct {
		name     string
		deps     selectionPorts
		wantCode errbuilder.ErrCode
	}{
		{
			name: "workload set listing fails",
			deps: selectionPorts{
				workloadSets: stubWorkloadSets{err: errbuilder.New().WithCode(errbuilder.CodeInternal).WithMsg("disk")},
				globalJSON:   stubGlobalJSON{},
				installState: stubInstallState{},
			},
			wantCode: errbuilder.CodeInternal,
		},
		{
			name: "install state unreadable",
			deps: selectionPorts{
				workloadSets: stubWorkloadSets{},
				globalJSON:   stubGlobalJSON{},
				installState: stubInstallState{err: errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).WithMsg("bad json")},
			},
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name: "install state manifests malformed",
			deps: selectionPorts{
				workloadSets: stubWorkloadSets{},
				globalJSON:   stubGlobalJSON{},
				installState: stubInstallState{state: types.InstallState{Manifests: map[string]string{"A": "not a version"}}},
			},
			wantCode: errbuilder.CodeInvalidArgument,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveSelection(tt.deps, selectionInputs{band: band, installStatePath: "/sdk/default.json"})
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errbuilder.CodeOf(err))
		})
	}
}

func TestResolveSelectionDefersMissingGlobalJSONPin(t *testing.T) {
	res, err := resolveSelection(selectionPorts{
		workloadSets: stubWorkloadSets{},
		globalJSON:   stubGlobalJSON{version: "8.0.299"},
		installState: stubInstallState{state: types.InstallState{WorkloadVersion: "8.0.250"}},
	}, selectionInputs{
		band:           types.MustFeatureBand("8.0.200"),
		globalJSONPath: "/repo/global.json",
	})
	require.NoError(t, err)
	assert.Nil(t, res.workloadSet)
	assert.Equal(t, "8.0.299", res.globalJSONVersion)
	require.Error(t, res.deferred)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(res.deferred))
}
