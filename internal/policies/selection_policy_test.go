package policies

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsesInstallStateManifests(t *testing.T) {
	tests := map[WorkloadSetSource]bool{
		SourceNone:             true,
		SourceInstallState:     true,
		SourceExplicit:         false,
		SourceGlobalJSON:       false,
		SourceHighestAvailable: false,
	}
	for source, want := range tests {
		assert.Equal(t, want, UsesInstallStateManifests(source), string(source))
	}
}

func TestPinNotFound(t *testing.T) {
	err := PinNotFound(SourceGlobalJSON, "8.0.201", "/src/global.json")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "8.0.201")
	assert.Contains(t, err.Error(), "/src/global.json")

	err = PinNotFound(SourceExplicit, "9.0.100", "")
	assert.Contains(t, err.Error(), "workload set version 9.0.100 was not found")
}

func TestManifestNotFoundErrorsNameTheSpecifier(t *testing.T) {
	err := ManifestFromWorkloadSetNotFound("Microsoft.NET.Sdk.iOS: 17.2.8053/8.0.100", "8.0.201")
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "Microsoft.NET.Sdk.iOS: 17.2.8053/8.0.100")
	assert.Contains(t, err.Error(), "8.0.201")

	err = ManifestFromInstallStateNotFound("Contoso: 1.0.0/8.0.200", "/opt/dotnet/default.json")
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "/opt/dotnet/default.json")
}
