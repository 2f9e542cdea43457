package adapters

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"workload-manifests/internal/ports"
	"workload-manifests/internal/types"
)

type InstallStateFileAdapter struct{}

func NewInstallStateFileAdapter() InstallStateFileAdapter {
	return InstallStateFileAdapter{}
}

func (a InstallStateFileAdapter) Load(path string) (types.InstallState, error) {
	if path == "" {
		return types.InstallState{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.InstallState{}, nil
		}
		return types.InstallState{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to read install state %s", path)).
			WithCause(err)
	}
	var state types.InstallState
	if err := decodeLenientJSON(data, &state); err != nil {
		return types.InstallState{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("failed to parse install state %s", path)).
			WithCause(err)
	}
	return state, nil
}

// IsUserLocal reports whether workloads for band are installed into the
// user profile rather than the SDK directory.
func (a InstallStateFileAdapter) IsUserLocal(sdkRoot string, band types.SdkFeatureBand) bool {
	return fileExists(filepath.Join(sdkRoot, "metadata", "workloads", band.String(), "userlocal"))
}

func (a InstallStateFileAdapter) DirectoryExists(path string) bool {
	return dirExists(path)
}

var _ ports.InstallStatePort = InstallStateFileAdapter{}
