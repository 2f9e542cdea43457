package adapters

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"workload-manifests/internal/ports"
	"workload-manifests/internal/types"
)

// Probed in order inside <sdkRoot>/sdk/<sdkVersion>.
var knownManifestFileNames = []string{"KnownWorkloadManifests.txt", "IncludedWorkloadManifests.txt"}

type KnownManifestsFileAdapter struct{}

func NewKnownManifestsFileAdapter() KnownManifestsFileAdapter {
	return KnownManifestsFileAdapter{}
}

func (a KnownManifestsFileAdapter) KnownManifestIDs(sdkRoot string, sdkVersion string) ([]types.ManifestID, error) {
	dir := filepath.Join(sdkRoot, "sdk", sdkVersion)
	for _, name := range knownManifestFileNames {
		path := filepath.Join(dir, name)
		if !fileExists(path) {
			continue
		}
		return readManifestIDList(path)
	}
	return nil, nil
}

// readManifestIDList keeps the first occurrence of each id.
func readManifestIDList(path string) ([]types.ManifestID, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to open %s", path)).
			WithCause(err)
	}
	defer file.Close()

	ids := []types.ManifestID{}
	seen := map[string]struct{}{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line == "" {
			continue
		}
		id := types.ManifestID(line)
		if _, ok := seen[id.Key()]; ok {
			continue
		}
		seen[id.Key()] = struct{}{}
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to read %s", path)).
			WithCause(err)
	}
	return ids, nil
}

var _ ports.KnownManifestsPort = KnownManifestsFileAdapter{}
