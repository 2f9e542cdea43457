package adapters

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"workload-manifests/internal/ports"
	"workload-manifests/internal/types"
)

const (
	workloadSetFileSuffix   = ".workloadset.json"
	baselineWorkloadSetFile = "baseline.workloadset.json"
	manifestsLabelPrefix    = "manifests."
)

type WorkloadSetDirAdapter struct{}

func NewWorkloadSetDirAdapter() WorkloadSetDirAdapter {
	return WorkloadSetDirAdapter{}
}

func (a WorkloadSetDirAdapter) AvailableWorkloadSets(roots []string, band types.SdkFeatureBand) (map[string]types.WorkloadSet, error) {
	available := map[string]types.WorkloadSet{}
	for _, root := range roots {
		sets, err := a.readFeatureBand(filepath.Join(root, band.String()), band)
		if err != nil {
			return nil, err
		}
		addMissing(available, sets)
	}
	return available, nil
}

// AllWorkloadSets returns the sets of every feature band under roots.
// Band folders whose name is not the canonical band name (for example
// 9.0.100-rtm.24476, which parses as 9.0.100) are skipped.
func (a WorkloadSetDirAdapter) AllWorkloadSets(roots []string) (map[string]types.WorkloadSet, error) {
	available := map[string]types.WorkloadSet{}
	for _, root := range roots {
		entries, err := readDirIfExists(root)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("failed to list manifest root %s", root)).
				WithCause(err)
		}
		for _, entry := range entries {
			if !isDirEntry(root, entry) {
				continue
			}
			band, err := types.NewSdkFeatureBand(entry.Name())
			if err != nil || band.String() != entry.Name() {
				continue
			}
			sets, err := a.readFeatureBand(filepath.Join(root, entry.Name()), band)
			if err != nil {
				return nil, err
			}
			addMissing(available, sets)
		}
	}
	return available, nil
}

func (a WorkloadSetDirAdapter) readFeatureBand(bandDir string, band types.SdkFeatureBand) (map[string]types.WorkloadSet, error) {
	setsRoot := filepath.Join(bandDir, WorkloadSetsFolderName)
	entries, err := readDirIfExists(setsRoot)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to list workload sets in %s", setsRoot)).
			WithCause(err)
	}
	sets := map[string]types.WorkloadSet{}
	for _, entry := range entries {
		if !isDirEntry(setsRoot, entry) {
			continue
		}
		version := entry.Name()
		setBand, err := types.WorkloadSetFeatureBand(version)
		if err != nil {
			log.Debug().Str("dir", filepath.Join(setsRoot, version)).Msg("ignoring workload set folder with unparsable version")
			continue
		}
		if !workloadSetBelongsToBand(setBand, band) {
			// A set filed under the wrong band could never be found again
			// by its version, so it is not offered at all.
			log.Debug().Str("version", version).Str("band", band.String()).Msg("ignoring workload set filed under another feature band")
			continue
		}
		set, err := a.ReadWorkloadSet(filepath.Join(setsRoot, version), version, band)
		if err != nil {
			return nil, err
		}
		sets[version] = set
	}
	return sets, nil
}

// ReadWorkloadSet merges every *.workloadset.json in dir. Files are
// applied in ordinal name order and later files win on duplicate ids.
func (a WorkloadSetDirAdapter) ReadWorkloadSet(dir string, version string, band types.SdkFeatureBand) (types.WorkloadSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return types.WorkloadSet{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("workload set directory not found: %s", dir)).
			WithCause(err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), workloadSetFileSuffix) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	set := types.NewWorkloadSet(version)
	for _, name := range files {
		path := filepath.Join(dir, name)
		if strings.EqualFold(name, baselineWorkloadSetFile) {
			set.IsBaselineWorkloadSet = true
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return types.WorkloadSet{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("failed to read workload set file %s", path)).
				WithCause(err)
		}
		if len(bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))) == 0 {
			continue
		}
		var pinned map[string]string
		if err := decodeLenientJSON(data, &pinned); err != nil {
			return types.WorkloadSet{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("failed to parse workload set file %s", path)).
				WithCause(err)
		}
		if err := set.MergeDictionary(pinned, band); err != nil {
			return types.WorkloadSet{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid workload set file %s", path)).
				WithCause(err)
		}
	}
	return set, nil
}

// workloadSetBelongsToBand accepts a set whose version decomposes to the
// folder band. In a release band folder, fingerprint-labelled set versions
// of the same numbers (e.g. 8.0.100-manifests.1a2b3c4d) also belong; other
// prerelease labels such as 8.0.100-preview.1 do not.
func workloadSetBelongsToBand(setBand types.SdkFeatureBand, folderBand types.SdkFeatureBand) bool {
	if setBand.Equal(folderBand) {
		return true
	}
	return folderBand.Prerelease() == "" &&
		strings.HasPrefix(setBand.Prerelease(), manifestsLabelPrefix) &&
		setBand.WithoutPrerelease().Equal(folderBand)
}

func addMissing(dst map[string]types.WorkloadSet, src map[string]types.WorkloadSet) {
	for version, set := range src {
		if _, ok := dst[version]; !ok {
			dst[version] = set
		}
	}
}

var _ ports.WorkloadSetRepositoryPort = WorkloadSetDirAdapter{}
