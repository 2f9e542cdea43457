package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"workload-manifests/internal/policies"
	"workload-manifests/internal/ports"
	"workload-manifests/internal/types"
)

// resolution is the immutable outcome of one selection pass. Providers
// replace it wholesale on refresh.
type resolution struct {
	workloadSet *types.WorkloadSet
	source      policies.WorkloadSetSource

	installStateManifests *types.WorkloadSet
	installStatePath      string
	workloadSetsEnabled   bool

	globalJSONVersion string
	globalJSONPath    string

	// deferred is returned from manifest access instead of failing the
	// pass, so a provider pinned by global.json to a set that is not yet
	// installed can still be built (and used to install it).
	deferred error
}

type selectionInputs struct {
	roots            []string
	band             types.SdkFeatureBand
	explicitVersion  string
	globalJSONPath   string
	installStatePath string
}

type selectionPorts struct {
	workloadSets ports.WorkloadSetRepositoryPort
	globalJSON   ports.GlobalJSONPort
	installState ports.InstallStatePort
}

// resolveSelection picks at most one workload set, in priority order:
// explicit version, global.json, install state, highest available.
func resolveSelection(deps selectionPorts, in selectionInputs) (resolution, error) {
	available, err := deps.workloadSets.AvailableWorkloadSets(in.roots, in.band)
	if err != nil {
		return resolution{}, err
	}
	lookup := workloadSetLookup{deps: deps, in: in, available: available}

	var res resolution
	if in.explicitVersion != "" {
		set, ok, err := lookup.find(in.explicitVersion)
		if err != nil {
			return resolution{}, err
		}
		if !ok {
			return resolution{}, policies.PinNotFound(policies.SourceExplicit, in.explicitVersion, "")
		}
		res.selectSet(set, policies.SourceExplicit)
	}

	if res.workloadSet == nil {
		pinned, err := deps.globalJSON.WorkloadVersion(in.globalJSONPath)
		if err != nil {
			return resolution{}, err
		}
		if pinned != "" {
			res.globalJSONVersion = pinned
			res.globalJSONPath = in.globalJSONPath
			set, ok, err := lookup.find(pinned)
			if err != nil {
				return resolution{}, err
			}
			if !ok {
				log.Debug().Str("version", pinned).Str("global_json", in.globalJSONPath).Msg("global.json workload set is not installed")
				res.source = policies.SourceGlobalJSON
				res.deferred = policies.PinNotFound(policies.SourceGlobalJSON, pinned, in.globalJSONPath)
				return res, nil
			}
			res.selectSet(set, policies.SourceGlobalJSON)
		}
	}

	state, err := deps.installState.Load(in.installStatePath)
	if err != nil {
		return resolution{}, err
	}
	res.installStatePath = in.installStatePath
	res.workloadSetsEnabled = state.WorkloadSetsEnabled()
	if res.workloadSet == nil {
		if state.WorkloadVersion != "" {
			set, ok, err := lookup.find(state.WorkloadVersion)
			if err != nil {
				return resolution{}, err
			}
			if !ok {
				return resolution{}, policies.PinNotFound(policies.SourceInstallState, state.WorkloadVersion, in.installStatePath)
			}
			res.selectSet(set, policies.SourceInstallState)
		}
		if len(state.Manifests) > 0 {
			overrides, err := types.WorkloadSetFromDictionary("", state.Manifests, in.band)
			if err != nil {
				return resolution{}, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("invalid manifests in install state %s", in.installStatePath)).
					WithCause(err)
			}
			res.installStateManifests = &overrides
		}
	}

	// The newest set of the band only applies once the install opted in to
	// workload sets, and it replaces any install-state manifests.
	if res.workloadSet == nil && state.WorkloadSetsEnabled() {
		if version, ok := highestVersion(available); ok {
			res.selectSet(available[version], policies.SourceHighestAvailable)
			res.installStateManifests = nil
		}
	}

	if res.workloadSet != nil {
		log.Debug().
			Str("version", res.workloadSet.Version).
			Str("source", string(res.source)).
			Str("band", in.band.String()).
			Msg("selected workload set")
	}
	return res, nil
}

func (r *resolution) selectSet(set types.WorkloadSet, source policies.WorkloadSetSource) {
	selected := set
	r.workloadSet = &selected
	r.source = source
}

// useInstallStateManifests reports whether install-state overrides apply
// on top of the active selection.
func (r resolution) useInstallStateManifests() bool {
	return r.installStateManifests != nil && policies.UsesInstallStateManifests(r.source)
}

type workloadSetLookup struct {
	deps      selectionPorts
	in        selectionInputs
	available map[string]types.WorkloadSet
}

// find looks a pinned version up in the current band first, then in the
// band its own version belongs to, then in the legacy baseline band.
func (l workloadSetLookup) find(version string) (types.WorkloadSet, bool, error) {
	if set, ok := l.available[version]; ok {
		return set, true, nil
	}
	for _, band := range l.fallbackBands(version) {
		sets, err := l.deps.workloadSets.AvailableWorkloadSets(l.in.roots, band)
		if err != nil {
			return types.WorkloadSet{}, false, err
		}
		if set, ok := sets[version]; ok {
			log.Debug().Str("version", version).Str("band", band.String()).Msg("found workload set in another feature band")
			return set, true, nil
		}
	}
	return types.WorkloadSet{}, false, nil
}

func (l workloadSetLookup) fallbackBands(version string) []types.SdkFeatureBand {
	var candidates []types.SdkFeatureBand
	if own, err := types.WorkloadSetFeatureBand(version); err == nil {
		candidates = append(candidates, own, own.WithoutPrerelease())
	}
	candidates = append(candidates, types.MustFeatureBand(policies.LegacyBaselineBand))

	var bands []types.SdkFeatureBand
	seen := map[string]struct{}{l.in.band.String(): {}}
	for _, band := range candidates {
		if _, ok := seen[band.String()]; ok {
			continue
		}
		seen[band.String()] = struct{}{}
		bands = append(bands, band)
	}
	return bands
}
