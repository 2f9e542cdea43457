package core

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// parsedSetVersion splits a workload set version into its numeric core
// (two to four components, missing ones are -1) and the prerelease/build
// suffix including its leading separator.
type parsedSetVersion struct {
	core   [4]int64
	suffix string
	valid  bool
}

// versionCache memoizes parsed workload set versions so that picking the
// highest set does not re-parse the same strings on every comparison.
type versionCache struct {
	parsed   map[string]parsedSetVersion
	suffixes map[string]*semver.Version
}

func newVersionCache() *versionCache {
	return &versionCache{
		parsed:   map[string]parsedSetVersion{},
		suffixes: map[string]*semver.Version{},
	}
}

func (c *versionCache) setVersion(value string) parsedSetVersion {
	if parsed, ok := c.parsed[value]; ok {
		return parsed
	}
	parsed := parseSetVersion(value)
	c.parsed[value] = parsed
	return parsed
}

func parseSetVersion(value string) parsedSetVersion {
	core := value
	suffix := ""
	if idx := strings.IndexAny(value, "-+"); idx >= 0 {
		core = value[:idx]
		suffix = value[idx:]
	}
	parts := strings.Split(core, ".")
	if len(parts) < 2 || len(parts) > 4 {
		return parsedSetVersion{}
	}
	out := parsedSetVersion{core: [4]int64{-1, -1, -1, -1}, suffix: suffix, valid: true}
	for i, part := range parts {
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil || n < 0 {
			return parsedSetVersion{}
		}
		out.core[i] = n
	}
	return out
}

// suffixVersion grafts the suffix onto a fixed core so semver precedence
// rules order the prerelease labels.
func (c *versionCache) suffixVersion(suffix string) (*semver.Version, bool) {
	if parsed, ok := c.suffixes[suffix]; ok {
		return parsed, parsed != nil
	}
	parsed, err := semver.StrictNewVersion("1.1.1" + suffix)
	if err != nil {
		parsed = nil
	}
	c.suffixes[suffix] = parsed
	return parsed, parsed != nil
}

// compare orders workload set versions numerically by their core, then by
// prerelease precedence. Unparsable versions fall back to ordinal order.
func (c *versionCache) compare(a string, b string) int {
	if a == b {
		return 0
	}
	pa, pb := c.setVersion(a), c.setVersion(b)
	if !pa.valid || !pb.valid {
		return strings.Compare(a, b)
	}
	for i := range pa.core {
		switch {
		case pa.core[i] < pb.core[i]:
			return -1
		case pa.core[i] > pb.core[i]:
			return 1
		}
	}
	if pa.suffix == pb.suffix {
		return 0
	}
	sa, okA := c.suffixVersion(pa.suffix)
	sb, okB := c.suffixVersion(pb.suffix)
	if !okA || !okB {
		return strings.Compare(pa.suffix, pb.suffix)
	}
	return sa.Compare(sb)
}

// highestVersion returns the greatest key. Keys are visited in sorted
// order so ties between equal-precedence versions resolve the same way on
// every run.
func highestVersion[T any](available map[string]T) (string, bool) {
	if len(available) == 0 {
		return "", false
	}
	keys := make([]string, 0, len(available))
	for key := range available {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	cache := newVersionCache()
	best := keys[0]
	for _, key := range keys[1:] {
		if cache.compare(key, best) >= 0 {
			best = key
		}
	}
	return best, true
}

// SortWorkloadSetVersions orders versions ascending by workload set
// version precedence.
func SortWorkloadSetVersions(versions []string) {
	cache := newVersionCache()
	sort.SliceStable(versions, func(i, j int) bool {
		return cache.compare(versions[i], versions[j]) < 0
	})
}
