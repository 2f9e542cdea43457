package types

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ManifestVersion is a release-style version (major.minor.patch[-pre]) of
// one manifest. The raw text is kept so paths round-trip exactly.
type ManifestVersion struct {
	raw    string
	parsed *semver.Version
}

func ParseManifestVersion(value string) (ManifestVersion, error) {
	trimmed := strings.TrimSpace(value)
	parsed, err := semver.StrictNewVersion(trimmed)
	if err != nil {
		return ManifestVersion{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid manifest version %q", value)).
			WithCause(err)
	}
	return ManifestVersion{raw: trimmed, parsed: parsed}, nil
}

func MustManifestVersion(value string) ManifestVersion {
	v, err := ParseManifestVersion(value)
	if err != nil {
		panic(err)
	}
	return v
}

func (v ManifestVersion) IsZero() bool {
	return v.parsed == nil
}

func (v ManifestVersion) String() string {
	return v.raw
}

func (v ManifestVersion) Compare(other ManifestVersion) int {
	switch {
	case v.parsed == nil && other.parsed == nil:
		return 0
	case v.parsed == nil:
		return -1
	case other.parsed == nil:
		return 1
	}
	return v.parsed.Compare(other.parsed)
}

// ManifestSpecifier fully addresses one manifest directory on disk:
// <root>/<FeatureBand>/<ID>/<Version>.
type ManifestSpecifier struct {
	ID          ManifestID
	Version     ManifestVersion
	FeatureBand SdkFeatureBand
}

func (s ManifestSpecifier) String() string {
	return fmt.Sprintf("%s: %s/%s", s.ID, s.Version, s.FeatureBand)
}
