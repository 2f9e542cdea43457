package types

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ZanzyTHEbar/errbuilder-go"
)

// SdkFeatureBand is the coarse version bucket manifests and workload sets
// are filed under. The patch number is rounded down to the hundreds.
// Preview SDKs keep the first two prerelease labels so they never share a
// band with the release; dev, ci and rtm builds collapse to the release band.
type SdkFeatureBand struct {
	version *semver.Version
}

var bandCollapsingLabels = []string{"dev", "ci", "rtm"}

func NewSdkFeatureBand(sdkVersion string) (SdkFeatureBand, error) {
	parsed, err := semver.StrictNewVersion(strings.TrimSpace(sdkVersion))
	if err != nil {
		return SdkFeatureBand{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid SDK version %q", sdkVersion)).
			WithCause(err)
	}
	return featureBandOf(parsed), nil
}

// MustFeatureBand panics on an unparsable version. Intended for constants
// and tests.
func MustFeatureBand(sdkVersion string) SdkFeatureBand {
	band, err := NewSdkFeatureBand(sdkVersion)
	if err != nil {
		panic(err)
	}
	return band
}

func featureBandOf(v *semver.Version) SdkFeatureBand {
	prerelease := ""
	if pre := v.Prerelease(); pre != "" && !collapsesToRelease(pre) {
		labels := strings.Split(pre, ".")
		if len(labels) > 1 {
			prerelease = labels[0] + "." + labels[1]
		} else {
			prerelease = labels[0]
		}
	}
	band := semver.New(v.Major(), v.Minor(), (v.Patch()/100)*100, prerelease, "")
	return SdkFeatureBand{version: band}
}

func collapsesToRelease(prerelease string) bool {
	for _, label := range bandCollapsingLabels {
		if strings.Contains(prerelease, label) {
			return true
		}
	}
	return false
}

func (b SdkFeatureBand) IsZero() bool {
	return b.version == nil
}

func (b SdkFeatureBand) String() string {
	if b.version == nil {
		return ""
	}
	return b.version.String()
}

func (b SdkFeatureBand) StringWithoutPrerelease() string {
	if b.version == nil {
		return ""
	}
	return fmt.Sprintf("%d.%d.%d", b.version.Major(), b.version.Minor(), b.version.Patch())
}

// WithoutPrerelease returns the release band sharing this band's numbers.
func (b SdkFeatureBand) WithoutPrerelease() SdkFeatureBand {
	if b.version == nil {
		return b
	}
	return SdkFeatureBand{version: semver.New(b.version.Major(), b.version.Minor(), b.version.Patch(), "", "")}
}

func (b SdkFeatureBand) Prerelease() string {
	if b.version == nil {
		return ""
	}
	return b.version.Prerelease()
}

// Compare orders bands by release-version precedence; a zero band sorts
// before any other.
func (b SdkFeatureBand) Compare(other SdkFeatureBand) int {
	switch {
	case b.version == nil && other.version == nil:
		return 0
	case b.version == nil:
		return -1
	case other.version == nil:
		return 1
	}
	return b.version.Compare(other.version)
}

func (b SdkFeatureBand) Equal(other SdkFeatureBand) bool {
	return b.String() == other.String()
}

func (b SdkFeatureBand) Less(other SdkFeatureBand) bool {
	return b.Compare(other) < 0
}
