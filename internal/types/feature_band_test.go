package types

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSdkFeatureBand(t *testing.T) {
	tests := []struct {
		name       string
		sdkVersion string
		want       string
		release    string
	}{
		{name: "release rounds patch down", sdkVersion: "8.0.204", want: "8.0.200", release: "8.0.200"},
		{name: "first band", sdkVersion: "8.0.100", want: "8.0.100", release: "8.0.100"},
		{name: "top of band", sdkVersion: "8.0.199", want: "8.0.100", release: "8.0.100"},
		{name: "preview keeps label", sdkVersion: "8.0.200-preview.3", want: "8.0.200-preview.3", release: "8.0.200"},
		{name: "preview build numbers dropped", sdkVersion: "9.0.100-preview.7.24407.12", want: "9.0.100-preview.7", release: "9.0.100"},
		{name: "rc keeps two labels", sdkVersion: "10.0.100-rc.1.25451.107", want: "10.0.100-rc.1", release: "10.0.100"},
		{name: "single label", sdkVersion: "9.0.100-alpha", want: "9.0.100-alpha", release: "9.0.100"},
		{name: "rtm collapses", sdkVersion: "9.0.100-rtm.24476.1", want: "9.0.100", release: "9.0.100"},
		{name: "dev collapses", sdkVersion: "8.0.100-dev", want: "8.0.100", release: "8.0.100"},
		{name: "ci collapses", sdkVersion: "8.0.300-ci", want: "8.0.300", release: "8.0.300"},
		{name: "surrounding space", sdkVersion: " 8.0.101 ", want: "8.0.100", release: "8.0.100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			band, err := NewSdkFeatureBand(tt.sdkVersion)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, band.String()); diff != "" {
				t.Fatalf("unexpected band (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.release, band.StringWithoutPrerelease())
			assert.Equal(t, tt.release, band.WithoutPrerelease().String())
		})
	}
}

func TestNewSdkFeatureBandRejectsInvalidVersions(t *testing.T) {
	for _, value := range []string{"", "8.0", "abc", "8.0.x", "v8.0.100"} {
		t.Run(value, func(t *testing.T) {
			_, err := NewSdkFeatureBand(value)
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
		})
	}
}

func TestFeatureBandPreviewIsDistinctFromRelease(t *testing.T) {
	preview := MustFeatureBand("8.0.200-preview.3")
	release := MustFeatureBand("8.0.200")

	assert.False(t, preview.Equal(release))
	assert.True(t, preview.Less(release))
	assert.Equal(t, "preview.3", preview.Prerelease())
	assert.True(t, preview.WithoutPrerelease().Equal(release))
}

func TestFeatureBandCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{a: "8.0.100", b: "8.0.200", want: -1},
		{a: "8.0.300", b: "8.0.200", want: 1},
		{a: "8.0.204", b: "8.0.250", want: 0},
		{a: "9.0.100", b: "8.0.400", want: 1},
		{a: "9.0.100-preview.1", b: "9.0.100-preview.2", want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, MustFeatureBand(tt.a).Compare(MustFeatureBand(tt.b)))
		})
	}
}

func TestZeroFeatureBand(t *testing.T) {
	var zero SdkFeatureBand
	assert.True(t, zero.IsZero())
	assert.Equal(t, "", zero.String())
	assert.Equal(t, "", zero.StringWithoutPrerelease())
	assert.True(t, zero.Less(MustFeatureBand("6.0.100")))
	assert.Equal(t, 0, zero.Compare(SdkFeatureBand{}))
}
