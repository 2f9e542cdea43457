package types

import (
	"io"
	"os"
)

const WorkloadManifestFileName = "WorkloadManifest.json"

// ReadableWorkloadManifest is a handle to one resolved manifest. Nothing is
// parsed; the streams are opened on demand by the consumer.
type ReadableWorkloadManifest struct {
	ManifestID          string
	ManifestDirectory   string
	ManifestPath        string
	ManifestFeatureBand string
	ManifestVersion     string

	openLocalization func() (io.ReadCloser, error)
}

// NewReadableWorkloadManifest builds a handle for the manifest file inside
// directory. openLocalization may be nil when no catalog lookup applies.
func NewReadableWorkloadManifest(id string, directory string, manifestPath string, featureBand string, version string, openLocalization func() (io.ReadCloser, error)) ReadableWorkloadManifest {
	return ReadableWorkloadManifest{
		ManifestID:          id,
		ManifestDirectory:   directory,
		ManifestPath:        manifestPath,
		ManifestFeatureBand: featureBand,
		ManifestVersion:     version,
		openLocalization:    openLocalization,
	}
}

func (m ReadableWorkloadManifest) OpenManifestStream() (io.ReadCloser, error) {
	return os.Open(m.ManifestPath)
}

// OpenLocalizationStream returns a nil reader and no error when the
// manifest has no catalog for the current culture.
func (m ReadableWorkloadManifest) OpenLocalizationStream() (io.ReadCloser, error) {
	if m.openLocalization == nil {
		return nil, nil
	}
	return m.openLocalization()
}

// ResolvedManifestDirectory is the outcome of probing one manifest id
// directory. Version is empty when it could not be determined.
type ResolvedManifestDirectory struct {
	ID        ManifestID
	Directory string
	Version   string
}
