package adapters

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
)

const localizationFolderName = "localize"

// cultureVariables are consulted in POSIX precedence order.
var cultureVariables = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// LocalizationCatalogAdapter finds localize/WorkloadManifest.<culture>.json
// next to a manifest, walking from the current culture to its parents.
type LocalizationCatalogAdapter struct {
	Getenv func(string) string
}

func NewLocalizationCatalogAdapter() LocalizationCatalogAdapter {
	return LocalizationCatalogAdapter{Getenv: os.Getenv}
}

func (a LocalizationCatalogAdapter) CurrentCulture() language.Tag {
	getenv := a.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, name := range cultureVariables {
		value := strings.TrimSpace(getenv(name))
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		// en_US.UTF-8@euro -> en-US
		if idx := strings.IndexAny(value, ".@"); idx >= 0 {
			value = value[:idx]
		}
		tag, err := language.Parse(strings.ReplaceAll(value, "_", "-"))
		if err != nil {
			continue
		}
		return tag
	}
	return language.Und
}

func (a LocalizationCatalogAdapter) Opener(manifestPath string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return a.Open(manifestPath)
	}
}

// Open returns nil, nil when no catalog exists for the culture chain.
func (a LocalizationCatalogAdapter) Open(manifestPath string) (io.ReadCloser, error) {
	dir := filepath.Join(filepath.Dir(manifestPath), localizationFolderName)
	if !dirExists(dir) {
		return nil, nil
	}
	for _, culture := range cultureChain(a.CurrentCulture()) {
		path := filepath.Join(dir, "WorkloadManifest."+culture+".json")
		if fileExists(path) {
			return os.Open(path)
		}
	}
	return nil, nil
}

func cultureChain(tag language.Tag) []string {
	var chain []string
	seen := map[string]struct{}{}
	for tag != language.Und {
		name := tag.String()
		if _, ok := seen[name]; ok {
			break
		}
		seen[name] = struct{}{}
		chain = append(chain, name)
		tag = tag.Parent()
	}
	return chain
}
