package adapters

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"workload-manifests/internal/ports"
)

const GlobalJSONFileName = "global.json"

type GlobalJSONFileAdapter struct{}

func NewGlobalJSONFileAdapter() GlobalJSONFileAdapter {
	return GlobalJSONFileAdapter{}
}

func (a GlobalJSONFileAdapter) WorkloadVersion(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to read %s", path)).
			WithCause(err)
	}
	version, err := scanWorkloadVersion(data)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("failed to read sdk.workloadVersion from %s", path)).
			WithCause(err)
	}
	return version, nil
}

// Find walks from startDir up to the filesystem root looking for
// global.json.
func (a GlobalJSONFileAdapter) Find(startDir string) (string, bool) {
	if strings.TrimSpace(startDir) == "" {
		return "", false
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, GlobalJSONFileName)
		if fileExists(candidate) {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// scanWorkloadVersion walks the top-level object token by token and only
// decodes the "sdk" member; the rest of the document is skipped.
func scanWorkloadVersion(data []byte) (string, error) {
	if len(bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))) == 0 {
		return "", nil
	}
	standard, err := standardizeJSON(data)
	if err != nil {
		return "", err
	}
	decoder := json.NewDecoder(bytes.NewReader(standard))
	token, err := decoder.Token()
	if err == io.EOF {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return "", fmt.Errorf("global.json root is not an object")
	}
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return "", err
		}
		key, _ := keyToken.(string)
		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return "", err
		}
		if !strings.EqualFold(key, "sdk") {
			continue
		}
		return workloadVersionFromSdk(value)
	}
	return "", nil
}

func workloadVersionFromSdk(raw json.RawMessage) (string, error) {
	var sdk map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sdk); err != nil {
		// "sdk": null or a non-object carries no workload version.
		return "", nil
	}
	for key, value := range sdk {
		if !strings.EqualFold(key, "workloadVersion") {
			continue
		}
		var version string
		if err := json.Unmarshal(value, &version); err != nil {
			return "", fmt.Errorf("sdk.workloadVersion must be a string: %w", err)
		}
		return strings.TrimSpace(version), nil
	}
	return "", nil
}

var _ ports.GlobalJSONPort = GlobalJSONFileAdapter{}
