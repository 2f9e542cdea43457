package adapters

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// decodeLenientJSON accepts comments and trailing commas, which the SDK's
// own readers tolerate in every file this package consumes.
func decodeLenientJSON(data []byte, v any) error {
	standard, err := standardizeJSON(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(standard, v)
}

func standardizeJSON(data []byte) ([]byte, error) {
	return hujson.Standardize(bytes.TrimPrefix(data, utf8BOM))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// readDirIfExists treats a missing directory as empty.
func readDirIfExists(path string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return entries, nil
}

// isDirEntry follows symlinks, which DirEntry.IsDir does not.
func isDirEntry(parent string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	return dirExists(filepath.Join(parent, entry.Name()))
}
