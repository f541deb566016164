// SPDX-License-Identifier: MPL-2.0

package warfile

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"warpack/pkg/cueutil"
)

//go:embed warfile_schema.cue
var warfileSchema string

// Parse reads and parses the warfile at the given path.
func Parse(path string) (*Warfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read warfile at %s: %w", path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses warfile content, unifying it with the embedded schema
// before decoding.
func ParseBytes(data []byte, path string) (*Warfile, error) {
	w, err := cueutil.ParseAndDecodeString[Warfile](warfileSchema, data, "#Warfile", path)
	if err != nil {
		return nil, err
	}
	w.FilePath = path
	if err := w.validate(); err != nil {
		return nil, cueutil.FormatError(err, path)
	}
	return w, nil
}

// Find locates a warfile starting at dir: dir itself first, then each parent
// directory up to the filesystem root.
func Find(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(abs, Name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("no %s found in %s or any parent directory", Name, dir)
		}
		abs = parent
	}
}
