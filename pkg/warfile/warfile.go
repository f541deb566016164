// SPDX-License-Identifier: MPL-2.0

// Package warfile reads warfile.cue build manifests: the application name,
// scope declarations, the coordinate-to-file artifact store, and the
// packaging task settings. A warfile only declares configuration; building
// the scope graph from it is the build assembler's job.
package warfile

import (
	"fmt"
	"path/filepath"

	"warpack/internal/scope"
)

// Name is the base name of the build manifest file.
const Name = "warfile.cue"

// DefaultContentRoot is the conventional web content directory used when the
// warfile does not set one.
const DefaultContentRoot = "src/main/webapp"

type (
	// ScopeDecl declares or augments a dependency scope. If the name matches
	// an existing scope (including the built-ins) the declaration augments
	// it; otherwise a new scope is created.
	ScopeDecl struct {
		Name         string   `json:"name"`
		Description  string   `json:"description,omitempty"`
		Extends      []string `json:"extends,omitempty"`
		Dependencies []string `json:"dependencies,omitempty"`
	}

	// PackageDecl configures the packaging task. Base and Subtract are scope
	// names, resolved against the graph at execution time, not here.
	PackageDecl struct {
		Base        string `json:"base"`
		Subtract    string `json:"subtract"`
		ContentRoot string `json:"content_root,omitempty"`
		Destination string `json:"destination,omitempty"`
	}

	// Warfile is a parsed build manifest.
	Warfile struct {
		Name        string            `json:"name"`
		Description string            `json:"description,omitempty"`
		Scopes      []ScopeDecl       `json:"scopes,omitempty"`
		Artifacts   map[string]string `json:"artifacts,omitempty"`
		Packaging   *PackageDecl      `json:"packaging,omitempty"`

		// FilePath is where this warfile was loaded from (not in CUE).
		FilePath string `json:"-"`
	}
)

// Dir returns the directory containing the warfile; relative paths in the
// manifest are resolved against it.
func (w *Warfile) Dir() string {
	return filepath.Dir(w.FilePath)
}

// ContentRoot returns the configured content root, or the conventional
// default, as an absolute path anchored at the warfile directory.
func (w *Warfile) ContentRoot() string {
	root := DefaultContentRoot
	if w.Packaging != nil && w.Packaging.ContentRoot != "" {
		root = w.Packaging.ContentRoot
	}
	return w.anchor(root)
}

// Destination returns the configured archive output path, or
// dist/<name>.war, anchored at the warfile directory.
func (w *Warfile) Destination() string {
	dest := filepath.Join("dist", w.Name+".war")
	if w.Packaging != nil && w.Packaging.Destination != "" {
		dest = w.Packaging.Destination
	}
	return w.anchor(dest)
}

// BaseScope returns the packaging base scope name.
func (w *Warfile) BaseScope() string {
	if w.Packaging != nil && w.Packaging.Base != "" {
		return w.Packaging.Base
	}
	return "runtime"
}

// SubtractScope returns the packaging subtract scope name.
func (w *Warfile) SubtractScope() string {
	if w.Packaging != nil && w.Packaging.Subtract != "" {
		return w.Packaging.Subtract
	}
	return "provided-runtime"
}

// MissingArtifactError indicates a dependency on the packaging classpath
// that has no file mapping in the warfile's artifact store.
type MissingArtifactError struct {
	// Coordinate is the unmapped dependency coordinate.
	Coordinate string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("no artifact file declared for %s", e.Coordinate)
}

// ArtifactFile returns the file backing a coordinate, anchored at the
// warfile directory, or MissingArtifactError if the store has no mapping
// for it.
func (w *Warfile) ArtifactFile(dep scope.Dependency) (string, error) {
	path, ok := w.Artifacts[dep.Coordinate()]
	if !ok {
		return "", &MissingArtifactError{Coordinate: dep.Coordinate()}
	}
	return w.anchor(path), nil
}

func (w *Warfile) anchor(path string) string {
	if filepath.IsAbs(path) || w.FilePath == "" {
		return path
	}
	return filepath.Join(w.Dir(), path)
}

// validate checks what the CUE schema cannot express: every declared
// dependency coordinate and every artifact store key must parse.
func (w *Warfile) validate() error {
	for _, s := range w.Scopes {
		for _, coordinate := range s.Dependencies {
			if _, err := scope.ParseDependency(coordinate); err != nil {
				return fmt.Errorf("scope %q: %w", s.Name, err)
			}
		}
	}
	for coordinate := range w.Artifacts {
		if _, err := scope.ParseDependency(coordinate); err != nil {
			return fmt.Errorf("artifacts: %w", err)
		}
	}
	return nil
}
