// SPDX-License-Identifier: MPL-2.0

package scope

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

type (
	// Dependency is an artifact coordinate in group:name:version form.
	// Identity is the full coordinate string: two dependencies are the same
	// dependency iff their coordinates are equal. File paths are deliberately
	// not part of identity; at configuration time the backing files may not
	// exist yet.
	Dependency struct {
		// Group is the reverse-DNS style group identifier (e.g. "com.example").
		Group string
		// Name is the artifact name within the group.
		Name string
		// Version is the artifact version. Validated as a semantic version
		// (loose form: "1.0" is accepted and normalized by comparison only,
		// the original spelling is preserved).
		Version string
	}

	// DependencySet is a set of dependencies keyed by coordinate.
	DependencySet map[string]Dependency
)

// ParseDependency parses a "group:name:version" coordinate.
func ParseDependency(coordinate string) (Dependency, error) {
	parts := strings.Split(coordinate, ":")
	if len(parts) != 3 {
		return Dependency{}, fmt.Errorf("invalid coordinate %q: want group:name:version", coordinate)
	}
	for i, p := range parts {
		if strings.TrimSpace(p) == "" {
			return Dependency{}, fmt.Errorf("invalid coordinate %q: segment %d is empty", coordinate, i+1)
		}
	}
	if _, err := semver.NewVersion(parts[2]); err != nil {
		return Dependency{}, fmt.Errorf("invalid coordinate %q: version %q: %w", coordinate, parts[2], err)
	}
	return Dependency{Group: parts[0], Name: parts[1], Version: parts[2]}, nil
}

// Coordinate returns the canonical group:name:version identity string.
func (d Dependency) Coordinate() string {
	return d.Group + ":" + d.Name + ":" + d.Version
}

// ArchiveFileName returns the conventional file name for the dependency
// inside an archive's library directory (name-version.jar).
func (d Dependency) ArchiveFileName() string {
	return d.Name + "-" + d.Version + ".jar"
}

// NewDependencySet creates a set from the given dependencies.
func NewDependencySet(deps ...Dependency) DependencySet {
	s := make(DependencySet, len(deps))
	for _, d := range deps {
		s.Add(d)
	}
	return s
}

// Add inserts d into the set. Adding an already-present dependency is a no-op.
func (s DependencySet) Add(d Dependency) {
	s[d.Coordinate()] = d
}

// Contains reports whether d is in the set.
func (s DependencySet) Contains(d Dependency) bool {
	_, ok := s[d.Coordinate()]
	return ok
}

// Union merges other into a new set, leaving both inputs untouched.
func (s DependencySet) Union(other DependencySet) DependencySet {
	out := make(DependencySet, len(s)+len(other))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Minus returns the set difference s − other by coordinate identity.
func (s DependencySet) Minus(other DependencySet) DependencySet {
	out := make(DependencySet, len(s))
	for k, v := range s {
		if _, ok := other[k]; !ok {
			out[k] = v
		}
	}
	return out
}

// Values returns the dependencies sorted by coordinate for deterministic
// iteration and archive entry ordering.
func (s DependencySet) Values() []Dependency {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]Dependency, 0, len(keys))
	for _, k := range keys {
		out = append(out, s[k])
	}
	return out
}
