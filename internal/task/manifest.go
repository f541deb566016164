// SPDX-License-Identifier: MPL-2.0

package task

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type (
	// Manifest records what one execution packed: the resolved classpath and
	// the archive entry list. It is written next to the archive so consumers
	// can audit the packaging decision without opening the archive.
	Manifest struct {
		// Version is the manifest format version.
		Version string `toml:"version"`

		// Generated is the timestamp of the execution that produced this
		// manifest.
		Generated time.Time `toml:"generated"`

		// Archive is the archive output path.
		Archive string `toml:"archive"`

		// Classpath lists the packed dependency coordinates, sorted.
		Classpath []string `toml:"classpath"`

		// Entries lists every archive entry path, in written order.
		Entries []string `toml:"entries"`
	}
)

// ManifestVersion is the current manifest format version.
const ManifestVersion = "1.0"

// NewManifest builds a manifest from an execution result.
func NewManifest(res *Result) *Manifest {
	m := &Manifest{
		Version:   ManifestVersion,
		Generated: time.Now().UTC(),
		Archive:   res.Destination,
	}
	for _, dep := range res.Classpath {
		m.Classpath = append(m.Classpath, dep.Coordinate())
	}
	for _, entry := range res.Entries {
		m.Entries = append(m.Entries, entry.ArchivePath)
	}
	return m
}

// ManifestPath returns the manifest location for an archive destination.
func ManifestPath(destination string) string {
	return destination + ".manifest.toml"
}

// Save writes the manifest as TOML.
func (m *Manifest) Save(path string) error {
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode packaging manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write packaging manifest: %w", err)
	}
	return nil
}

// LoadManifest reads a manifest written by a previous execution.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read packaging manifest: %w", err)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse packaging manifest: %w", err)
	}
	return &m, nil
}
