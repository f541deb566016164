// SPDX-License-Identifier: MPL-2.0

// Package publish exposes packaging outputs to the publication subsystem as
// read-only handles. An Artifact wraps a deferred file-path computation: at
// configuration time the packaging task has not run, so its output path is
// unknown; consumers that read the path before the task executed get an
// error, never a stale or guessed value. Registering an artifact must not
// force the task to run.
package publish

import (
	"errors"
	"fmt"
	"sort"
)

type (
	// PathProvider returns the artifact's file path once it is known.
	// ErrNotMaterialized is the sentinel for "task has not executed yet".
	PathProvider func() (string, error)

	// Artifact is a deferred-path published artifact with a variant label
	// and usage attributes. Attributes are classification tags consumers use
	// to select compatible artifacts (e.g. usage=java-runtime).
	Artifact struct {
		variant    string
		attributes map[string]string
		path       PathProvider
	}

	// Component is a named group of published artifacts, the unit the
	// external publication subsystem consumes.
	Component struct {
		// Name identifies the component (e.g. "web-application").
		Name string

		artifacts []*Artifact
	}
)

// ErrNotMaterialized indicates the underlying packaging task has not
// executed yet, so the artifact file does not exist.
var ErrNotMaterialized = errors.New("artifact not materialized yet")

// NewArtifact creates a deferred-path artifact. The provider is invoked on
// every File call; it is never invoked during registration.
func NewArtifact(variant string, attributes map[string]string, path PathProvider) *Artifact {
	attrs := make(map[string]string, len(attributes))
	for k, v := range attributes {
		attrs[k] = v
	}
	return &Artifact{variant: variant, attributes: attrs, path: path}
}

// Variant returns the variant label (e.g. "master").
func (a *Artifact) Variant() string {
	return a.variant
}

// Attributes returns the usage attributes as a copy, sorted access via
// AttributeKeys.
func (a *Artifact) Attributes() map[string]string {
	out := make(map[string]string, len(a.attributes))
	for k, v := range a.attributes {
		out[k] = v
	}
	return out
}

// AttributeKeys returns the attribute keys in sorted order.
func (a *Artifact) AttributeKeys() []string {
	keys := make([]string, 0, len(a.attributes))
	for k := range a.attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// File resolves the artifact's path. Returns ErrNotMaterialized (wrapped)
// while the producing task has not executed.
func (a *Artifact) File() (string, error) {
	path, err := a.path()
	if err != nil {
		return "", fmt.Errorf("artifact %s: %w", a.variant, err)
	}
	return path, nil
}

// NewComponent creates an empty named component.
func NewComponent(name string) *Component {
	return &Component{Name: name}
}

// Add registers an artifact with the component. Purely structural: the
// artifact's path provider is not invoked.
func (c *Component) Add(a *Artifact) {
	c.artifacts = append(c.artifacts, a)
}

// Artifacts returns the registered artifacts in registration order.
func (c *Component) Artifacts() []*Artifact {
	out := make([]*Artifact, len(c.artifacts))
	copy(out, c.artifacts)
	return out
}
