// SPDX-License-Identifier: MPL-2.0

package publish

import (
	"errors"
	"testing"
)

func TestArtifact_DeferredPath(t *testing.T) {
	t.Parallel()

	materialized := false
	invocations := 0
	a := NewArtifact("master", map[string]string{"usage": "java-runtime"}, func() (string, error) {
		invocations++
		if !materialized {
			return "", ErrNotMaterialized
		}
		return "dist/app.war", nil
	})

	// Registration must not invoke the provider.
	c := NewComponent("web-application")
	c.Add(a)
	if invocations != 0 {
		t.Fatalf("registration forced evaluation (%d invocations)", invocations)
	}

	// Before execution, reading the path fails with the sentinel.
	if _, err := a.File(); !errors.Is(err, ErrNotMaterialized) {
		t.Fatalf("expected ErrNotMaterialized, got %v", err)
	}

	// After the task ran, the same handle resolves.
	materialized = true
	path, err := a.File()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "dist/app.war" {
		t.Errorf("got %q", path)
	}
}

func TestArtifact_VariantAndAttributes(t *testing.T) {
	t.Parallel()
	a := NewArtifact("master", map[string]string{"usage": "java-runtime", "category": "library"}, func() (string, error) {
		return "", ErrNotMaterialized
	})
	if a.Variant() != "master" {
		t.Errorf("variant: got %q", a.Variant())
	}
	attrs := a.Attributes()
	if attrs["usage"] != "java-runtime" {
		t.Errorf("attributes: got %v", attrs)
	}
	// Mutating the copy must not affect the artifact.
	attrs["usage"] = "mutated"
	if a.Attributes()["usage"] != "java-runtime" {
		t.Errorf("Attributes returned shared state")
	}
	keys := a.AttributeKeys()
	if len(keys) != 2 || keys[0] != "category" || keys[1] != "usage" {
		t.Errorf("keys not sorted: %v", keys)
	}
}

func TestComponent_Artifacts(t *testing.T) {
	t.Parallel()
	c := NewComponent("web-application")
	a1 := NewArtifact("master", nil, func() (string, error) { return "", ErrNotMaterialized })
	a2 := NewArtifact("sources", nil, func() (string, error) { return "", ErrNotMaterialized })
	c.Add(a1)
	c.Add(a2)
	got := c.Artifacts()
	if len(got) != 2 || got[0] != a1 || got[1] != a2 {
		t.Errorf("registration order lost")
	}
}
