// SPDX-License-Identifier: MPL-2.0

package warfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"warpack/internal/scope"
)

const sampleWarfile = `
name: "shop"
description: "Web shop application"

scopes: [
	{
		name: "runtime"
		dependencies: ["com.example:lib-a:1.0.0", "com.example:lib-b:1.0.0"]
	},
	{
		name: "provided-compile"
		dependencies: ["jakarta.servlet:servlet-api:6.0.0"]
	},
]

artifacts: {
	"com.example:lib-a:1.0.0":          "libs/lib-a.jar"
	"com.example:lib-b:1.0.0":          "libs/lib-b.jar"
	"jakarta.servlet:servlet-api:6.0.0": "libs/servlet-api.jar"
}
`

func TestParseBytes(t *testing.T) {
	t.Parallel()
	w, err := ParseBytes([]byte(sampleWarfile), "/proj/warfile.cue")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Name != "shop" {
		t.Errorf("name: got %q", w.Name)
	}
	if len(w.Scopes) != 2 {
		t.Errorf("scopes: got %d", len(w.Scopes))
	}
	if got := w.BaseScope(); got != "runtime" {
		t.Errorf("default base scope: got %q", got)
	}
	if got := w.SubtractScope(); got != "provided-runtime" {
		t.Errorf("default subtract scope: got %q", got)
	}
}

func TestParseBytes_PackagingOverrides(t *testing.T) {
	t.Parallel()
	data := `
name: "shop"
packaging: {
	base:         "custom-base"
	subtract:     "custom-provided"
	content_root: "web"
	destination:  "out/shop.war"
}
`
	w, err := ParseBytes([]byte(data), "/proj/warfile.cue")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.BaseScope() != "custom-base" || w.SubtractScope() != "custom-provided" {
		t.Errorf("scope overrides lost: base=%q subtract=%q", w.BaseScope(), w.SubtractScope())
	}
	if got := w.ContentRoot(); got != filepath.Join("/proj", "web") {
		t.Errorf("content root: got %q", got)
	}
	if got := w.Destination(); got != filepath.Join("/proj", "out", "shop.war") {
		t.Errorf("destination: got %q", got)
	}
}

func TestParseBytes_Defaults(t *testing.T) {
	t.Parallel()
	w, err := ParseBytes([]byte(`name: "shop"`), "/proj/warfile.cue")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := w.ContentRoot(); got != filepath.Join("/proj", "src", "main", "webapp") {
		t.Errorf("default content root: got %q", got)
	}
	if got := w.Destination(); got != filepath.Join("/proj", "dist", "shop.war") {
		t.Errorf("default destination: got %q", got)
	}
}

func TestParseBytes_RejectsBadCoordinate(t *testing.T) {
	t.Parallel()
	data := `
name: "shop"
scopes: [{name: "runtime", dependencies: ["not-a-coordinate"]}]
`
	if _, err := ParseBytes([]byte(data), "warfile.cue"); err == nil {
		t.Fatal("expected error for malformed coordinate")
	}
}

func TestParseBytes_RejectsBadScopeName(t *testing.T) {
	t.Parallel()
	data := `
name: "shop"
scopes: [{name: "Not Valid"}]
`
	if _, err := ParseBytes([]byte(data), "warfile.cue"); err == nil {
		t.Fatal("expected schema violation for bad scope name")
	}
}

func TestParseBytes_RejectsBadArtifactKey(t *testing.T) {
	t.Parallel()
	data := `
name: "shop"
artifacts: {"just-a-name": "libs/x.jar"}
`
	if _, err := ParseBytes([]byte(data), "warfile.cue"); err == nil {
		t.Fatal("expected error for malformed artifact coordinate")
	}
}

func TestArtifactFile(t *testing.T) {
	t.Parallel()
	w, err := ParseBytes([]byte(sampleWarfile), "/proj/warfile.cue")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dep, err := scope.ParseDependency("com.example:lib-a:1.0.0")
	if err != nil {
		t.Fatalf("parse dependency: %v", err)
	}
	path, err := w.ArtifactFile(dep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join("/proj", "libs", "lib-a.jar") {
		t.Errorf("got %q", path)
	}

	ghost := scope.Dependency{Group: "g", Name: "ghost", Version: "1.0.0"}
	if _, err := w.ArtifactFile(ghost); err == nil || !strings.Contains(err.Error(), "g:ghost:1.0.0") {
		t.Errorf("expected missing-artifact error naming the coordinate, got %v", err)
	}
}

func TestFind(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(root, Name)
	if err := os.WriteFile(path, []byte(`name: "shop"`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	found, err := Find(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != path {
		t.Errorf("got %q, want %q", found, path)
	}
}

func TestFind_NotFound(t *testing.T) {
	t.Parallel()
	if _, err := Find(t.TempDir()); err == nil {
		t.Fatal("expected error when no warfile exists")
	}
}
