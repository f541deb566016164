// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"testing"

	"warpack/internal/issue"
	"warpack/internal/publish"
	"warpack/internal/scope"
	"warpack/pkg/warfile"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{
			name: "duplicate scope",
			err:  fmt.Errorf("assemble: %w", &scope.DuplicateScopeError{Name: "runtime"}),
			want: issue.DuplicateScopeId,
		},
		{
			name: "unknown scope",
			err:  fmt.Errorf("packaging task package: %w", &scope.UnknownScopeError{Name: "gone"}),
			want: issue.UnknownScopeId,
		},
		{
			name: "cycle",
			err:  &scope.CycleError{Child: "a", Parent: "b"},
			want: issue.DependencyCycleId,
		},
		{
			name: "missing artifact",
			err:  fmt.Errorf("packaging task package: %w", &warfile.MissingArtifactError{Coordinate: "g:n:1.0.0"}),
			want: issue.MissingArtifactId,
		},
		{
			name: "warfile not found",
			err:  errors.New("no warfile.cue found in /proj or any parent directory"),
			want: issue.WarfileNotFoundId,
		},
		{
			name: "warfile parse",
			err:  errors.New("warfile.cue: scopes[0].name: invalid value"),
			want: issue.WarfileParseErrorId,
		},
		{
			name: "unclassified",
			err:  errors.New("something else"),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := classify(tt.err); got != tt.want {
				t.Errorf("classify(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFormatAttributes(t *testing.T) {
	t.Parallel()
	a := publish.NewArtifact("master",
		map[string]string{"usage": "java-runtime", "category": "library"},
		func() (string, error) { return "", publish.ErrNotMaterialized })
	if got, want := formatAttributes(a), "category=library, usage=java-runtime"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
