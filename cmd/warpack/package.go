// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"warpack/internal/archive"
	"warpack/internal/build"
	"warpack/internal/issue"
	"warpack/internal/publish"
	"warpack/internal/scope"
	"warpack/pkg/warfile"
)

var (
	// packageFile overrides warfile discovery with an explicit path
	packageFile string

	packageCmd = &cobra.Command{
		Use:   "package",
		Short: "Build the web archive",
		Long: `Build the web archive from the warfile's content root and the derived
packaging classpath (base scope minus subtract scope). Dependencies
reachable from the subtract scope are supplied by the deployment
environment and excluded from the archive.`,
		RunE: runPackage,
	}
)

func init() {
	packageCmd.Flags().StringVarP(&packageFile, "file", "f", "", "warfile path (default: discover from current directory)")
}

func runPackage(cobraCmd *cobra.Command, _ []string) error {
	w, err := loadWarfile()
	if err != nil {
		return reportError(err)
	}

	b, err := build.Assemble(w, archive.ZipWriter{})
	if err != nil {
		return reportError(err)
	}

	res, err := b.Execute(cobraCmd.Context())
	if err != nil {
		return reportError(err)
	}

	fmt.Println(SuccessStyle.Render("✓ archive written ") + HighlightStyle.Render(res.Destination))
	fmt.Printf("  %d entries, %d classpath dependencies\n", len(res.Entries), len(res.Classpath))
	if cfg.Verbose {
		for _, dep := range res.Classpath {
			fmt.Println("    " + HighlightStyle.Render(dep.Coordinate()))
		}
	}

	path, err := b.Artifact.File()
	if err != nil {
		return reportError(err)
	}
	fmt.Printf("  published %s variant %q (%s)\n",
		path, b.Artifact.Variant(), formatAttributes(b.Artifact))
	return nil
}

// loadWarfile resolves and parses the warfile for the current invocation:
// the --file flag if set, otherwise discovery upward from the working
// directory.
func loadWarfile() (*warfile.Warfile, error) {
	path := packageFile
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path, err = warfile.Find(cwd)
		if err != nil {
			return nil, err
		}
	}
	return warfile.Parse(path)
}

func formatAttributes(a *publish.Artifact) string {
	attrs := a.Attributes()
	parts := make([]string, 0, len(attrs))
	for _, k := range a.AttributeKeys() {
		parts = append(parts, k+"="+attrs[k])
	}
	return strings.Join(parts, ", ")
}

// reportError prints the error, renders the matching issue's guidance when
// one exists, and converts the error into a non-zero exit.
func reportError(err error) error {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("error: ")+err.Error())

	if actionable := issue.AsActionable(err); actionable != nil && cfg.Verbose {
		fmt.Fprintln(os.Stderr, actionable.Verbose())
	}
	if i := issue.Lookup(classify(err)); i != nil {
		if rendered, renderErr := i.Render(cfg.ColorScheme); renderErr == nil {
			fmt.Fprintln(os.Stderr, rendered)
		}
	}
	return &ExitError{Code: 1, Err: err}
}

// classify maps an error chain to the issue describing it. Returns 0 (no
// issue) for errors without curated guidance.
func classify(err error) issue.Id {
	var (
		dupErr     *scope.DuplicateScopeError
		unknownErr *scope.UnknownScopeError
		cycleErr   *scope.CycleError
		missingErr *warfile.MissingArtifactError
	)
	switch {
	case errors.As(err, &dupErr):
		return issue.DuplicateScopeId
	case errors.As(err, &unknownErr):
		return issue.UnknownScopeId
	case errors.As(err, &cycleErr):
		return issue.DependencyCycleId
	case errors.As(err, &missingErr):
		return issue.MissingArtifactId
	case strings.Contains(err.Error(), "no "+warfile.Name+" found"):
		return issue.WarfileNotFoundId
	case strings.Contains(err.Error(), warfile.Name):
		return issue.WarfileParseErrorId
	case strings.Contains(err.Error(), "archive"):
		return issue.ArchiveWriteFailedId
	default:
		return 0
	}
}
