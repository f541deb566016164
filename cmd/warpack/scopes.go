// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"warpack/internal/archive"
	"warpack/internal/build"
)

var scopesCmd = &cobra.Command{
	Use:   "scopes [scope]",
	Short: "Inspect the build's dependency scopes",
	Long: `List the scopes the current warfile produces, or show one scope's
direct and resolved (transitive) dependencies. Resolution runs against the
graph exactly as the package command would see it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScopes,
}

func runScopes(_ *cobra.Command, args []string) error {
	w, err := loadWarfile()
	if err != nil {
		return reportError(err)
	}
	b, err := build.Assemble(w, archive.ZipWriter{})
	if err != nil {
		return reportError(err)
	}

	if len(args) == 1 {
		return showScope(b, args[0])
	}

	fmt.Println(TitleStyle.Render("Scopes") + SubtitleStyle.Render(" ("+w.Name+")"))
	for _, s := range b.Graph.Scopes() {
		line := "  " + HighlightStyle.Render(s.Name)
		if parents := s.Extends(); len(parents) > 0 {
			names := make([]string, 0, len(parents))
			for _, p := range parents {
				names = append(names, p.Name)
			}
			line += SubtitleStyle.Render(" extends " + strings.Join(names, ", "))
		}
		fmt.Println(line)
		if s.Description != "" {
			fmt.Println(SubtitleStyle.Render("    " + s.Description))
		}
	}
	return nil
}

func showScope(b *build.Build, name string) error {
	s, err := b.Graph.Lookup(name)
	if err != nil {
		return reportError(err)
	}

	fmt.Println(TitleStyle.Render(s.Name))
	if s.Description != "" {
		fmt.Println(SubtitleStyle.Render(s.Description))
	}

	direct := s.Direct()
	fmt.Printf("\n%s\n", SubtitleStyle.Render(fmt.Sprintf("Direct (%d):", len(direct))))
	for _, dep := range direct.Values() {
		fmt.Println("  " + HighlightStyle.Render(dep.Coordinate()))
	}

	resolved := b.Graph.Resolve(s)
	fmt.Printf("\n%s\n", SubtitleStyle.Render(fmt.Sprintf("Resolved (%d):", len(resolved))))
	for _, dep := range resolved.Values() {
		fmt.Println("  " + HighlightStyle.Render(dep.Coordinate()))
	}
	return nil
}
