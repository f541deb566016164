// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"warpack/pkg/warfile"
)

// initTemplate is the scaffold written by "warpack init". It demonstrates
// scope augmentation and the provided-dependency idiom.
const initTemplate = `name: "%s"
description: "Web application archive"

scopes: [
	{
		name: "runtime"
		dependencies: [
			// "com.example:lib-a:1.0.0",
		]
	},
	{
		name: "provided-compile"
		dependencies: [
			// Supplied by the servlet container; never packaged:
			// "jakarta.servlet:servlet-api:6.0.0",
		]
	},
]

artifacts: {
	// "com.example:lib-a:1.0.0": "libs/lib-a.jar"
}

packaging: {
	// base:         "runtime"
	// subtract:     "provided-runtime"
	// content_root: "src/main/webapp"
	// destination:  "dist/%s.war"
}
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new warfile in the current directory",
	RunE:  runInit,
}

func runInit(_ *cobra.Command, _ []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return reportError(fmt.Errorf("failed to get working directory: %w", err))
	}
	path := filepath.Join(cwd, warfile.Name)
	if _, err := os.Stat(path); err == nil {
		return reportError(fmt.Errorf("%s already exists", path))
	}

	name := filepath.Base(cwd)
	content := fmt.Sprintf(initTemplate, name, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return reportError(fmt.Errorf("failed to write %s: %w", path, err))
	}

	fmt.Println(SuccessStyle.Render("✓ created ") + HighlightStyle.Render(path))
	fmt.Println(SubtitleStyle.Render("  declare your dependencies, then run: warpack package"))
	return nil
}
