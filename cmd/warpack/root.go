// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"warpack/internal/config"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables suggestion output on errors
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// cfg is the loaded tool configuration, available to all commands.
	cfg = config.DefaultConfig()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "warpack",
		Short: "A web-archive packager with provided-dependency scopes",
		Long: TitleStyle.Render("warpack") + SubtitleStyle.Render(" - A web-archive packager with provided-dependency scopes") + `

warpack assembles a distributable web archive from compiled outputs and
declared dependencies. Dependencies live in named scopes that can extend
one another; anything reachable from the 'provided-runtime' scope is
supplied by the deployment environment and stays out of the archive.

Builds are described in a 'warfile.cue' using CUE syntax.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Create a warfile in your project directory: warpack init
  2. Declare scopes, dependencies and artifact files
  3. Build the archive with: warpack package

` + SubtitleStyle.Render("Examples:") + `
  warpack package           Build the archive
  warpack scopes            List the build's scopes
  warpack scopes runtime    Show a scope's resolved dependencies
  warpack init              Create a new warfile`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/warpack/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(packageCmd)
	rootCmd.AddCommand(scopesCmd)
	rootCmd.AddCommand(initCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return fmt.Sprintf("%s (commit %s)", Version, Commit)
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	// fang provides the styled Cobra runner; version goes through
	// fang.WithVersion since fang overrides rootCmd.Version.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads the config file, honoring the --config flag.
func initRootConfig() {
	loaded, _, err := config.Load(cfgFile)
	if err != nil {
		// Config problems must not make the CLI unusable; fall back to
		// defaults and tell the user.
		fmt.Fprintln(os.Stderr, ErrorStyle.Render(fmt.Sprintf("warning: %v", err)))
		loaded = config.DefaultConfig()
	}
	if verbose {
		loaded.Verbose = true
		loaded.LogLevel = "debug"
	}
	cfg = loaded
	cfg.ApplyLogLevel()
}
