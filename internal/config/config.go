// SPDX-License-Identifier: MPL-2.0

// Package config loads the warpack tool configuration: a CUE file validated
// against an embedded schema and merged into viper over the defaults. The
// tool configuration is about how warpack behaves (logging, rendering,
// output locations); everything about a particular build lives in its
// warfile instead.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"warpack/internal/issue"
	"warpack/pkg/cueutil"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "warpack"
	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema string

// Config is the tool configuration.
type Config struct {
	// LogLevel controls diagnostic output verbosity.
	LogLevel string `mapstructure:"log_level"`
	// ColorScheme selects the markdown rendering style for issues.
	ColorScheme string `mapstructure:"color_scheme"`
	// Verbose enables suggestion output on errors.
	Verbose bool `mapstructure:"verbose"`
	// OutputDir overrides the default dist/ output directory.
	OutputDir string `mapstructure:"output_dir"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:    "info",
		ColorScheme: "auto",
		Verbose:     false,
		OutputDir:   "dist",
	}
}

// ConfigDir returns the warpack configuration directory using
// platform-specific conventions: %APPDATA% on Windows, ~/Library/Application
// Support on macOS, $XDG_CONFIG_HOME (default ~/.config) elsewhere.
func ConfigDir() (string, error) {
	var configDir string
	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(configDir, AppName), nil
}

// Load reads the configuration. If path is non-empty it is used exclusively
// and must exist; otherwise the platform config directory and the current
// directory are tried, and absence of a file means defaults. Returns the
// config and the resolved file path ("" when defaults were used).
func Load(path string) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("color_scheme", defaults.ColorScheme)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("output_dir", defaults.OutputDir)

	resolvedPath := ""
	switch {
	case path != "":
		if !fileExists(path) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Verify the file path is correct").
				Wrap(fmt.Errorf("config file not found: %s", path)).
				Build()
		}
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", wrapConfigError(err, path)
		}
		resolvedPath = path
	default:
		if cfgDir, err := ConfigDir(); err == nil {
			cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
			if fileExists(cuePath) {
				if err := loadCUEIntoViper(v, cuePath); err != nil {
					return nil, "", wrapConfigError(err, cuePath)
				}
				resolvedPath = cuePath
			}
		}
		if resolvedPath == "" {
			localPath := ConfigFileName + "." + ConfigFileExt
			if fileExists(localPath) {
				if err := loadCUEIntoViper(v, localPath); err != nil {
					return nil, "", wrapConfigError(err, localPath)
				}
				resolvedPath = localPath
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, resolvedPath, nil
}

// ApplyLogLevel sets the global charmbracelet/log level from the config.
func (c *Config) ApplyLogLevel() {
	switch c.LogLevel {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

func wrapConfigError(err error, path string) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		Wrap(err).
		Build()
}

// loadCUEIntoViper parses a CUE config file, validates it against #Config,
// and merges it into viper. Manual parsing instead of cueutil.ParseAndDecode
// because the result must be a map for viper merging and config fields are
// optional (no concrete validation).
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if int64(len(data)) > cueutil.MaxFileSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", path, len(data), int64(cueutil.MaxFileSize))
	}

	ctx := cuecontext.New()
	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}
	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return cueutil.FormatError(userValue.Err(), path)
	}

	unified := schemaValue.LookupPath(cue.ParsePath("#Config")).Unify(userValue)
	if err := unified.Validate(); err != nil {
		return cueutil.FormatError(err, path)
	}

	var settings map[string]any
	if err := unified.Decode(&settings); err != nil {
		return cueutil.FormatError(err, path)
	}
	if err := v.MergeConfigMap(settings); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
