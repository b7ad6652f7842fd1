// Package config provides the optional packaging profile for qpack. The
// profile is a YAML file controlling how aggressively files are searched for
// and which layer providers are excluded from packaging. Every field has a
// default mirroring qpack's built-in behavior, so running without a profile
// is the common case.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/qpack-dev/qpack/pkg/copier"
	"github.com/qpack-dev/qpack/pkg/errors"
	"github.com/qpack-dev/qpack/pkg/fsutil"
	"github.com/qpack-dev/qpack/pkg/locator"
	"gopkg.in/yaml.v3"
)

// Config represents the packaging profile.
type Config struct {
	// General settings
	Settings Settings `yaml:"settings"`

	// Packaging behavior
	Packaging Packaging `yaml:"packaging"`
}

// Settings represents general application settings.
type Settings struct {
	// LogLevel: error, warn, info, debug
	LogLevel string `yaml:"log_level"`
}

// Packaging controls resolution and copy behavior for a run.
type Packaging struct {
	// SearchDepth is how many ancestors of the project directory become
	// fallback search roots.
	SearchDepth int `yaml:"search_depth"`

	// ExtraSearchRoots are additional directories searched after the
	// ancestors, in order.
	ExtraSearchRoots []string `yaml:"extra_search_roots,omitempty"`

	// SkipProviders lists provider tags whose layers are skipped outright.
	// Network and database providers have no file to copy.
	SkipProviders []string `yaml:"skip_providers,omitempty"`

	// SidecarExtensions overrides the extension set copied together for
	// multi-file datasets.
	SidecarExtensions []string `yaml:"sidecar_extensions,omitempty"`
}

// DefaultConfig returns a configuration with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			LogLevel: "info",
		},
		Packaging: Packaging{
			SearchDepth:       locator.DefaultSearchDepth,
			SkipProviders:     []string{"postgres", "mssql", "oracle", "wms", "wfs", "wcs", "xyz"},
			SidecarExtensions: copier.DefaultSidecarExtensions,
		},
	}
}

// LoadConfig loads the configuration from the specified file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.Wrap(os.ErrInvalid, "config file path cannot be empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file %s", path)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %s", path)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadOrDefault loads the configuration from path when it exists and falls
// back to defaults when path is empty or missing.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

// SaveConfig writes the configuration to the specified file.
func (c *Config) SaveConfig(path string) error {
	if err := fsutil.EnsureFileDir(path); err != nil {
		return errors.Wrapf(err, "creating config directory for %s", path)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encoding config")
	}

	if err := os.WriteFile(path, data, fsutil.FileModeDefault); err != nil {
		return errors.Wrapf(err, "writing config file %s", path)
	}
	return nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Settings.LogLevel {
	case "error", "warn", "warning", "info", "debug", "":
	default:
		return fmt.Errorf("invalid log level: %s", c.Settings.LogLevel)
	}

	if c.Packaging.SearchDepth < 0 {
		return fmt.Errorf("search_depth cannot be negative: %d", c.Packaging.SearchDepth)
	}

	for _, root := range c.Packaging.ExtraSearchRoots {
		if !filepath.IsAbs(root) {
			return fmt.Errorf("extra search root must be absolute: %s", root)
		}
	}

	return nil
}
