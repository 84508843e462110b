package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownSource        = errors.New("unknown version source in configuration")
	ErrStaticVersionsNotSet = errors.New("static source requires static_versions to point at a TOML version table")
)

// Source names accepted by the "source" key
const (
	SourceWordPressOrg = "wordpress.org"
	SourceStatic       = "static"
)

// Config represents the application configuration
type Config struct {
	Source         string       `yaml:"source"`
	StaticVersions string       `yaml:"static_versions,omitempty"`
	WPOrg          WPOrgConfig  `yaml:"wporg"`
	Output         OutputConfig `yaml:"output"`
}

// WPOrgConfig holds wordpress.org lookup settings
type WPOrgConfig struct {
	BaseURL        string `yaml:"base_url,omitempty"` // Endpoint override, mostly for testing
	TimeoutSeconds int    `yaml:"timeout_seconds"`    // Per-request timeout (0 = built-in default)
	MaxRetries     int    `yaml:"max_retries"`        // Retry attempts per request (0 = built-in default)
}

// OutputConfig holds report rendering settings
type OutputConfig struct {
	NoColor bool `yaml:"no_color"`
}

// Default returns the built-in configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Source: SourceWordPressOrg,
	}
}

// ConfigPaths returns all possible config file paths in priority order
// 1. ~/.config/wpcheck/config.yaml (XDG standard - priority)
// 2. ~/.wpcheck/config.yaml (legacy fallback)
func ConfigPaths() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	// Check XDG_CONFIG_HOME first, fallback to ~/.config
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}

	return []string{
		filepath.Join(xdgConfig, "wpcheck", "config.yaml"),
		filepath.Join(home, ".wpcheck", "config.yaml"),
	}, nil
}

// Load reads configuration from the first available config file.
// Priority: ~/.config/wpcheck/config.yaml > ~/.wpcheck/config.yaml.
// When no config file exists the built-in defaults are returned; a
// default file is never written.
func Load() (*Config, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return LoadFrom(path)
		}
	}

	return Default(), nil
}

// LoadFrom reads configuration from a specific file path. Keys absent
// from the file keep their default values.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	switch c.Source {
	case "", SourceWordPressOrg:
	case SourceStatic:
		if c.StaticVersions == "" {
			return ErrStaticVersionsNotSet
		}
	default:
		return fmt.Errorf("%w: %q (expected %q or %q)",
			ErrUnknownSource, c.Source, SourceWordPressOrg, SourceStatic)
	}
	return nil
}

// StaticVersionsPath returns the static_versions path with a leading ~
// expanded to the user's home directory.
func (c *Config) StaticVersionsPath() (string, error) {
	if c.StaticVersions == "" {
		return "", ErrStaticVersionsNotSet
	}

	path := c.StaticVersions
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}

	return path, nil
}

// Timeout returns the configured wordpress.org request timeout, or zero
// when the built-in default should be used.
func (c *WPOrgConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
