// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "DASHBOARD_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local use: sequential widget IDs are allowed
	// and logging is verbose.
	Development Environment = "development"
	// Production is for shared dashboards.
	Production Environment = "production"
)

// ID strategies for newly added widgets.
const (
	IDStrategyUUID     = "uuid"
	IDStrategySequence = "sequence"
)

// Config is the dashboard viewer configuration.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment"`

	// Seed configures the initial dashboard contents.
	Seed SeedConfig `yaml:"seed"`

	// IDs configures widget ID generation.
	IDs IDsConfig `yaml:"ids"`

	// UI configures the terminal viewer.
	UI UIConfig `yaml:"ui"`

	// Search configures the search bar.
	Search SearchConfig `yaml:"search"`

	// Logging configures log output.
	Logging LoggingConfig `yaml:"logging"`

	// Per-environment overrides, applied after the base config.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per
// environment.
type ConfigOverrides struct {
	Seed    *SeedConfig    `yaml:"seed,omitempty"`
	IDs     *IDsConfig     `yaml:"ids,omitempty"`
	UI      *UIConfig      `yaml:"ui,omitempty"`
	Logging *LoggingConfig `yaml:"logging,omitempty"`
}

// SeedConfig configures where the initial categories come from.
type SeedConfig struct {
	// Path is a JSONC seed file. Empty uses the built-in seed.
	Path string `yaml:"path"`
}

// IDsConfig configures widget ID generation.
type IDsConfig struct {
	// Strategy is "uuid" (time-ordered UUIDv7) or "sequence"
	// (widget-1, widget-2, ...).
	Strategy string `yaml:"strategy"`
}

// UIConfig configures the terminal viewer.
type UIConfig struct {
	// AltScreen runs the viewer in the alternate screen buffer.
	AltScreen *bool `yaml:"alt_screen"`

	// Mouse enables mouse input.
	Mouse *bool `yaml:"mouse"`

	// CardWidth is the outer card width in columns.
	CardWidth int `yaml:"card_width"`
}

// SearchConfig configures the search bar.
type SearchConfig struct {
	// Initial pre-fills the search term.
	Initial string `yaml:"initial"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`

	// Output is a file that receives JSON log records. Empty disables
	// file logging.
	Output string `yaml:"output"`
}

// Default returns the default configuration, used as the base before
// loading a file and on its own when no file is given.
func Default() *Config {
	return &Config{
		Environment: Development,
		IDs:         IDsConfig{Strategy: IDStrategyUUID},
		UI: UIConfig{
			AltScreen: boolPointer(true),
			Mouse:     boolPointer(true),
			CardWidth: 38,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

func boolPointer(value bool) *bool {
	return &value
}

// Load loads configuration from the file named by DASHBOARD_CONFIG.
// When the variable is unset the defaults apply.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		cfg := Default()
		cfg.applyEnvironmentOverrides()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, applies the
// section for the configured environment and expands ${VAR} patterns in
// path fields.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// loadFile merges a single configuration file into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific section.
// Production defaults to UUID widget IDs and warn-level logging when
// the file has no production section.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
		if overrides == nil {
			overrides = &ConfigOverrides{
				IDs:     &IDsConfig{Strategy: IDStrategyUUID},
				Logging: &LoggingConfig{Level: "warn"},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Seed != nil && overrides.Seed.Path != "" {
		c.Seed.Path = overrides.Seed.Path
	}

	if overrides.IDs != nil && overrides.IDs.Strategy != "" {
		c.IDs.Strategy = overrides.IDs.Strategy
	}

	if overrides.UI != nil {
		if overrides.UI.AltScreen != nil {
			c.UI.AltScreen = overrides.UI.AltScreen
		}
		if overrides.UI.Mouse != nil {
			c.UI.Mouse = overrides.UI.Mouse
		}
		if overrides.UI.CardWidth != 0 {
			c.UI.CardWidth = overrides.UI.CardWidth
		}
	}

	if overrides.Logging != nil {
		if overrides.Logging.Level != "" {
			c.Logging.Level = overrides.Logging.Level
		}
		if overrides.Logging.Output != "" {
			c.Logging.Output = overrides.Logging.Output
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Seed.Path = expandVars(c.Seed.Path, vars)
	c.Logging.Output = expandVars(c.Logging.Output, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, preferring
// vars over the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors, reporting every
// problem at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	strategies := []string{IDStrategyUUID, IDStrategySequence}
	if !slices.Contains(strategies, c.IDs.Strategy) {
		errs = append(errs, fmt.Errorf("ids.strategy must be one of: %v", strategies))
	}
	if c.Environment == Production && c.IDs.Strategy == IDStrategySequence {
		errs = append(errs, fmt.Errorf("ids.strategy sequence is not allowed in production"))
	}

	if c.UI.CardWidth < 24 {
		errs = append(errs, fmt.Errorf("ui.card_width must be at least 24, got %d", c.UI.CardWidth))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// LogLevel parses Logging.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return 0, fmt.Errorf("logging.level must be debug, info, warn or error: %q", c.Logging.Level)
	}
	return level, nil
}

// AltScreen reports whether the viewer should use the alternate screen.
func (c *Config) AltScreen() bool {
	return c.UI.AltScreen == nil || *c.UI.AltScreen
}

// Mouse reports whether mouse input is enabled.
func (c *Config) Mouse() bool {
	return c.UI.Mouse == nil || *c.UI.Mouse
}
