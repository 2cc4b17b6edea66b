// Package config holds compiler constants and the dubyc.yaml project
// configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/dubyc/internal/diagnostics"
	"github.com/funvibe/dubyc/internal/token"
)

// Config represents the dubyc.yaml configuration.
type Config struct {
	// OutputDir is where generated sources are written, package directories
	// included. Defaults to the current directory.
	OutputDir string `yaml:"output_dir,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`

	// Color controls diagnostic coloring: auto, always or never.
	Color string `yaml:"color,omitempty"`

	// Indent is the number of spaces per block level in generated code.
	Indent int `yaml:"indent,omitempty"`

	// Header is an optional comment placed at the top of every generated
	// file.
	Header string `yaml:"header,omitempty"`

	// Path is the file the configuration was read from, if any.
	Path string `yaml:"-"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	c := &Config{}
	c.setDefaults()
	return c
}

// LoadConfig reads and validates a configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses configuration data; path is used in diagnostics.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, diagnostics.NewError(diagnostics.ErrC001, token.Position{File: path}, "parsing config: %v", err)
	}
	cfg.Path = path
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindConfig walks up from dir looking for dubyc.yaml or dubyc.yml. It
// returns "" without error when none exists.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range []string{ConfigFileName, AltConfigFileName} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Load resolves the effective configuration for inputs under dir: the
// explicit file if given, otherwise the nearest dubyc.yaml, then a .env file
// next to it and finally DUBYC_* environment variables.
func Load(dir, explicit string) (*Config, error) {
	path := explicit
	if path == "" {
		found, err := FindConfig(dir)
		if err != nil {
			return nil, err
		}
		path = found
	}

	cfg := Default()
	envDir := dir
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		envDir = filepath.Dir(path)
	}

	if err := LoadEnv(envDir); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv loads dir/.env into the process environment. Variables that are
// already set win over the file.
func LoadEnv(dir string) error {
	path := filepath.Join(dir, EnvFileName)
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return diagnostics.NewError(diagnostics.ErrC001, token.Position{File: path}, "loading env file: %v", err)
	}
	return nil
}

// ApplyEnv overrides fields from DUBYC_OUTPUT_DIR, DUBYC_LOG_LEVEL,
// DUBYC_COLOR, DUBYC_INDENT and DUBYC_HEADER.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "OUTPUT_DIR"); ok {
		c.OutputDir = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvPrefix + "COLOR"); ok {
		c.Color = v
	}
	if v, ok := lookup(EnvPrefix + "HEADER"); ok {
		c.Header = v
	}
	if v, ok := lookup(EnvPrefix + "INDENT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return diagnostics.NewError(diagnostics.ErrC001, token.Position{}, "%sINDENT: %v", EnvPrefix, err)
		}
		c.Indent = n
	}
	return c.validate()
}

func (c *Config) validate() error {
	pos := token.Position{File: c.Path}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return diagnostics.NewError(diagnostics.ErrC001, pos, "log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return diagnostics.NewError(diagnostics.ErrC001, pos, "color must be auto, always or never, got %q", c.Color)
	}
	if c.Indent < 1 || c.Indent > 8 {
		return diagnostics.NewError(diagnostics.ErrC001, pos, "indent must be between 1 and 8, got %d", c.Indent)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.Color == "" {
		c.Color = "auto"
	}
	if c.Indent == 0 {
		c.Indent = 2
	}
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}
