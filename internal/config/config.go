// Package config loads hexgen settings from a YAML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talgya/hexmap/internal/mapgen"
)

// Config holds all hexgen configuration.
type Config struct {
	Map       MapConfig      `yaml:"map"`
	Generator mapgen.Config  `yaml:"generator"`
	Database  DatabaseConfig `yaml:"database"`
	Log       LogConfig      `yaml:"log"`
}

// MapConfig holds the size of generated maps.
type MapConfig struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`  // Cells, a multiple of 5
	Height int    `yaml:"height"` // Cells, a multiple of 5
	Wrap   bool   `yaml:"wrap"`
}

// DatabaseConfig holds the map store location.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn or error
	Format string `yaml:"format"` // text, json or auto
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{Generator: mapgen.DefaultConfig()}
	cfg.fillDefaults()
	return cfg
}

// Load reads configuration from a YAML file. Generator settings missing
// from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Config{Generator: mapgen.DefaultConfig()}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) fillDefaults() {
	if c.Map.Name == "" {
		c.Map.Name = "untitled"
	}
	if c.Map.Width == 0 {
		c.Map.Width = 80
	}
	if c.Map.Height == 0 {
		c.Map.Height = 60
	}
	if c.Database.Path == "" {
		c.Database.Path = "hexmap.db"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "auto"
	}
}

// Validate checks the map size, log settings and generator parameters.
func (c *Config) Validate() error {
	if c.Map.Width <= 0 || c.Map.Width%5 != 0 || c.Map.Height <= 0 || c.Map.Height%5 != 0 {
		return fmt.Errorf("map size %dx%d must be positive multiples of 5", c.Map.Width, c.Map.Height)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json", "auto":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return c.Generator.Validate()
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}
