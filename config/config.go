// Package config loads gaitool.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "gaitool.yaml"

// Config holds the settings shared by every command.
type Config struct {
	// Dictionary maps raw export columns to canonical names.
	Dictionary string `yaml:"dictionary"`
	// WebDictionary maps canonical names to the labels filter writes.
	WebDictionary string `yaml:"web_dictionary"`
	// Percent of the gait cycles split keeps.
	Percent int `yaml:"percent"`
	// Format of result tables: csv or parquet.
	Format   string `yaml:"format"`
	LogLevel string `yaml:"log_level"`
	// CohortDB, when set, receives every concatenated result row.
	CohortDB string `yaml:"cohort_db"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Dictionary:    "./assets/all.csv",
		WebDictionary: "./assets/filter.csv",
		Percent:       70,
		Format:        "csv",
		LogLevel:      "info",
	}
}

// Load reads path over the defaults. A missing file at DefaultPath is not
// an error; any other missing file is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == DefaultPath {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Percent < 0 || c.Percent > 100 {
		return fmt.Errorf("percent %d outside [0,100]", c.Percent)
	}
	switch strings.ToLower(c.Format) {
	case "", "csv", "parquet":
	default:
		return fmt.Errorf("format %q (expected csv|parquet)", c.Format)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps debug, info, warn and error to slog levels. Empty is info.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", s, err)
	}
	return l, nil
}
