// Package config handles configuration loading and validation for
// bookokrat.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Library  LibraryConfig  `yaml:"library"`
	Reader   ReaderConfig   `yaml:"reader"`
	Theme    string         `yaml:"theme"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// LibraryConfig controls book discovery.
type LibraryConfig struct {
	// Roots are directories scanned for books. Glob patterns in Include
	// are matched relative to each root.
	Roots   []string `yaml:"roots"`
	Include []string `yaml:"include"`
}

// ReaderConfig controls the reading pane.
type ReaderConfig struct {
	Margin        int    `yaml:"margin"`
	TabWidth      int    `yaml:"tab_width"`
	HighlightCode bool   `yaml:"highlight_code"`
	SearchMode    string `yaml:"search_mode"` // substring or fuzzy
	HistoryLimit  int    `yaml:"history_limit"`
}

// DatabaseConfig controls the SQLite connection pool. Zero values take the
// driver layer's defaults.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout_ms"`
}

// LogConfig controls log output. File is empty for stderr-only logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Library: LibraryConfig{
			Include: []string{"**/*.txt", "**/*.md"},
		},
		Reader: ReaderConfig{
			Margin:        2,
			TabWidth:      4,
			HighlightCode: true,
			SearchMode:    "substring",
			HistoryLimit:  100,
		},
		Theme: "tokyo-night",
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the
// provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultConfigPath returns the conventional config file location.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bookokrat", "config.yml")
}

// DefaultDataDir returns the conventional data directory location.
func DefaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "bookokrat")
}
