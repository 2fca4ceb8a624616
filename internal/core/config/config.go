// Package config handles configuration loading and validation for hexbench.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Editing  Editing  `yaml:"editing"`
	TUI      TUI      `yaml:"tui"`
	Database Database `yaml:"database"`
	DataDir  string   `yaml:"-"` // set by caller, not from config file
}

// Editing holds the edit-behavior preferences.
type Editing struct {
	// QuickEdit commits a cell after a single typed digit.
	QuickEdit bool `yaml:"quick_edit"`
	// StickyEdit keeps the cursor in place after committing a cell.
	StickyEdit bool `yaml:"sticky_edit"`
	// AutoSave saves the file after every committed edit.
	AutoSave bool `yaml:"auto_save"`
}

// TUI holds terminal interface defaults.
type TUI struct {
	// Cols is the default perspective width in bytes per row.
	Cols uint64 `yaml:"cols"`
	// ScrollSpeed is the pixel amount of one scroll step.
	ScrollSpeed int `yaml:"scroll_speed"`
	// ShowText enables the text pane next to the hex pane.
	ShowText bool `yaml:"show_text"`
	// DebugOverlay shows coordinate internals in the status line.
	DebugOverlay bool `yaml:"debug_overlay"`
}

// Database holds SQLite connection tuning.
type Database struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"` // milliseconds
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Editing: Editing{},
		TUI: TUI{
			Cols:        16,
			ScrollSpeed: 4,
			ShowText:    true,
		},
		Database: Database{
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			BusyTimeout:  5000,
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

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.TUI.Cols == 0 {
		c.TUI.Cols = defaults.TUI.Cols
	}
	if c.TUI.ScrollSpeed == 0 {
		c.TUI.ScrollSpeed = defaults.TUI.ScrollSpeed
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}
	if c.TUI.Cols < 1 {
		return fmt.Errorf("tui.cols must be at least 1")
	}
	if c.TUI.ScrollSpeed < 1 {
		return fmt.Errorf("tui.scroll_speed must be at least 1")
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be at least 1")
	}
	return nil
}
