// Package config loads the lister configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// Sort orders accepted in DefaultSort.
const (
	SortNone       = ""
	SortAscending  = "asc"
	SortDescending = "desc"
)

// Config holds application configuration.
type Config struct {
	IndentWidth int    `json:"indentWidth"`
	FocusGlyph  string `json:"focusGlyph"`
	MarkGlyph   string `json:"markGlyph"`
	DefaultSort string `json:"defaultSort"` // applied once after loading a list
	Header      string `json:"header"`      // optional line above the list
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		IndentWidth: 2,
		FocusGlyph:  ">",
		MarkGlyph:   "*",
		DefaultSort: SortNone,
	}
}

// Validate reports settings that cannot be applied.
func (c Config) Validate() error {
	switch c.DefaultSort {
	case SortNone, SortAscending, SortDescending:
	default:
		return fmt.Errorf("defaultSort must be %q, %q or empty, got %q", SortAscending, SortDescending, c.DefaultSort)
	}
	if c.IndentWidth > 16 {
		return fmt.Errorf("indentWidth %d is too large", c.IndentWidth)
	}
	return nil
}

// Load reads config from the JSON file. Comments and trailing commas are
// allowed. Creates the file with defaults if it doesn't exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = Save(path, &config)
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if config.IndentWidth <= 0 {
		config.IndentWidth = defaults.IndentWidth
	}
	if config.FocusGlyph == "" {
		config.FocusGlyph = defaults.FocusGlyph
	}
	if config.MarkGlyph == "" {
		config.MarkGlyph = defaults.MarkGlyph
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &config, nil
}

// Save writes config to the JSON file.
// Creates the directory if it doesn't exist.
func Save(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultPath returns the default config path: ~/.config/lister/config.json
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "lister", "config.json"), nil
}
