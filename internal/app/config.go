// Package app wires the cartridge, bus, CPU, and graphics backend into a
// runnable emulator and manages its JSON-backed configuration.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all application configuration. Trimmed from the teacher's
// shape to the sections this core actually drives: window/video for the
// graphics backend, debug for logging verbosity, paths for ROM/log
// locations. Audio, input remapping, save states, and rewind are all
// Non-goals (spec.md) and have no Config section.
type Config struct {
	Window WindowConfig `json:"window"`
	Video  VideoConfig  `json:"video"`
	Debug  DebugConfig  `json:"debug"`
	Paths  PathsConfig  `json:"paths"`

	configPath string
	loaded     bool
}

// WindowConfig contains window-related configuration.
type WindowConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Scale  int `json:"scale"` // NES resolution multiplier
}

// VideoConfig contains video rendering configuration.
type VideoConfig struct {
	Backend string `json:"backend"` // "ebitengine" or "headless"
}

// DebugConfig contains logging and tracing options.
type DebugConfig struct {
	LogLevel   string `json:"log_level"` // "DEBUG", "INFO", "WARN", "ERROR"
	CPUTracing bool   `json:"cpu_tracing"`
	PPUTracing bool   `json:"ppu_tracing"`
}

// PathsConfig contains file and directory paths.
type PathsConfig struct {
	ROMs string `json:"roms"`
	Logs string `json:"logs"`
}

// NewConfig creates a new configuration with default values.
func NewConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  256,
			Height: 240,
			Scale:  2,
		},
		Video: VideoConfig{
			Backend: "ebitengine",
		},
		Debug: DebugConfig{
			LogLevel:   "INFO",
			CPUTracing: false,
			PPUTracing: false,
		},
		Paths: PathsConfig{
			ROMs: "./roms",
			Logs: "./logs",
		},
	}
}

// LoadFromFile loads configuration from a JSON file, writing the default
// configuration to path first if it doesn't exist yet.
func (c *Config) LoadFromFile(path string) error {
	c.configPath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c.SaveToFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	c.validate()
	c.loaded = true
	return nil
}

// SaveToFile saves configuration to a JSON file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	c.configPath = path
	return nil
}

// validate clamps out-of-range values to sane defaults rather than erroring,
// matching the teacher's tolerant load behavior.
func (c *Config) validate() {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		c.Window.Width, c.Window.Height = 256, 240
	}
	if c.Window.Scale <= 0 {
		c.Window.Scale = 1
	}
	if c.Video.Backend != "ebitengine" && c.Video.Backend != "headless" {
		c.Video.Backend = "headless"
	}
}

// GetNESResolution returns the native NES resolution.
func (c *Config) GetNESResolution() (int, int) {
	return 256, 240
}

// GetWindowResolution returns the window resolution based on scale.
func (c *Config) GetWindowResolution() (int, int) {
	w, h := c.GetNESResolution()
	return w * c.Window.Scale, h * c.Window.Scale
}

// IsLoaded returns whether the configuration was loaded from file.
func (c *Config) IsLoaded() bool { return c.loaded }

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return "./config/nescore.json"
}
