package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"floatpane/internal/geometry"
)

const (
	dirName  = ".floatpane"
	fileName = "config.toml"
)

// Config holds all application configuration
type Config struct {
	Window      WindowConfig      `toml:"window"`
	Interaction InteractionConfig `toml:"interaction"`
	Log         LogConfig         `toml:"log"`
}

// WindowConfig holds overlay window settings
type WindowConfig struct {
	Title       string `toml:"title"`
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	AlwaysOnTop bool   `toml:"always_on_top"`
	// Initial placement: distance from the right and bottom screen edges.
	MarginRight  int `toml:"margin_right"`
	MarginBottom int `toml:"margin_bottom"`
}

// InteractionConfig holds click-through and drag settings
type InteractionConfig struct {
	Gesture        string         `toml:"gesture"` // "auto", "right-drag", "alt-drag"
	PollIntervalMs int            `toml:"poll_interval_ms"`
	HoverMargin    float64        `toml:"hover_margin"`
	Controls       ControlsConfig `toml:"controls"`
}

// ControlsConfig is the fallback controls region, anchored to the
// bottom-right corner of the window.
type ControlsConfig struct {
	MarginRight  float64 `toml:"margin_right"`
	MarginBottom float64 `toml:"margin_bottom"`
	Width        float64 `toml:"width"`
	Height       float64 `toml:"height"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"` // empty disables the log file
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// PollInterval returns the poller tick.
func (c InteractionConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// Region returns the controls region for hit-testing.
func (c ControlsConfig) Region() geometry.ControlsRegion {
	return geometry.ControlsRegion{
		MarginRight:  c.MarginRight,
		MarginBottom: c.MarginBottom,
		Width:        c.Width,
		Height:       c.Height,
	}
}

// Service manages configuration persistence
type Service struct {
	config   *Config
	filePath string
}

// New creates a config service backed by ~/.floatpane/config.toml
func New() (*Service, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return Open(filepath.Join(homeDir, dirName, fileName))
}

// Open creates a config service for the given file. A default config file is
// written when none exists.
func Open(configPath string) (*Service, error) {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	service := &Service{
		filePath: configPath,
		config:   getDefaultConfig(filepath.Dir(configPath)),
	}

	// Load existing config if it exists, otherwise create a default config file
	if _, err := os.Stat(configPath); err == nil {
		if err := service.Load(); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		if err := service.Save(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	return service, nil
}

// getDefaultConfig returns the default configuration. dir is where the log
// file goes.
func getDefaultConfig(dir string) *Config {
	return &Config{
		Window: WindowConfig{
			Title:        "floatpane",
			Width:        640,
			Height:       720,
			AlwaysOnTop:  true,
			MarginRight:  24,
			MarginBottom: 80,
		},
		Interaction: InteractionConfig{
			Gesture:        "auto",
			PollIntervalMs: 16,
			Controls: ControlsConfig{
				MarginRight:  geometry.DefaultControlsMarginRight,
				MarginBottom: geometry.DefaultControlsMarginBottom,
				Width:        geometry.DefaultControlsWidth,
				Height:       geometry.DefaultControlsHeight,
			},
		},
		Log: LogConfig{
			Level:      "info",
			File:       filepath.Join(dir, "floatpane.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// Normalize replaces out-of-range values with defaults.
func (c *Config) Normalize() {
	def := getDefaultConfig("")

	if strings.TrimSpace(c.Window.Title) == "" {
		c.Window.Title = def.Window.Title
	}
	if c.Window.Width <= 0 {
		c.Window.Width = def.Window.Width
	}
	if c.Window.Height <= 0 {
		c.Window.Height = def.Window.Height
	}
	if c.Window.MarginRight < 0 {
		c.Window.MarginRight = 0
	}
	if c.Window.MarginBottom < 0 {
		c.Window.MarginBottom = 0
	}

	c.Interaction.Gesture = strings.ToLower(strings.TrimSpace(c.Interaction.Gesture))
	if c.Interaction.Gesture == "" {
		c.Interaction.Gesture = def.Interaction.Gesture
	}
	if c.Interaction.PollIntervalMs <= 0 {
		c.Interaction.PollIntervalMs = def.Interaction.PollIntervalMs
	}
	if c.Interaction.HoverMargin < 0 {
		c.Interaction.HoverMargin = 0
	}
	ctl := &c.Interaction.Controls
	if ctl.Width <= 0 || ctl.Height <= 0 {
		*ctl = def.Interaction.Controls
	}
	if ctl.MarginRight < 0 {
		ctl.MarginRight = 0
	}
	if ctl.MarginBottom < 0 {
		ctl.MarginBottom = 0
	}

	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = def.Log.MaxSizeMB
	}
	if c.Log.MaxBackups < 0 {
		c.Log.MaxBackups = 0
	}
	if c.Log.MaxAgeDays < 0 {
		c.Log.MaxAgeDays = 0
	}
}

// Get returns the current configuration
func (s *Service) Get() *Config {
	return s.config
}

// Set updates the configuration
func (s *Service) Set(config *Config) {
	s.config = config
}

// Load loads configuration from file
func (s *Service) Load() error {
	if _, err := toml.DecodeFile(s.filePath, s.config); err != nil {
		return err
	}
	s.config.Normalize()
	return nil
}

// Save saves configuration to file
func (s *Service) Save() error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s.config); err != nil {
		return err
	}

	return os.WriteFile(s.filePath, buf.Bytes(), 0644)
}

// Path returns the full path to the configuration file
func (s *Service) Path() string {
	return s.filePath
}

// UpdateWindow updates window configuration
func (s *Service) UpdateWindow(window WindowConfig) error {
	s.config.Window = window
	return s.Save()
}

// UpdateInteraction updates interaction configuration
func (s *Service) UpdateInteraction(interaction InteractionConfig) error {
	s.config.Interaction = interaction
	return s.Save()
}
