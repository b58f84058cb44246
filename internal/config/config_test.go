package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfig_Default(t *testing.T) {
	// Use temp directory
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	service, err := Open(configPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	// Default file must have been written
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Default config file was not created")
	}

	cfg := service.Get()
	if cfg.Window.Width != 640 || cfg.Window.Height != 720 {
		t.Errorf("Default size = %dx%d; want 640x720", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.MarginRight != 24 || cfg.Window.MarginBottom != 80 {
		t.Errorf("Default margins = %d,%d; want 24,80", cfg.Window.MarginRight, cfg.Window.MarginBottom)
	}
	if cfg.Interaction.Gesture != "auto" {
		t.Errorf("Default gesture = %q; want auto", cfg.Interaction.Gesture)
	}
	if got := cfg.Interaction.PollInterval(); got != 16*time.Millisecond {
		t.Errorf("Default poll interval = %v; want 16ms", got)
	}
	if cfg.Log.File != filepath.Join(tmpDir, "floatpane.log") {
		t.Errorf("Unexpected log file: %s", cfg.Log.File)
	}
}

func TestConfig_Save(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	service := &Service{
		filePath: configPath,
		config:   getDefaultConfig(tmpDir),
	}
	service.config.Window.Title = "test-overlay"
	service.config.Interaction.Gesture = "alt-drag"

	if err := service.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	for _, want := range []string{"[window]", "[interaction]", "[interaction.controls]", "[log]", `gesture = "alt-drag"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Saved config missing %q:\n%s", want, data)
		}
	}

	// Verify we can load it back
	if err := service.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := service.Get().Window.Title; got != "test-overlay" {
		t.Errorf("Expected title 'test-overlay', got %s", got)
	}
}

func TestConfig_LoadPartialFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[window]
title = "pane"

[interaction]
gesture = "Right-Drag"
poll_interval_ms = 0
hover_margin = 8.5
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	service, err := Open(configPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	cfg := service.Get()
	if cfg.Window.Title != "pane" {
		t.Errorf("Title = %q; want pane", cfg.Window.Title)
	}
	// Unset keys keep their defaults.
	if cfg.Window.Width != 640 {
		t.Errorf("Width = %d; want 640", cfg.Window.Width)
	}
	if cfg.Interaction.Gesture != "right-drag" {
		t.Errorf("Gesture = %q; want right-drag", cfg.Interaction.Gesture)
	}
	if cfg.Interaction.PollIntervalMs != 16 {
		t.Errorf("PollIntervalMs = %d; want 16 after normalization", cfg.Interaction.PollIntervalMs)
	}
	if cfg.Interaction.HoverMargin != 8.5 {
		t.Errorf("HoverMargin = %v; want 8.5", cfg.Interaction.HoverMargin)
	}
}

func TestConfig_LoadInvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[window\ntitle = "), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(configPath); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestConfig_Normalize(t *testing.T) {
	cfg := &Config{
		Window: WindowConfig{Width: -1, MarginRight: -5},
		Interaction: InteractionConfig{
			PollIntervalMs: -3,
			HoverMargin:    -2,
			Controls:       ControlsConfig{Width: 0, Height: 100},
		},
		Log: LogConfig{MaxBackups: -1},
	}
	cfg.Normalize()

	if cfg.Window.Title != "floatpane" {
		t.Errorf("Title = %q; want floatpane", cfg.Window.Title)
	}
	if cfg.Window.Width != 640 || cfg.Window.Height != 720 {
		t.Errorf("Size = %dx%d; want 640x720", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.MarginRight != 0 {
		t.Errorf("MarginRight = %d; want 0", cfg.Window.MarginRight)
	}
	if cfg.Interaction.PollIntervalMs != 16 || cfg.Interaction.HoverMargin != 0 {
		t.Errorf("Interaction = %+v", cfg.Interaction)
	}
	if r := cfg.Interaction.Controls.Region(); r.Width != 360 || r.MarginBottom != 24 {
		t.Errorf("Controls region = %+v; want defaults", r)
	}
	if cfg.Log.Level != "info" || cfg.Log.MaxBackups != 0 {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestConfig_UpdateInteraction(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	service := &Service{
		filePath: configPath,
		config:   getDefaultConfig(tmpDir),
	}

	ic := service.Get().Interaction
	ic.Gesture = "alt-drag"
	ic.PollIntervalMs = 8
	if err := service.UpdateInteraction(ic); err != nil {
		t.Fatalf("UpdateInteraction failed: %v", err)
	}

	reloaded, err := Open(configPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if got := reloaded.Get().Interaction.PollInterval(); got != 8*time.Millisecond {
		t.Errorf("PollInterval = %v; want 8ms", got)
	}
}

func TestConfig_UpdateWindow(t *testing.T) {
	tmpDir := t.TempDir()
	service := &Service{
		filePath: filepath.Join(tmpDir, "config.toml"),
		config:   getDefaultConfig(tmpDir),
	}

	w := service.Get().Window
	w.Width = 800
	if err := service.UpdateWindow(w); err != nil {
		t.Fatalf("UpdateWindow failed: %v", err)
	}
	if service.Get().Window.Width != 800 {
		t.Errorf("Expected Width 800, got %d", service.Get().Window.Width)
	}
	if service.Path() != filepath.Join(tmpDir, "config.toml") {
		t.Errorf("Unexpected path %s", service.Path())
	}
}
