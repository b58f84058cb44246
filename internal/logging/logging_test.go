package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"floatpane/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v; want %v", in, got, want)
		}
	}
}

func TestNew_ConsoleOnly(t *testing.T) {
	t.Setenv(EnvLevel, "")
	var buf bytes.Buffer

	logger, closeFn, err := New(config.LogConfig{Level: "warn"}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()

	logger.Info("hidden")
	logger.Warn("shown", "k", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "app=floatpane") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestNew_EnvOverridesLevel(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	var buf bytes.Buffer

	logger, closeFn, err := New(config.LogConfig{Level: "error"}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()

	logger.Debug("tick")
	if !strings.Contains(buf.String(), "msg=tick") {
		t.Errorf("debug record missing: %s", buf.String())
	}
}

func TestNew_WritesFile(t *testing.T) {
	t.Setenv(EnvLevel, "")
	path := filepath.Join(t.TempDir(), "logs", "floatpane.log")

	logger, closeFn, err := New(config.LogConfig{Level: "info", File: path, MaxSizeMB: 1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("to file")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "msg=\"to file\"") {
		t.Errorf("unexpected file content: %s", data)
	}
}
