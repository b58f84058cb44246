// Package logging sets up the process-wide slog logger: a text handler on
// stderr, teed into a size-rotated log file when one is configured.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"floatpane/internal/config"
)

// EnvLevel overrides the configured level.
const EnvLevel = "FLOATPANE_LOG_LEVEL"

// Init installs the default logger described by cfg. The returned func
// closes the log file.
func Init(cfg config.LogConfig) (func() error, error) {
	logger, closeFn, err := New(cfg, os.Stderr)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return closeFn, nil
}

// New builds a logger writing to console and, if cfg.File is set, to a
// rotating file.
func New(cfg config.LogConfig, console io.Writer) (*slog.Logger, func() error, error) {
	level := cfg.Level
	if env := os.Getenv(EnvLevel); env != "" {
		level = env
	}

	writer := console
	closeFn := func() error { return nil }

	if path := strings.TrimSpace(cfg.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rot := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		if console != nil {
			writer = io.MultiWriter(console, rot)
		} else {
			writer = rot
		}
		closeFn = rot.Close
	}
	if writer == nil {
		writer = io.Discard
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: ParseLevel(level)})
	return slog.New(handler).With(slog.String("app", "floatpane")), closeFn, nil
}

// ParseLevel maps a level name to a slog level. Unknown names are info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
