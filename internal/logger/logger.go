// Package logger builds the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/matemagica/matemagica/internal/config"
)

// Setup builds a logger writing to w at the configured level and format
// and installs it as slog's default. An unknown level falls back to info
// with a warning.
func Setup(cfg config.LogConfig, w io.Writer) *slog.Logger {
	level, ok := ParseLevel(cfg.Level)

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	if !ok {
		logger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.Level, "default_level", "info")
	}
	return logger
}

// ParseLevel maps a case-insensitive level name to a slog.Level. The
// second result is false for unknown names, which map to info.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
