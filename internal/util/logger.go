// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package util

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the process-wide structured logger. It is usable before
// InitLogger is called (warn level, stderr).
var Logger = newLogger(os.Stderr, slog.LevelWarn)

// InitLogger initializes the global logger with the given level name
// ("debug", "info", "warn", "error"). Unknown names fall back to info.
// Set DEMOS_DEBUG=1 to force debug logging.
func InitLogger(level string) {
	lvl := ParseLevel(level)
	if os.Getenv("DEMOS_DEBUG") != "" {
		lvl = slog.LevelDebug
	}
	Logger = newLogger(os.Stderr, lvl)
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		// Remove timestamp for cleaner CLI output
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return slog.New(handler)
}

// Debug logs a debug message (only shown at debug level)
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}
