// Package log wraps log/slog with a component tag so every service logs
// under its own name.
package log

import (
	"log/slog"
	"os"
	"strings"
)

type Logger struct {
	*slog.Logger
}

// New builds a text logger at the given level writing to stdout. Level is
// one of "debug", "info", "warn", "error"; anything else means info.
func New(level string) *Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return &Logger{Logger: slog.New(handler)}
}

// WithComponent returns a logger whose records carry a component attribute.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger.With("component", component)}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
