package config

import (
	"log/slog"
	"os"
)

// NewLogger returns the application logger for the given config: JSON
// output in production so log collectors can parse it, plain text
// everywhere else, filtered at cfg.LogLevel.
func NewLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.Environment == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
