// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the slog handler.
type Config struct {
	Level  slog.Level
	Format string // "json" or "text"
}

// LoadConfig reads LOG_LEVEL (debug|info|warn|error) and LOG_FORMAT (json|text).
func LoadConfig() Config {
	cfg := Config{Level: slog.LevelInfo, Format: "text"}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err == nil {
			cfg.Level = l
		}
	}
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		cfg.Format = "json"
	}
	return cfg
}

// NewLogger builds a logger writing to w.
func NewLogger(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup installs the configured logger as slog's default and returns it.
func Setup() *slog.Logger {
	l := NewLogger(LoadConfig(), os.Stderr)
	slog.SetDefault(l)
	return l
}
