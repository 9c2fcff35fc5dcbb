package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/polkiloo/factra/internal/config"
)

// New creates a preconfigured slog.Logger at the configured level.
func New(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		level = ParseLevel(cfg.LogLevel)
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// ParseLevel maps a level name onto slog levels, falling back to info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo
	}
	return level
}
