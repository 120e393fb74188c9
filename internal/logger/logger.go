package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/bekzodart/storefront/internal/config"
)

// New creates a preconfigured slog.Logger. JSON output by default, tinted
// text output when configured for interactive use.
func New(cfg *config.Config) *slog.Logger {
	if cfg != nil && cfg.LogFormat == "text" {
		handler := tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: time.Kitchen,
		})
		return slog.New(handler)
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler)
}
