package app

import (
	"io"
	"log/slog"
)

// newLogger creates an isolated slog.Logger writing to logW. Level names are
// matched case-insensitively; unknown levels fall back to info. Any format
// other than "json" yields the text handler.
func newLogger(levelStr, formatStr string, logW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(logW, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(logW, handlerOpts))
}
