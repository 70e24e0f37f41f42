package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/provgraph/internal/config"
	"github.com/vk/provgraph/internal/ctxlog"
	"github.com/vk/provgraph/internal/fsutil"
	"github.com/vk/provgraph/internal/hcl_adapter"
	"github.com/vk/provgraph/internal/jsonloader"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	loaders map[string]config.Loader
}

// NewApp is the constructor for the main application. Results are written to
// outW and logs to logW, each App getting its own isolated logger.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loaders: map[string]config.Loader{
			fsutil.FormatHCL:  hcl_adapter.NewLoader(),
			fsutil.FormatJSON: jsonloader.NewLoader(),
		},
	}
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
