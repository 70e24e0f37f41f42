package app

import (
	"context"
	"fmt"

	"github.com/vk/provgraph/internal/config"
	"github.com/vk/provgraph/internal/ctxlog"
	"github.com/vk/provgraph/internal/fsutil"
)

// Load picks the loader matching the dataset documents' format and reads
// them into a bundle.
func (a *App) Load(ctx context.Context) (*config.Bundle, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading dataset...", "dataset_path", a.config.DatasetPath)

	format, err := fsutil.DetectFormat(a.config.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	loader, ok := a.loaders[format]
	if !ok {
		return nil, fmt.Errorf("failed to load dataset: no loader for format %q", format)
	}

	bundle, err := loader.Load(ctx, a.config.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	logger.Info("Dataset loaded successfully.", "format", format, "files_found", len(bundle.Files))
	return bundle, nil
}

// applySettings fills the unset assembly options from the dataset's settings.
func (a *App) applySettings(ctx context.Context, settings *config.Settings) Config {
	cfg := *a.config
	if settings == nil {
		return cfg
	}
	if cfg.Assembly == "" {
		cfg.Assembly = settings.Assembly
	}
	if cfg.Annotation == "" {
		cfg.Annotation = settings.Annotation
	}
	if cfg.MinCoalesce == 0 {
		cfg.MinCoalesce = settings.MinCoalesce
	}
	ctxlog.FromContext(ctx).Debug("Dataset settings applied.",
		"assembly", cfg.Assembly, "annotation", cfg.Annotation, "min_coalesce", cfg.MinCoalesce)
	return cfg
}
