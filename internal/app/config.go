package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/vk/provgraph/internal/export"
)

// Config holds all the necessary configuration for an App instance to run.
// Zero values of Assembly, Annotation and MinCoalesce are filled from the
// dataset's settings, if it declares any.
type Config struct {
	DatasetPath string // .hcl or .json file, or a directory of them

	Assembly       string
	Annotation     string
	MinCoalesce    int
	SelectedNodeID string
	Colorize       bool

	Format     string
	OutputPath string // stdout when empty
	ShowTable  bool

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.DatasetPath == "" {
		return nil, errors.New("DatasetPath is a required configuration field and cannot be empty")
	}
	if cfg.Format == "" {
		cfg.Format = export.FormatJSON
	}
	cfg.Format = strings.ToLower(cfg.Format)
	if !slices.Contains(export.Formats, cfg.Format) {
		return nil, fmt.Errorf("invalid format %q: must be one of %s", cfg.Format, strings.Join(export.Formats, ", "))
	}
	if cfg.MinCoalesce < 0 {
		return nil, fmt.Errorf("invalid min-coalesce %d: must not be negative", cfg.MinCoalesce)
	}
	return &cfg, nil
}
