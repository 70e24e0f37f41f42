package config

import (
	"context"
)

// Loader is the interface for a format-specific dataset loader.
type Loader interface {
	// Load reads the dataset documents at the given paths and translates them
	// into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Bundle, error)
}
