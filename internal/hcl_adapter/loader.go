package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/provgraph/internal/config"
	"github.com/vk/provgraph/internal/ctxlog"
	"github.com/vk/provgraph/internal/fsutil"
	"github.com/vk/provgraph/internal/model"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	converter *Converter
}

// NewLoader creates a new HCL dataset loader.
func NewLoader() *Loader {
	return &Loader{converter: NewConverter()}
}

// Load orchestrates the entire HCL loading process. Every .hcl file under the
// given paths is parsed; files are merged in discovery order. At most one
// dataset block and one settings block may appear across all files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Bundle, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := fsutil.CollectFiles(paths, "."+fsutil.FormatHCL)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	bundle := &config.Bundle{}
	parser := hclparse.NewParser()

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		part, err := l.translateRoot(ctx, &root)
		if err != nil {
			return nil, fmt.Errorf("in HCL file %s: %w", file, err)
		}
		datasetConflict, settingsConflict := bundle.Merge(part)
		if datasetConflict {
			return nil, fmt.Errorf("in HCL file %s: only one dataset block is allowed", file)
		}
		if settingsConflict {
			return nil, fmt.Errorf("in HCL file %s: only one settings block is allowed", file)
		}
	}

	if bundle.Dataset == nil {
		logger.Debug("No dataset block found, using an empty dataset.")
		bundle.Dataset = &model.Dataset{}
	}

	logger.Debug("HCL loading complete.", "files", len(bundle.Files), "has_settings", bundle.Settings != nil)
	return bundle, nil
}
