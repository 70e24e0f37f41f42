package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vk/provgraph/internal/export"
	"github.com/vk/provgraph/internal/provenance"
)

// Run executes the main application logic: load the dataset, assemble its
// provenance graph and write it out. A dataset with no graphable
// relationships is reported, not treated as a failure.
func (a *App) Run(ctx context.Context) error {
	ctx = a.context(ctx)
	a.logger.Debug("App.Run method started.")

	bundle, err := a.Load(ctx)
	if err != nil {
		return err
	}
	cfg := a.applySettings(ctx, bundle.Settings)

	assembler := provenance.NewAssembler(provenance.Options{
		MinCoalesce:    cfg.MinCoalesce,
		SelectedNodeID: cfg.SelectedNodeID,
		Colorize:       cfg.Colorize,
	})
	assembler.SetFiles(ctx, bundle.Files)

	res, err := assembler.Assemble(ctx, bundle.Dataset, provenance.Filter{
		Assembly:   cfg.Assembly,
		Annotation: cfg.Annotation,
	})
	if provenance.IsNoGraphableRelationships(err) {
		a.logger.Info("No graph to draw.", "reason", err.Error())
		fmt.Fprintf(a.outW, "No provenance graph for assembly %q: %v\n", cfg.Assembly, err)
		if cfg.ShowTable {
			if err := export.WriteFileTable(a.outW, bundle.Files, nil); err != nil {
				return fmt.Errorf("failed to write file table: %w", err)
			}
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to assemble graph: %w", err)
	}
	a.logger.Info("Graph assembled.",
		"nodes", res.Graph.Len(),
		"edges", len(res.Graph.Edges()),
		"placed_files", len(res.PlacedFiles),
		"missing", len(res.Missing),
	)

	if err := a.writeGraph(res, cfg); err != nil {
		return err
	}
	if cfg.ShowTable {
		if err := export.WriteFileTable(a.outW, bundle.Files, res.PlacedFiles); err != nil {
			return fmt.Errorf("failed to write file table: %w", err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) writeGraph(res *provenance.Result, cfg Config) (err error) {
	var w io.Writer = a.outW
	if cfg.OutputPath != "" {
		f, createErr := os.Create(cfg.OutputPath)
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", cerr)
			}
		}()
		w = f
	}

	if err := export.Write(w, res.Graph, cfg.Format); err != nil {
		return fmt.Errorf("failed to write graph: %w", err)
	}
	a.logger.Debug("Graph written.", "format", cfg.Format, "output", cfg.OutputPath)
	return nil
}
