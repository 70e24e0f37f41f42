// This file contains the logic for translating HCL schema structs into the
// format-agnostic model defined in the config and model packages.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/vk/provgraph/internal/config"
	"github.com/vk/provgraph/internal/ctxlog"
	"github.com/vk/provgraph/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// translateRoot converts all blocks decoded from one file.
func (l *Loader) translateRoot(ctx context.Context, root *fileRoot) (*config.Bundle, error) {
	bundle := &config.Bundle{}

	switch len(root.Settings) {
	case 0:
	case 1:
		settings, err := l.translateSettings(ctx, root.Settings[0])
		if err != nil {
			return nil, err
		}
		bundle.Settings = settings
	default:
		return nil, fmt.Errorf("only one settings block is allowed, found %d", len(root.Settings))
	}

	switch len(root.Datasets) {
	case 0:
	case 1:
		bundle.Dataset = translateDataset(root.Datasets[0])
	default:
		return nil, fmt.Errorf("only one dataset block is allowed, found %d", len(root.Datasets))
	}

	for _, f := range root.Files {
		file, err := l.translateFile(ctx, f)
		if err != nil {
			return nil, err
		}
		bundle.Files = append(bundle.Files, file)
	}
	return bundle, nil
}

// translateSettings converts the settings block. min_coalesce accepts any
// value convertible to a whole number.
func (l *Loader) translateSettings(ctx context.Context, s *Settings) (*config.Settings, error) {
	settings := &config.Settings{Assembly: s.Assembly, Annotation: s.Annotation}
	if !isExprDefined(ctx, s.MinCoalesce, "min_coalesce") {
		return settings, nil
	}

	val, diags := s.MinCoalesce.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid min_coalesce in settings: %w", diags)
	}
	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return nil, fmt.Errorf("invalid min_coalesce in settings: %w", err)
	}
	if num.IsNull() {
		return settings, nil
	}
	if err := gocty.FromCtyValue(num, &settings.MinCoalesce); err != nil {
		return nil, fmt.Errorf("invalid min_coalesce in settings: %w", err)
	}
	if settings.MinCoalesce < 1 {
		return nil, fmt.Errorf("invalid min_coalesce in settings: must be at least 1, got %d", settings.MinCoalesce)
	}
	return settings, nil
}

func translateDataset(d *Dataset) *model.Dataset {
	return &model.Dataset{
		ID:                d.ID,
		Accession:         d.Accession,
		ContributingFiles: d.ContributingFiles,
	}
}

// translateFile converts a file block, including its nested step run and
// quality metrics.
func (l *Loader) translateFile(ctx context.Context, f *File) (*model.File, error) {
	logger := ctxlog.FromContext(ctx).With("file_id", f.ID)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Translating HCL file block to internal model.")

	file := &model.File{
		ID:                   f.ID,
		Accession:            f.Accession,
		Title:                f.Title,
		OutputType:           f.OutputType,
		OutputCategory:       f.OutputCategory,
		Status:               f.Status,
		DerivedFrom:          f.DerivedFrom,
		Assembly:             f.Assembly,
		GenomeAnnotation:     f.GenomeAnnotation,
		BiologicalReplicates: f.BiologicalReplicates,
	}

	if f.StepRun != nil {
		file.StepRun = &model.AnalysisStepExecution{ID: f.StepRun.ID, Version: f.StepRun.Version}
		if s := f.StepRun.Step; s != nil {
			step := &model.AnalysisStep{ID: s.ID, Title: s.Title, StepTypes: s.StepTypes}
			for _, p := range s.Pipelines {
				step.Pipelines = append(step.Pipelines, model.Pipeline{ID: p.ID, Title: p.Title})
			}
			file.StepRun.Step = step
		} else {
			logger.Debug("Step run has no analysis_step block.", "step_run", f.StepRun.ID)
		}
	}

	for _, qm := range f.QualityMetrics {
		metric, err := l.translateQualityMetric(ctx, qm)
		if err != nil {
			return nil, fmt.Errorf("in file '%s': %w", f.ID, err)
		}
		file.QualityMetrics = append(file.QualityMetrics, metric)
	}
	return file, nil
}

func (l *Loader) translateQualityMetric(ctx context.Context, qm *QualityMetric) (model.QualityMetric, error) {
	metric := model.QualityMetric{ID: qm.ID, Type: qm.Type}
	if !isExprDefined(ctx, qm.Attributes, "attributes") {
		return metric, nil
	}

	val, diags := qm.Attributes.Value(nil)
	if diags.HasErrors() {
		return metric, fmt.Errorf("invalid attributes for quality_metric '%s': %w", qm.ID, diags)
	}
	attrs, err := l.converter.ToAttributes(val)
	if err != nil {
		return metric, fmt.Errorf("invalid attributes for quality_metric '%s': %w", qm.ID, err)
	}
	metric.Attributes = attrs
	return metric, nil
}
