package jsonloader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vk/provgraph/internal/config"
	"github.com/vk/provgraph/internal/ctxlog"
	"github.com/vk/provgraph/internal/fsutil"
	"github.com/vk/provgraph/internal/model"
)

// Loader is the JSON implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new JSON dataset loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .json document under the given paths and merges them in
// discovery order. At most one document may be a dataset object.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Bundle, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("JSON loader started.", "path_count", len(paths))

	jsonFiles, err := fsutil.CollectFiles(paths, "."+fsutil.FormatJSON)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered JSON files.", "count", len(jsonFiles))

	bundle := &config.Bundle{}
	for _, file := range jsonFiles {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read JSON file %s: %w", file, err)
		}
		part, err := decodeDocument(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode JSON file %s: %w", file, err)
		}
		datasetConflict, settingsConflict := bundle.Merge(part)
		if datasetConflict {
			return nil, fmt.Errorf("in JSON file %s: only one dataset document is allowed", file)
		}
		if settingsConflict {
			return nil, fmt.Errorf("in JSON file %s: only one settings object is allowed", file)
		}
	}

	if bundle.Dataset == nil {
		bundle.Dataset = &model.Dataset{}
	}
	logger.Debug("JSON loading complete.", "files", len(bundle.Files), "has_settings", bundle.Settings != nil)
	return bundle, nil
}

// decodeDocument decodes a dataset object or a bare array of file objects.
func decodeDocument(data []byte) (*config.Bundle, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var files []fileDoc
		if err := json.Unmarshal(trimmed, &files); err != nil {
			return nil, err
		}
		return &config.Bundle{Files: translateFiles(files)}, nil
	}

	var doc datasetDoc
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	bundle := &config.Bundle{
		Dataset: &model.Dataset{
			ID:                doc.ID,
			Accession:         doc.Accession,
			ContributingFiles: refStrings(doc.ContributingFiles),
		},
		Files: translateFiles(doc.Files),
	}
	if doc.Settings != nil {
		if doc.Settings.MinCoalesce < 0 {
			return nil, fmt.Errorf("invalid min_coalesce in settings: must not be negative, got %d", doc.Settings.MinCoalesce)
		}
		bundle.Settings = &config.Settings{
			Assembly:    doc.Settings.Assembly,
			Annotation:  doc.Settings.Annotation,
			MinCoalesce: doc.Settings.MinCoalesce,
		}
	}
	return bundle, nil
}

func translateFiles(docs []fileDoc) []*model.File {
	files := make([]*model.File, 0, len(docs))
	for i := range docs {
		files = append(files, translateFile(&docs[i]))
	}
	return files
}

func translateFile(d *fileDoc) *model.File {
	f := &model.File{
		ID:                   d.ID,
		Accession:            d.Accession,
		Title:                d.Title,
		OutputType:           d.OutputType,
		OutputCategory:       d.OutputCategory,
		Status:               d.Status,
		DerivedFrom:          refStrings(d.DerivedFrom),
		Assembly:             d.Assembly,
		GenomeAnnotation:     d.GenomeAnnotation,
		BiologicalReplicates: d.BiologicalReplicates,
	}

	if d.StepRun != nil {
		f.StepRun = &model.AnalysisStepExecution{ID: d.StepRun.ID}
		if v := d.StepRun.AnalysisStepVersion; v != nil {
			f.StepRun.Version = v.Version
			if s := v.AnalysisStep; s != nil {
				step := &model.AnalysisStep{ID: s.ID, Title: s.Title, StepTypes: s.StepTypes}
				for _, p := range s.Pipelines {
					step.Pipelines = append(step.Pipelines, model.Pipeline{ID: p.ID, Title: p.Title})
				}
				f.StepRun.Step = step
			}
		}
	}

	for _, m := range d.QualityMetrics {
		f.QualityMetrics = append(f.QualityMetrics, translateMetric(m))
	}
	return f
}

// translateMetric splits "@id" and the most specific "@type" off a metric
// object; the remaining members become its attributes.
func translateMetric(m metricDoc) model.QualityMetric {
	metric := model.QualityMetric{}
	attrs := make(map[string]any, len(m))
	for k, v := range m {
		switch k {
		case "@id":
			metric.ID, _ = v.(string)
		case "@type":
			metric.Type = metricType(v)
		default:
			attrs[k] = v
		}
	}
	if len(attrs) > 0 {
		metric.Attributes = attrs
	}
	return metric
}

// metricType accepts "@type" as a string or as the portal's type hierarchy,
// most specific first.
func metricType(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		if len(t) > 0 {
			s, _ := t[0].(string)
			return s
		}
	}
	return ""
}
