package jsonloader

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ref is an identifier that appears either as a string or as an embedded
// object with an "@id" member.
type ref string

func (r *ref) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		var obj struct {
			ID string `json:"@id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*r = ref(obj.ID)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("reference must be a string or an object with @id: %w", err)
	}
	*r = ref(s)
	return nil
}

func refStrings(refs []ref) []string {
	if refs == nil {
		return nil
	}
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = string(r)
	}
	return out
}

type settingsDoc struct {
	Assembly    string `json:"assembly"`
	Annotation  string `json:"annotation"`
	MinCoalesce int    `json:"min_coalesce"`
}

type datasetDoc struct {
	ID                string       `json:"@id"`
	Accession         string       `json:"accession"`
	ContributingFiles []ref        `json:"contributing_files"`
	Files             []fileDoc    `json:"files"`
	Settings          *settingsDoc `json:"settings"`
}

type fileDoc struct {
	ID                   string      `json:"@id"`
	Accession            string      `json:"accession"`
	Title                string      `json:"title"`
	OutputType           string      `json:"output_type"`
	OutputCategory       string      `json:"output_category"`
	Status               string      `json:"status"`
	DerivedFrom          []ref       `json:"derived_from"`
	Assembly             string      `json:"assembly"`
	GenomeAnnotation     string      `json:"genome_annotation"`
	BiologicalReplicates []int       `json:"biological_replicates"`
	StepRun              *stepRunDoc `json:"step_run"`
	QualityMetrics       []metricDoc `json:"quality_metrics"`
}

type stepRunDoc struct {
	ID                  string          `json:"@id"`
	AnalysisStepVersion *stepVersionDoc `json:"analysis_step_version"`
}

type stepVersionDoc struct {
	Version      string   `json:"version"`
	AnalysisStep *stepDoc `json:"analysis_step"`
}

type stepDoc struct {
	ID        string        `json:"@id"`
	Title     string        `json:"title"`
	StepTypes []string      `json:"analysis_step_types"`
	Pipelines []pipelineDoc `json:"pipelines"`
}

type pipelineDoc struct {
	ID    string `json:"@id"`
	Title string `json:"title"`
}

// metricDoc keeps every member of a quality metric object; the identifier
// and type are split off during translation.
type metricDoc map[string]any
