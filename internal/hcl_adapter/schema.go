// This file contains the HCL schema of a dataset document, decoded with
// gohcl before being translated into the config package's model.

package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Settings []*Settings `hcl:"settings,block"`
	Datasets []*Dataset  `hcl:"dataset,block"`
	Files    []*File     `hcl:"file,block"`
	Remain   hcl.Body    `hcl:",remain"`
}

// Settings is the `settings` block holding assembly defaults.
type Settings struct {
	Assembly    string         `hcl:"assembly,optional"`
	Annotation  string         `hcl:"annotation,optional"`
	MinCoalesce hcl.Expression `hcl:"min_coalesce,optional"`
}

// Dataset is the `dataset "<id>"` block.
type Dataset struct {
	ID                string   `hcl:"id,label"`
	Accession         string   `hcl:"accession,optional"`
	ContributingFiles []string `hcl:"contributing_files,optional"`
}

// File is the `file "<id>"` block.
type File struct {
	ID                   string           `hcl:"id,label"`
	Accession            string           `hcl:"accession,optional"`
	Title                string           `hcl:"title,optional"`
	OutputType           string           `hcl:"output_type,optional"`
	OutputCategory       string           `hcl:"output_category,optional"`
	Status               string           `hcl:"status,optional"`
	DerivedFrom          []string         `hcl:"derived_from,optional"`
	Assembly             string           `hcl:"assembly,optional"`
	GenomeAnnotation     string           `hcl:"genome_annotation,optional"`
	BiologicalReplicates []int            `hcl:"biological_replicates,optional"`
	StepRun              *StepRun         `hcl:"step_run,block"`
	QualityMetrics       []*QualityMetric `hcl:"quality_metric,block"`
}

// StepRun is the `step_run "<id>"` block nested in a file.
type StepRun struct {
	ID      string        `hcl:"id,label"`
	Version string        `hcl:"version,optional"`
	Step    *AnalysisStep `hcl:"analysis_step,block"`
}

// AnalysisStep is the `analysis_step "<id>"` block nested in a step run.
type AnalysisStep struct {
	ID        string      `hcl:"id,label"`
	Title     string      `hcl:"title,optional"`
	StepTypes []string    `hcl:"step_types,optional"`
	Pipelines []*Pipeline `hcl:"pipeline,block"`
}

// Pipeline is the `pipeline "<id>"` block nested in an analysis step.
type Pipeline struct {
	ID    string `hcl:"id,label"`
	Title string `hcl:"title,optional"`
}

// QualityMetric is the `quality_metric "<id>"` block nested in a file.
type QualityMetric struct {
	ID   string `hcl:"id,label"`
	Type string `hcl:"type"`
	// Attributes is an arbitrary object of metric values.
	Attributes hcl.Expression `hcl:"attributes,optional"`
}
