// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the File record, the vertex type of the provenance graph.
package model

// OutputCategoryRaw marks files that hold unprocessed instrument output.
const OutputCategoryRaw = "raw data"

// File is a single data file of a dataset.
type File struct {
	// ID is the unique, immutable identifier, e.g. "/files/ENCFF001ABC/".
	ID        string
	Accession string
	Title     string
	// OutputType is the file's content kind, e.g. "alignments".
	OutputType     string
	OutputCategory string
	Status         string

	// DerivedFrom lists the identifiers of the files this file was computed from.
	DerivedFrom []string

	Assembly         string
	GenomeAnnotation string

	BiologicalReplicates []int

	StepRun        *AnalysisStepExecution
	QualityMetrics []QualityMetric
}

// HasDerivedFrom reports whether the file declares any derivation source.
func (f *File) HasDerivedFrom() bool {
	return len(f.DerivedFrom) > 0
}

// SingleReplicate returns the replicate number when the file belongs to
// exactly one biological replicate.
func (f *File) SingleReplicate() (int, bool) {
	if len(f.BiologicalReplicates) != 1 {
		return 0, false
	}
	return f.BiologicalReplicates[0], true
}

// IsRaw reports whether the file is unprocessed instrument output.
func (f *File) IsRaw() bool {
	return f.OutputCategory == OutputCategoryRaw
}

// AnalysisStep returns the step behind the file's step run, or nil.
func (f *File) AnalysisStep() *AnalysisStep {
	if f.StepRun == nil {
		return nil
	}
	return f.StepRun.Step
}
