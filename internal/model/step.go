// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the analysis step records attached to processed files.
package model

// AnalysisStepExecution is the run of an analysis step that produced a file.
type AnalysisStepExecution struct {
	ID      string
	Version string
	Step    *AnalysisStep
}

// AnalysisStep is a classified processing step, possibly shared by pipelines.
type AnalysisStep struct {
	ID        string
	Title     string
	StepTypes []string
	Pipelines []Pipeline
}

// Pipeline is a named sequence of analysis steps.
type Pipeline struct {
	ID    string
	Title string
}
