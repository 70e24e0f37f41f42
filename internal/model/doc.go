// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go representation of the records the provenance
// graph is assembled from: data files, the analysis steps that produced them,
// their quality metrics and the dataset that owns them.
//
// # Core Concepts
//
//   - File: a single data file. It may declare the files it was derived from,
//     the assembly and genome annotation it belongs to, the biological
//     replicates it covers and the analysis step run that produced it.
//
//   - AnalysisStepExecution: the run of an AnalysisStep (and through it, zero
//     or more Pipelines) that produced a File. A file that derives from other
//     files but has no step run is an anomaly the graph renders explicitly.
//
//   - QualityMetric: a QC record attached to exactly one File. It is drawn as a
//     sub-node of its file, never as a top-level node.
//
//   - Dataset: the experiment the files belong to. It declares which files
//     from other datasets contribute to it.
//
// Why plain records?
//
// Upstream documents carry optional fields everywhere. The loaders translate
// them into these structs once, so the assembly code works against explicit
// zero values (empty string, nil slice, nil pointer) instead of probing for
// presence. Records are treated as immutable after loading; nothing in the
// assembly path writes to them.
package model
