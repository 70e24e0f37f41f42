// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the QualityMetric record.
package model

// QualityMetric is a QC record attached to one file.
type QualityMetric struct {
	ID string
	// Type is the metric's schema name, e.g. "SamtoolsFlagstatsQualityMetric".
	Type       string
	Attributes map[string]any
}
