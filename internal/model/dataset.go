// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Dataset record that scopes a provenance graph.
package model

// Dataset is the experiment whose files are being graphed.
type Dataset struct {
	ID        string
	Accession string
	// ContributingFiles lists identifiers of files owned by other datasets
	// that this dataset's files may derive from.
	ContributingFiles []string
}
