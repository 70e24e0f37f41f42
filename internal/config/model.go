package config

import (
	"github.com/vk/provgraph/internal/model"
)

// Bundle is the unified, format-agnostic representation of everything a
// dataset document declares.
type Bundle struct {
	// Dataset is never nil once loaded; documents without a dataset record
	// yield an empty one.
	Dataset *model.Dataset
	Files   []*model.File
	// Settings is nil when no document declares settings.
	Settings *Settings
}

// Settings holds defaults for graph assembly declared next to the data.
// Zero values mean "not set".
type Settings struct {
	Assembly    string
	Annotation  string
	MinCoalesce int
}

// Merge appends other's files to b and takes its dataset and settings where b
// has none. It reports whether both declared a dataset or settings.
func (b *Bundle) Merge(other *Bundle) (datasetConflict, settingsConflict bool) {
	b.Files = append(b.Files, other.Files...)
	if other.Dataset != nil {
		if b.Dataset != nil {
			datasetConflict = true
		} else {
			b.Dataset = other.Dataset
		}
	}
	if other.Settings != nil {
		if b.Settings != nil {
			settingsConflict = true
		} else {
			b.Settings = other.Settings
		}
	}
	return datasetConflict, settingsConflict
}
