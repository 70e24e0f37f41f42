package provenance

import (
	"context"
	"strings"

	"github.com/vk/provgraph/internal/ctxlog"
	"github.com/vk/provgraph/internal/model"
)

// FileIndex is a lookup of file by identifier that preserves input order.
type FileIndex struct {
	byID  map[string]*model.File
	order []*model.File
	// inputs maps an identifier to the caller's record, which differs from
	// byID when the record was normalized.
	inputs map[string]*model.File
}

// NewFileIndex validates and indexes files. Nil records and records without
// an identifier are skipped, duplicates are dropped (the first one wins).
// Records whose identifiers need cleaning are replaced by a normalized copy;
// the caller's records are never modified.
func NewFileIndex(ctx context.Context, files []*model.File) *FileIndex {
	logger := ctxlog.FromContext(ctx)
	idx := &FileIndex{
		byID:   make(map[string]*model.File, len(files)),
		inputs: make(map[string]*model.File, len(files)),
	}

	for i, f := range files {
		if f == nil {
			logger.Warn("Skipping nil file record.", "position", i)
			continue
		}
		id := strings.TrimSpace(f.ID)
		if id == "" {
			logger.Warn("Skipping file record without identifier.", "position", i, "accession", f.Accession)
			continue
		}
		if _, dup := idx.byID[id]; dup {
			logger.Debug("Ignoring duplicate file record.", "file_id", id)
			continue
		}

		nf := normalizeFile(f, id)
		idx.byID[id] = nf
		idx.inputs[id] = f
		idx.order = append(idx.order, nf)
	}

	logger.Debug("File index built.", "input", len(files), "indexed", len(idx.order))
	return idx
}

// ByID returns the file with the given identifier.
func (idx *FileIndex) ByID(id string) (*model.File, bool) {
	f, ok := idx.byID[id]
	return f, ok
}

// Input returns the caller's record for the given identifier, as passed to
// NewFileIndex before normalization.
func (idx *FileIndex) Input(id string) (*model.File, bool) {
	f, ok := idx.inputs[id]
	return f, ok
}

// Files returns the indexed files in input order.
func (idx *FileIndex) Files() []*model.File {
	return idx.order
}

// Len returns the number of indexed files.
func (idx *FileIndex) Len() int {
	return len(idx.order)
}

// normalizeFile returns f itself when it is already clean, or a shallow copy
// with a trimmed ID and a cleaned derivation list.
func normalizeFile(f *model.File, id string) *model.File {
	derived, changed := cleanDerivedFrom(f.DerivedFrom, id)
	if id == f.ID && !changed {
		return f
	}
	cp := *f
	cp.ID = id
	cp.DerivedFrom = derived
	return &cp
}

// cleanDerivedFrom trims identifiers and drops empty, duplicate and
// self-referencing entries. The input slice is returned untouched when
// nothing had to change.
func cleanDerivedFrom(ids []string, self string) ([]string, bool) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	changed := false
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id != raw {
			changed = true
		}
		if id == "" || id == self {
			changed = true
			continue
		}
		if _, ok := seen[id]; ok {
			changed = true
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if !changed {
		return ids, false
	}
	return out, true
}

// ReverseIndex maps a derivation source to the files derived from it. It is
// built over the full file list, independent of any filter.
type ReverseIndex struct {
	dependents map[string][]*model.File
}

// NewReverseIndex scans every indexed file's derivation sources.
func NewReverseIndex(idx *FileIndex) *ReverseIndex {
	r := &ReverseIndex{dependents: make(map[string][]*model.File)}
	for _, f := range idx.Files() {
		for _, src := range f.DerivedFrom {
			r.dependents[src] = append(r.dependents[src], f)
		}
	}
	return r
}

// Dependents returns the files derived from id, in input order.
func (r *ReverseIndex) Dependents(id string) []*model.File {
	return r.dependents[id]
}

// Has reports whether any file derives from id.
func (r *ReverseIndex) Has(id string) bool {
	return len(r.dependents[id]) > 0
}
