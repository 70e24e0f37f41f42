package provenance

import (
	"sort"

	"github.com/vk/provgraph/internal/model"
)

// Filter is the assembly/annotation pair selected by the user.
type Filter struct {
	Assembly   string
	Annotation string
}

// Matches reports whether f belongs in the graph for this filter. Raw files
// and files with a step run but no derivation sources never match.
func (flt Filter) Matches(f *model.File) bool {
	if f.Assembly != flt.Assembly {
		return false
	}
	// Equality also covers the case where both annotations are absent.
	if f.GenomeAnnotation != flt.Annotation {
		return false
	}
	if f.IsRaw() {
		return false
	}
	if f.StepRun != nil && !f.HasDerivedFrom() {
		return false
	}
	return true
}

// selectMatching returns the indexed files matching flt, in input order.
func selectMatching(idx *FileIndex, flt Filter) []*model.File {
	var matching []*model.File
	for _, f := range idx.Files() {
		if flt.Matches(f) {
			matching = append(matching, f)
		}
	}
	return matching
}

// removeIslands drops matching files that neither derive from anything nor
// are derived from by any file of the full input. It returns the kept files
// and the sorted identifiers of the dropped ones.
func removeIslands(matching []*model.File, reverse *ReverseIndex) ([]*model.File, []string) {
	kept := make([]*model.File, 0, len(matching))
	var islands []string
	for _, f := range matching {
		if !f.HasDerivedFrom() && !reverse.Has(f.ID) {
			islands = append(islands, f.ID)
			continue
		}
		kept = append(kept, f)
	}
	sort.Strings(islands)
	return kept, islands
}
