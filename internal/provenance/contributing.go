package provenance

import (
	"strings"

	"github.com/vk/provgraph/internal/model"
)

// resolveContributing returns the dataset's contributing file identifiers that
// matching files derive from and that are not listed files, in dataset order.
// Listed files always render as regular file nodes.
func resolveContributing(dataset *model.Dataset, idx *FileIndex, matchingDependents map[string][]string) []string {
	if dataset == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(dataset.ContributingFiles))
	var used []string
	for _, raw := range dataset.ContributingFiles {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, listed := idx.ByID(id); listed {
			continue
		}
		if len(matchingDependents[id]) > 0 {
			used = append(used, id)
		}
	}
	return used
}

// detectMissing returns the derivation sources of matching files that are
// neither listed files nor used contributing files, in first-seen order.
func detectMissing(matching []*model.File, idx *FileIndex, used map[string]bool) []string {
	seen := make(map[string]struct{})
	var missing []string
	for _, f := range matching {
		for _, src := range f.DerivedFrom {
			if _, listed := idx.ByID(src); listed || used[src] {
				continue
			}
			if _, dup := seen[src]; dup {
				continue
			}
			seen[src] = struct{}{}
			missing = append(missing, src)
		}
	}
	return missing
}

// dependentsAmong maps each derivation source to the IDs of the given files
// deriving from it, in file order.
func dependentsAmong(files []*model.File) map[string][]string {
	deps := make(map[string][]string)
	for _, f := range files {
		for _, src := range f.DerivedFrom {
			deps[src] = append(deps[src], f.ID)
		}
	}
	return deps
}
