package provenance

import (
	"sort"

	"github.com/vk/provgraph/internal/model"
)

// ReplicateGroups partitions matching files into biological replicate buckets.
type ReplicateGroups struct {
	members map[int][]string
	// bucketsOf records, per file, the buckets it was recorded in.
	bucketsOf map[string][]int
}

// groupReplicates records every single-replicate matching file under its
// replicate, and every matching file under the replicate of each of its
// single-replicate derivation sources.
func groupReplicates(matching []*model.File, idx *FileIndex) *ReplicateGroups {
	g := &ReplicateGroups{
		members:   make(map[int][]string),
		bucketsOf: make(map[string][]int),
	}
	for _, f := range matching {
		if rep, ok := f.SingleReplicate(); ok {
			g.record(rep, f.ID)
		}
		for _, src := range f.DerivedFrom {
			srcFile, ok := idx.ByID(src)
			if !ok {
				continue
			}
			if rep, ok := srcFile.SingleReplicate(); ok {
				g.record(rep, f.ID)
			}
		}
	}
	return g
}

func (g *ReplicateGroups) record(rep int, fileID string) {
	for _, existing := range g.bucketsOf[fileID] {
		if existing == rep {
			return
		}
	}
	g.members[rep] = append(g.members[rep], fileID)
	g.bucketsOf[fileID] = append(g.bucketsOf[fileID], rep)
}

// Numbers returns the populated replicate numbers in ascending order.
func (g *ReplicateGroups) Numbers() []int {
	numbers := make([]int, 0, len(g.members))
	for n, files := range g.members {
		if len(files) > 0 {
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)
	return numbers
}

// Members returns the file IDs recorded under replicate n, in record order.
func (g *ReplicateGroups) Members(n int) []string {
	return g.members[n]
}

// Has reports whether replicate n has a populated bucket.
func (g *ReplicateGroups) Has(n int) bool {
	return len(g.members[n]) > 0
}

// ParentOf returns the replicate a file's node is clustered in: its own
// replicate when it has exactly one and that bucket exists, otherwise the
// bucket it was recorded in through its ancestors when that bucket is unique.
func (g *ReplicateGroups) ParentOf(f *model.File) (int, bool) {
	if rep, ok := f.SingleReplicate(); ok {
		return rep, g.Has(rep)
	}
	if buckets := g.bucketsOf[f.ID]; len(buckets) == 1 {
		return buckets[0], true
	}
	return 0, false
}
