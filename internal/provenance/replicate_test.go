package provenance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vk/provgraph/internal/model"
)

func TestGroupReplicates(t *testing.T) {
	t.Parallel()

	files := []*model.File{
		newFile("r1", reps(1)),
		newFile("r2", reps(2)),
		newFile("a1", reps(1), derivedFrom("r1")),
		newFile("x", derivedFrom("r2", "r1")),
		newFile("y", derivedFrom("r2")),
		newFile("out", reps(4)),
	}
	idx := NewFileIndex(context.Background(), files)

	g := groupReplicates(idx.Files()[:5], idx)

	assert.Equal(t, []int{1, 2}, g.Numbers())
	assert.Equal(t, []string{"r1", "a1", "x"}, g.Members(1))
	assert.Equal(t, []string{"r2", "x", "y"}, g.Members(2))
	assert.False(t, g.Has(4))

	testCases := []struct {
		id      string
		wantRep int
		wantOK  bool
	}{
		{"a1", 1, true},
		{"y", 2, true},
		{"x", 0, false},
		{"out", 4, false},
	}
	for _, tc := range testCases {
		f, _ := idx.ByID(tc.id)
		rep, ok := g.ParentOf(f)
		assert.Equal(t, tc.wantOK, ok, tc.id)
		if tc.wantOK {
			assert.Equal(t, tc.wantRep, rep, tc.id)
		}
	}
}
