package provenance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/provgraph/internal/model"
)

func TestHashSignature(t *testing.T) {
	t.Parallel()

	// FNV-1a 64-bit offset basis.
	assert.Equal(t, "cbf29ce484222325", HashSignature(""))
	assert.Len(t, HashSignature("a,b"), 16)
	assert.Equal(t, HashSignature("a,b"), HashSignature("a,b"))
	assert.NotEqual(t, HashSignature("a,b"), HashSignature("b,a"))
}

func TestCoalesce(t *testing.T) {
	t.Parallel()

	used := []string{"c5", "c4", "c3", "c2", "c1", "d1", "d2"}
	dependents := map[string][]string{
		"c1": {"m2", "m1"},
		"c2": {"m1", "m2"},
		"c3": {"m1", "m2"},
		"c4": {"m2", "m1"},
		"c5": {"m1", "m2"},
		"d1": {"m1"},
		"d2": {"m1"},
	}

	res := coalesce(used, dependents, DefaultMinCoalesce, NewMemo())

	require.Len(t, res.groups, 1)
	group := res.groups[0]
	assert.Equal(t, "m1,m2", group.Signature)
	assert.Equal(t, HashSignature("m1,m2"), group.Key)
	assert.Equal(t, []string{"c1", "c2", "c3", "c4", "c5"}, group.Members)
	assert.Same(t, group, res.memberOf["c3"])
	assert.Equal(t, []string{"d1", "d2"}, res.individual)
}

func TestCoalesce_GroupsSortedByKey(t *testing.T) {
	t.Parallel()

	used := []string{"a", "b", "c", "d"}
	dependents := map[string][]string{"a": {"x"}, "b": {"x"}, "c": {"y"}, "d": {"y"}}

	res := coalesce(used, dependents, 2, NewMemo())

	require.Len(t, res.groups, 2)
	assert.Less(t, res.groups[0].Key, res.groups[1].Key)
	assert.Empty(t, res.individual)
}

func TestResolveContributing(t *testing.T) {
	t.Parallel()

	idx := NewFileIndex(context.Background(), []*model.File{newFile("listed")})
	dataset := &model.Dataset{ContributingFiles: []string{"c2", " c1 ", "", "c2", "listed", "unused"}}
	dependents := map[string][]string{"c1": {"m"}, "c2": {"m"}, "listed": {"m"}}

	assert.Equal(t, []string{"c2", "c1"}, resolveContributing(dataset, idx, dependents))
	assert.Nil(t, resolveContributing(nil, idx, dependents))
}

func TestDetectMissing(t *testing.T) {
	t.Parallel()

	idx := NewFileIndex(context.Background(), []*model.File{
		newFile("a"),
		newFile("m1", derivedFrom("a", "y", "c")),
		newFile("m2", derivedFrom("x", "y")),
	})
	matching := idx.Files()[1:]

	missing := detectMissing(matching, idx, map[string]bool{"c": true})

	assert.Equal(t, []string{"y", "x"}, missing)
}

func TestMemo(t *testing.T) {
	t.Parallel()

	m := NewMemo()
	f := newFile("f", derivedFrom("b", "a"))

	assert.Equal(t, "a,b", m.DerivedKey(f))
	assert.Equal(t, "a,b", m.DerivedKey(f))
	assert.Equal(t, []string{"b", "a"}, f.DerivedFrom)

	metric := &model.QualityMetric{ID: "q"}
	assert.Equal(t, "qc:qf", m.QCID(metric, f))
	assert.Equal(t, HashSignature("m"), m.GroupKey("m"))

	hits, misses := m.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 3, misses)

	m.Reset()
	hits, misses = m.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}
