package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/provgraph/internal/export"
)

// DecodeGraph parses the JSON graph document a run wrote to its output.
func DecodeGraph(t *testing.T, result *HarnessResult) *export.Document {
	t.Helper()
	require.NoError(t, result.Err)

	var doc export.Document
	require.NoError(t, json.Unmarshal([]byte(result.Output), &doc), "output is not a JSON graph document:\n%s", result.Output)
	return &doc
}

// FindNode returns the node with the given id, failing the test when the
// graph has no such node.
func FindNode(t *testing.T, doc *export.Document, id string) export.NodeDoc {
	t.Helper()
	for _, n := range doc.Nodes {
		if n.ID == id {
			return n
		}
	}
	require.Failf(t, "node not found", "graph has no node %q", id)
	return export.NodeDoc{}
}

// NodeIDs lists node ids in output order.
func NodeIDs(doc *export.Document) []string {
	ids := make([]string, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

// HasEdge reports whether the graph has an edge from one node to another.
func HasEdge(doc *export.Document, from, to string) bool {
	for _, e := range doc.Edges {
		if e.From == from && e.To == to {
			return true
		}
	}
	return false
}
