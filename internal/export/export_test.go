package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/provgraph/internal/dag"
	"github.com/vk/provgraph/internal/model"
	"gopkg.in/yaml.v3"
)

func sampleGraph(t *testing.T) *dag.Graph {
	t.Helper()
	file := &model.File{ID: "a", OutputType: "bam"}
	metric := &model.QualityMetric{ID: "q", Type: "SamtoolsFlagstatsQualityMetric", Attributes: map[string]any{"mapped": 10}}
	step := &model.AnalysisStep{ID: "S"}

	g := dag.New("ds")
	g.AddNode(&dag.Node{ID: "rep:1", Label: "Replicate 1", Kind: dag.ReplicateNode, Style: []string{"replicate"}})
	g.AddNode(&dag.Node{
		ID: "file:a", Label: "a (bam)", Kind: dag.FileNode, Parent: "rep:1", Style: []string{"file"}, File: file,
		QC: []dag.SubNode{{ID: "qc:qa", Label: "SAM", Metric: metric}},
	})
	g.AddNode(&dag.Node{
		ID: "step:aS", Label: "align", Kind: dag.StepNode, Style: []string{"analysis-step", "active"},
		Step: step, StepVersion: "1.0", Pipelines: []string{"ChIP-seq"},
	})
	g.AddNode(&dag.Node{ID: "file:X", Label: "X (unknown)", Kind: dag.MissingNode, Style: []string{"file", "error"}})
	require.NoError(t, g.AddEdge("file:a", "step:aS"))
	require.NoError(t, g.AddEdge("file:X", "step:aS"))
	return g
}

func TestNewDocument(t *testing.T) {
	t.Parallel()

	doc := NewDocument(sampleGraph(t))

	want := &Document{
		Name: "ds",
		Nodes: []NodeDoc{
			{ID: "rep:1", Label: "Replicate 1", Type: "Rep", Class: "replicate"},
			{
				ID: "file:a", Label: "a (bam)", Type: "File", Parent: "rep:1", Class: "file", FileID: "a",
				QC: []SubNodeDoc{{ID: "qc:qa", Label: "SAM", MetricType: "SamtoolsFlagstatsQualityMetric", Attributes: map[string]any{"mapped": 10}}},
			},
			{ID: "step:aS", Label: "align", Type: "Step", Class: "analysis-step active", StepID: "S", StepVersion: "1.0", Pipelines: []string{"ChIP-seq"}},
			{ID: "file:X", Label: "X (unknown)", Type: "Missing", Class: "file error"},
		},
		Edges: []EdgeDoc{{From: "file:a", To: "step:aS"}, {From: "file:X", To: "step:aS"}},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleGraph(t), FormatJSON))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	nodes := got["nodes"].([]any)
	require.Len(t, nodes, 4)
	first := nodes[0].(map[string]any)
	assert.Equal(t, "rep:1", first["id"])
	assert.NotContains(t, first, "parent")
	assert.Len(t, got["edges"], 2)
}

func TestWriteJSON_EmptyGraph(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, dag.New("")))

	assert.JSONEq(t, `{"nodes": [], "edges": []}`, buf.String())
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleGraph(t), FormatYAML))

	out := buf.String()
	assert.Contains(t, out, "name: ds\n")

	var doc Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Len(t, doc.Nodes, 4)
	assert.Equal(t, EdgeDoc{From: "file:X", To: "step:aS"}, doc.Edges[1])
}

func TestWriteDOT(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleGraph(t), FormatDOT))

	want := `digraph "ds" {
  rankdir=TB;
  subgraph "cluster_rep:1" {
    label="Replicate 1";
    "file:a" [class="file", label="a (bam)\n[SAM]", shape="box"];
  }
  "step:aS" [class="analysis-step active", label="align", penwidth="3", shape="ellipse"];
  "file:X" [class="file error", label="X (unknown)", shape="note", style="dashed"];
  "file:a" -> "step:aS";
  "file:X" -> "step:aS";
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("DOT mismatch (-want +got):\n%s", diff)
	}
}

func TestDotQuote(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"a \"b\" \\ c\nd"`, dotQuote("a \"b\" \\ c\nd"))
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	err := Write(&bytes.Buffer{}, dag.New(""), "svg")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported output format "svg"`)
}

func TestWriteFileTable(t *testing.T) {
	t.Parallel()

	files := []*model.File{
		{ID: "/files/ENCFF001/", Accession: "ENCFF001", OutputType: "alignments", Assembly: "GRCh38", BiologicalReplicates: []int{1, 2}, Status: "released"},
		{ID: "/files/ENCFF002/", OutputType: "reads"},
		nil,
	}
	placed := map[string]*model.File{"/files/ENCFF001/": files[0]}

	var buf bytes.Buffer
	require.NoError(t, WriteFileTable(&buf, files, placed))

	out := buf.String()
	for _, want := range []string{"Accession", "Graph", "ENCFF001", "ENCFF002", "GRCh38", "1, 2", "released", placedMark} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte(" "+placedMark+" ")))
}
