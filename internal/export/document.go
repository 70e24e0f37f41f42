package export

import (
	"github.com/vk/provgraph/internal/dag"
)

// Document is the serializable form of a graph. Nodes and edges keep the
// graph's insertion order.
type Document struct {
	Name  string    `json:"name,omitempty" yaml:"name,omitempty"`
	Nodes []NodeDoc `json:"nodes" yaml:"nodes"`
	Edges []EdgeDoc `json:"edges" yaml:"edges"`
}

// NodeDoc is a serialized graph node.
type NodeDoc struct {
	ID           string       `json:"id" yaml:"id"`
	Label        string       `json:"label" yaml:"label"`
	Type         string       `json:"type" yaml:"type"`
	Parent       string       `json:"parent,omitempty" yaml:"parent,omitempty"`
	Class        string       `json:"class,omitempty" yaml:"class,omitempty"`
	FileID       string       `json:"file,omitempty" yaml:"file,omitempty"`
	Contributing string       `json:"contributing,omitempty" yaml:"contributing,omitempty"`
	Members      []string     `json:"members,omitempty" yaml:"members,omitempty"`
	StepID       string       `json:"step,omitempty" yaml:"step,omitempty"`
	StepVersion  string       `json:"step_version,omitempty" yaml:"step_version,omitempty"`
	Pipelines    []string     `json:"pipelines,omitempty" yaml:"pipelines,omitempty"`
	QC           []SubNodeDoc `json:"qc,omitempty" yaml:"qc,omitempty"`
}

// SubNodeDoc is a serialized quality metric sub-node.
type SubNodeDoc struct {
	ID         string         `json:"id" yaml:"id"`
	Label      string         `json:"label" yaml:"label"`
	MetricType string         `json:"metric_type,omitempty" yaml:"metric_type,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// EdgeDoc is a serialized directed edge.
type EdgeDoc struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// NewDocument converts g into its serializable form.
func NewDocument(g *dag.Graph) *Document {
	doc := &Document{Name: g.Name, Nodes: []NodeDoc{}, Edges: []EdgeDoc{}}
	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, nodeDoc(n))
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, EdgeDoc{From: e.From, To: e.To})
	}
	return doc
}

func nodeDoc(n *dag.Node) NodeDoc {
	nd := NodeDoc{
		ID:           n.ID,
		Label:        n.Label,
		Type:         n.Kind.String(),
		Parent:       n.Parent,
		Class:        n.StyleClass(),
		Contributing: n.Contributing,
		Members:      n.Members,
		StepVersion:  n.StepVersion,
		Pipelines:    n.Pipelines,
	}
	if n.File != nil {
		nd.FileID = n.File.ID
	}
	if n.Step != nil {
		nd.StepID = n.Step.ID
	}
	for _, sub := range n.QC {
		sd := SubNodeDoc{ID: sub.ID, Label: sub.Label}
		if sub.Metric != nil {
			sd.MetricType = sub.Metric.Type
			sd.Attributes = sub.Metric.Attributes
		}
		nd.QC = append(nd.QC, sd)
	}
	return nd
}
