package dag

import (
	"sync"

	"github.com/vk/provgraph/internal/model"
)

// Graph is a collection of nodes and the directed edges between them.
// All operations on the graph are concurrency-safe.
type Graph struct {
	// Name labels the graph, typically with the dataset accession.
	Name string

	// mutex protects the maps and ordering slices during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*Node
	// order records node IDs in insertion order for stable enumeration.
	order []string
	// edges stores each edge once, keyed by its ordered pair.
	edges map[edgeKey]*Edge
	// edgeOrder records edges in insertion order.
	edgeOrder []edgeKey
	// deps holds, per node, the set of nodes with an edge into it (predecessors).
	deps map[string]map[string]struct{}
	// dependents holds, per node, the set of nodes it has an edge to (successors).
	dependents map[string]map[string]struct{}
}

// Kind distinguishes the node types of a provenance graph.
type Kind int

const (
	// FileNode is a data file, including contributing file stubs.
	FileNode Kind = iota
	// StepNode is an analysis step, or the placeholder drawn when the step is unknown.
	StepNode
	// CoalescedNode stands in for a group of contributing files.
	CoalescedNode
	// MissingNode is a derivation source with no resolvable record.
	MissingNode
	// ReplicateNode is a container clustering the nodes of one biological replicate.
	ReplicateNode
)

// String returns the type tag a renderer uses for the kind.
func (k Kind) String() string {
	switch k {
	case FileNode:
		return "File"
	case StepNode:
		return "Step"
	case CoalescedNode:
		return "Coalesced"
	case MissingNode:
		return "Missing"
	case ReplicateNode:
		return "Rep"
	default:
		return "Unknown"
	}
}

// Node is a single vertex of the graph.
type Node struct {
	// ID is the unique, deterministic identifier, e.g. "file:/files/ENCFF001ABC/".
	ID string
	// Label is the human-readable display text.
	Label string
	Kind  Kind
	// Parent is the ID of the container node this node is clustered in, if any.
	Parent string
	// Style holds visual tags such as "file", "contributing", "error" or "active".
	Style []string

	// File is the source record of file nodes built from a listed file.
	File *model.File
	// Step is the source record of step nodes.
	Step *model.AnalysisStep
	// StepVersion is the version of the step run a step node was created from.
	StepVersion string
	// Pipelines lists the titles of the pipelines a step belongs to.
	Pipelines []string
	// Contributing is the back-reference a consumer resolves to fetch the
	// full record of a contributing file node.
	Contributing string
	// Members lists the file IDs a coalesced node stands in for.
	Members []string

	// QC holds the quality metric sub-nodes of a file node, in render order.
	QC []SubNode
}

// SubNode is a node drawn inside its owner rather than as a graph vertex.
type SubNode struct {
	ID     string
	Label  string
	Metric *model.QualityMetric
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From string
	To   string
}

type edgeKey struct {
	from string
	to   string
}
