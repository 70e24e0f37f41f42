package dag

import (
	"fmt"
	"sort"
	"strings"
)

// New creates and returns an initialized, empty Graph.
func New(name string) *Graph {
	return &Graph{
		Name:       name,
		nodes:      make(map[string]*Node),
		edges:      make(map[edgeKey]*Edge),
		deps:       make(map[string]map[string]struct{}),
		dependents: make(map[string]map[string]struct{}),
	}
}

// AddNode adds n to the graph. If a node with the same ID already exists the
// graph is left unchanged and false is returned.
func (g *Graph) AddNode(n *Node) bool {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[n.ID]; ok {
		return false
	}

	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
	g.deps[n.ID] = make(map[string]struct{})
	g.dependents[n.ID] = make(map[string]struct{})
	return true
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// Adding an edge that already exists is a no-op. An error is returned if
// either node does not exist or if the edge would create a self-reference.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[fromID]; !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	if _, ok := g.nodes[toID]; !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	key := edgeKey{from: fromID, to: toID}
	if _, exists := g.edges[key]; exists {
		return nil
	}

	g.edges[key] = &Edge{From: fromID, To: toID}
	g.edgeOrder = append(g.edgeOrder, key)
	g.deps[toID][fromID] = struct{}{}
	g.dependents[fromID][toID] = struct{}{}
	return nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	return n, ok
}

// Edge returns the edge for the ordered pair (fromID, toID).
func (g *Graph) Edge(fromID, toID string) (*Edge, bool) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	e, ok := g.edges[edgeKey{from: fromID, to: toID}]
	return e, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	edges := make([]Edge, 0, len(g.edgeOrder))
	for _, key := range g.edgeOrder {
		edges = append(edges, *g.edges[key])
	}
	return edges
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.nodes)
}

// Dependencies returns the sorted IDs of the nodes with an edge into id.
func (g *Graph) Dependencies(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	set, ok := g.deps[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedKeys(set), nil
}

// Dependents returns the sorted IDs of the nodes id has an edge to.
func (g *Graph) Dependents(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	set, ok := g.dependents[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedKeys(set), nil
}

// Children returns the nodes whose Parent is id, in insertion order.
func (g *Graph) Children(id string) []*Node {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	var children []*Node
	for _, nodeID := range g.order {
		if n := g.nodes[nodeID]; n.Parent == id {
			children = append(children, n)
		}
	}
	return children
}

// DetectCycles checks the graph for any cycles. It returns a non-nil error
// if a cycle is found, indicating the first node involved in the detected cycle.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// Classic depth-first search with three sets of nodes:
	// permanent: fully visited and not part of a cycle.
	// temporary: currently on the recursion stack.
	// unvisited: all other nodes.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(id string) error
	visit = func(id string) error {
		if permanent[id] {
			return nil
		}
		if temporary[id] {
			return fmt.Errorf("cycle detected involving node '%s'", id)
		}

		temporary[id] = true
		for _, next := range sortedKeys(g.dependents[id]) {
			if err := visit(next); err != nil {
				return err
			}
		}
		delete(temporary, id)
		permanent[id] = true
		return nil
	}

	for _, id := range g.order {
		if !permanent[id] {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// HasStyle reports whether the node carries the given visual tag.
func (n *Node) HasStyle(tag string) bool {
	for _, s := range n.Style {
		if s == tag {
			return true
		}
	}
	return false
}

// StyleClass returns the visual tags joined with spaces.
func (n *Node) StyleClass() string {
	return strings.Join(n.Style, " ")
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
