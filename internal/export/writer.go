package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vk/provgraph/internal/dag"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Write.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatDOT  = "dot"
)

// Formats lists the supported output formats.
var Formats = []string{FormatJSON, FormatYAML, FormatDOT}

// Write renders g to w in the given format.
func Write(w io.Writer, g *dag.Graph, format string) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, g)
	case FormatYAML:
		return WriteYAML(w, g)
	case FormatDOT:
		return WriteDOT(w, g)
	default:
		return fmt.Errorf("unsupported output format %q: must be one of %s", format, strings.Join(Formats, ", "))
	}
}

// WriteJSON writes g as an indented JSON document.
func WriteJSON(w io.Writer, g *dag.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(g)); err != nil {
		return fmt.Errorf("failed to encode graph as JSON: %w", err)
	}
	return nil
}

// WriteYAML writes g as a YAML document.
func WriteYAML(w io.Writer, g *dag.Graph) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(g)); err != nil {
		return fmt.Errorf("failed to encode graph as YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode graph as YAML: %w", err)
	}
	return nil
}

// WriteDOT writes g as a Graphviz digraph. Replicate containers become
// clusters holding their child nodes; quality metric sub-nodes are listed in
// the owning node's label.
func WriteDOT(w io.Writer, g *dag.Graph) error {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", dotQuote(g.Name))
	b.WriteString("  rankdir=TB;\n")

	containers := make(map[string]bool)
	for _, n := range g.Nodes() {
		if n.Kind == dag.ReplicateNode {
			containers[n.ID] = true
		}
	}

	for _, n := range g.Nodes() {
		switch {
		case n.Kind == dag.ReplicateNode:
			fmt.Fprintf(&b, "  subgraph %s {\n", dotQuote("cluster_"+n.ID))
			fmt.Fprintf(&b, "    label=%s;\n", dotQuote(n.Label))
			for _, child := range g.Children(n.ID) {
				writeDOTNode(&b, "    ", child)
			}
			b.WriteString("  }\n")
		case n.Parent != "" && containers[n.Parent]:
			// Written inside its cluster.
		default:
			writeDOTNode(&b, "  ", n)
		}
	}

	for _, e := range g.Edges() {
		fmt.Fprintf(&b, "  %s -> %s;\n", dotQuote(e.From), dotQuote(e.To))
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeDOTNode(b *strings.Builder, indent string, n *dag.Node) {
	label := n.Label
	if len(n.QC) > 0 {
		abbrs := make([]string, 0, len(n.QC))
		for _, sub := range n.QC {
			abbrs = append(abbrs, sub.Label)
		}
		label += "\n[" + strings.Join(abbrs, " ") + "]"
	}

	attrs := map[string]string{
		"label": label,
		"shape": dotShape(n.Kind),
	}
	if class := n.StyleClass(); class != "" {
		attrs["class"] = class
	}
	if n.HasStyle("error") {
		attrs["style"] = "dashed"
	}
	if n.HasStyle("active") {
		attrs["penwidth"] = "3"
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+dotQuote(attrs[k]))
	}
	fmt.Fprintf(b, "%s%s [%s];\n", indent, dotQuote(n.ID), strings.Join(parts, ", "))
}

func dotShape(k dag.Kind) string {
	switch k {
	case dag.StepNode:
		return "ellipse"
	case dag.CoalescedNode:
		return "box3d"
	case dag.MissingNode:
		return "note"
	default:
		return "box"
	}
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}
