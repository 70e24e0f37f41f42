// Package export writes assembled provenance graphs in machine-readable
// (JSON, YAML) and Graphviz DOT form, and renders the dataset's file table
// with the rows placed in the graph marked.
package export
