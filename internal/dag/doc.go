// Package dag is the generic graph container the provenance assembler
// populates. It knows nothing about files or analysis steps: it stores nodes
// keyed by their string identifier and directed edges between them, and it
// answers the queries a diagram renderer needs (lookup by id, lookup by
// ordered pair, full enumeration in insertion order).
//
// Insertion is idempotent for both nodes and edges, so callers may add the
// same node or edge as often as their input implies it without creating
// duplicates.
package dag
