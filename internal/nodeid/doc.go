// internal/nodeid/doc.go

/*
Package nodeid provides a structured, type-safe representation for the node
identifiers of the provenance graph, based on the canonical format `kind:key`.

The kinds and their keys are:

	file:<file-id>
	step:<sorted-derivation-source-ids-joined><step-id>
	error:<sorted-derivation-source-ids-joined>
	rep:<replicate-number>
	qc:<metric-id><file-id>
	coalesced:<group-hash>

Identifiers are deterministic: building a graph twice from the same records
yields the same strings, so a consumer can keep a selected node across
re-renders. This package centralizes all formatting and parsing of the scheme.
*/
package nodeid
