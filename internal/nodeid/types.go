// internal/nodeid/types.go
package nodeid

// Kind is the prefix of an identifier that names the node type.
type Kind string

const (
	KindFile      Kind = "file"
	KindStep      Kind = "step"
	KindError     Kind = "error"
	KindReplicate Kind = "rep"
	KindQC        Kind = "qc"
	KindCoalesced Kind = "coalesced"
)

// knownKinds is used by the parser to reject foreign prefixes.
var knownKinds = map[Kind]struct{}{
	KindFile:      {},
	KindStep:      {},
	KindError:     {},
	KindReplicate: {},
	KindQC:        {},
	KindCoalesced: {},
}

// Address is the structured representation of a node identifier.
type Address struct {
	Kind Kind
	Key  string
}
