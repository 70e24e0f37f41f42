// internal/nodeid/address.go
package nodeid

import (
	"strconv"
)

// separator splits the kind from the key. Keys may contain further separators.
const separator = ":"

// String serializes the Address into its canonical representation.
func (a *Address) String() string {
	if a == nil {
		return ""
	}
	return string(a.Kind) + separator + a.Key
}

// Equal checks for equality between two Address pointers.
func (a *Address) Equal(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.Kind == other.Kind && a.Key == other.Key
}

// File returns the identifier of the node drawn for a file record, including
// contributing and missing stubs.
func File(fileID string) string {
	return (&Address{Kind: KindFile, Key: fileID}).String()
}

// Step returns the identifier of an analysis step node. derivedKey is the
// sorted, comma-joined list of the file's derivation sources, so files derived
// from the same set by the same step share one node.
func Step(derivedKey, stepID string) string {
	return (&Address{Kind: KindStep, Key: derivedKey + stepID}).String()
}

// ErrorStep returns the identifier of the placeholder step drawn for a file
// that has derivation sources but no step run.
func ErrorStep(derivedKey string) string {
	return (&Address{Kind: KindError, Key: derivedKey}).String()
}

// Replicate returns the identifier of a replicate container node.
func Replicate(number int) string {
	return (&Address{Kind: KindReplicate, Key: strconv.Itoa(number)}).String()
}

// QC returns the identifier of a quality metric sub-node.
func QC(metricID, fileID string) string {
	return (&Address{Kind: KindQC, Key: metricID + fileID}).String()
}

// Coalesced returns the identifier of a coalesced contributing-files node.
func Coalesced(groupHash string) string {
	return (&Address{Kind: KindCoalesced, Key: groupHash}).String()
}
