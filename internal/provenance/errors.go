package provenance

import (
	"errors"
	"fmt"
	"strings"
)

// NoGraphableRelationshipsError reports that no file of the selected
// assembly/annotation takes part in a derivation relationship. It is an
// expected condition: callers show an explanation instead of a diagram.
type NoGraphableRelationshipsError struct {
	// Reason is a human-readable explanation.
	Reason string
	// FileIDs lists the files that matched the filter but were islands.
	FileIDs []string
}

// Error implements the error interface.
func (e *NoGraphableRelationshipsError) Error() string {
	if len(e.FileIDs) == 0 {
		return "no graph: " + e.Reason
	}
	return fmt.Sprintf("no graph: %s (files: %s)", e.Reason, strings.Join(e.FileIDs, ", "))
}

// IsNoGraphableRelationships reports whether err is, or wraps, a
// *NoGraphableRelationshipsError.
func IsNoGraphableRelationships(err error) bool {
	var target *NoGraphableRelationshipsError
	return errors.As(err, &target)
}
