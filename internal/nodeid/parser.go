// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse creates a new Address by parsing its canonical string representation.
func Parse(rawID string) (*Address, error) {
	if rawID == "" {
		return nil, fmt.Errorf("identifier cannot be empty")
	}

	kind, key, found := strings.Cut(rawID, separator)
	if !found {
		return nil, fmt.Errorf("identifier %q has no kind prefix", rawID)
	}
	if _, ok := knownKinds[Kind(kind)]; !ok {
		return nil, fmt.Errorf("unknown identifier kind %q", kind)
	}
	if key == "" {
		return nil, fmt.Errorf("identifier %q has an empty key", rawID)
	}

	if Kind(kind) == KindReplicate {
		if _, err := strconv.Atoi(key); err != nil {
			return nil, fmt.Errorf("invalid replicate number %q: %w", key, err)
		}
	}

	return &Address{Kind: Kind(kind), Key: key}, nil
}

// ReplicateNumber returns the replicate number of a `rep:` address.
func (a *Address) ReplicateNumber() (int, bool) {
	if a == nil || a.Kind != KindReplicate {
		return 0, false
	}
	n, err := strconv.Atoi(a.Key)
	if err != nil {
		return 0, false
	}
	return n, true
}
