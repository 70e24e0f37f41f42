package provenance

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

// DefaultMinCoalesce is the smallest group of contributing files drawn as a
// single coalesced node.
const DefaultMinCoalesce = 5

// CoalescingGroup is a set of contributing files derived from by exactly the
// same matching files.
type CoalescingGroup struct {
	// Key is the hash of Signature and the key of the coalesced node ID.
	Key string
	// Signature is the sorted, comma-joined IDs of the dependent files.
	Signature string
	// Members holds the sorted contributing file IDs.
	Members []string
}

// coalescing is the outcome of grouping the used contributing files.
type coalescing struct {
	// groups are the materialized groups, sorted by key.
	groups []*CoalescingGroup
	// memberOf maps a coalesced contributing file to its group.
	memberOf map[string]*CoalescingGroup
	// individual lists the contributing files still drawn one by one.
	individual []string
}

// HashSignature returns the stable group key of a dependent-file signature.
func HashSignature(signature string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(signature))
	return fmt.Sprintf("%016x", h.Sum64())
}

// coalesce groups used contributing files by the set of matching files
// deriving from them and materializes every group of at least minSize.
func coalesce(used []string, matchingDependents map[string][]string, minSize int, memo *Memo) *coalescing {
	byKey := make(map[string]*CoalescingGroup)
	for _, id := range used {
		signature := dependentSignature(matchingDependents[id])
		key := memo.GroupKey(signature)
		group, ok := byKey[key]
		if !ok {
			group = &CoalescingGroup{Key: key, Signature: signature}
			byKey[key] = group
		}
		group.Members = append(group.Members, id)
	}

	result := &coalescing{memberOf: make(map[string]*CoalescingGroup)}
	for _, group := range byKey {
		if len(group.Members) < minSize {
			continue
		}
		sort.Strings(group.Members)
		result.groups = append(result.groups, group)
		for _, id := range group.Members {
			result.memberOf[id] = group
		}
	}
	sort.Slice(result.groups, func(i, j int) bool {
		return result.groups[i].Key < result.groups[j].Key
	})

	for _, id := range used {
		if _, absorbed := result.memberOf[id]; !absorbed {
			result.individual = append(result.individual, id)
		}
	}
	return result
}

func dependentSignature(dependents []string) string {
	sorted := append([]string(nil), dependents...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
