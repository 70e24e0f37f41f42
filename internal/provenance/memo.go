package provenance

import (
	"sort"
	"strings"

	"github.com/vk/provgraph/internal/model"
	"github.com/vk/provgraph/internal/nodeid"
)

// Memo caches keys derived from file records across assemblies of the same
// file list. Entries are keyed by stable identifiers only, so the cache must
// be reset whenever the file list is replaced.
type Memo struct {
	derivedKeys map[string]string
	qcIDs       map[qcKey]string
	groupKeys   map[string]string

	hits   int
	misses int
}

type qcKey struct {
	metricID string
	fileID   string
}

// NewMemo returns an empty cache.
func NewMemo() *Memo {
	m := &Memo{}
	m.Reset()
	return m
}

// Reset drops every cached entry.
func (m *Memo) Reset() {
	m.derivedKeys = make(map[string]string)
	m.qcIDs = make(map[qcKey]string)
	m.groupKeys = make(map[string]string)
	m.hits, m.misses = 0, 0
}

// DerivedKey returns the sorted, comma-joined derivation sources of f.
func (m *Memo) DerivedKey(f *model.File) string {
	if key, ok := m.derivedKeys[f.ID]; ok {
		m.hits++
		return key
	}
	m.misses++
	sorted := append([]string(nil), f.DerivedFrom...)
	sort.Strings(sorted)
	key := strings.Join(sorted, ",")
	m.derivedKeys[f.ID] = key
	return key
}

// QCID returns the node identifier of metric drawn on f.
func (m *Memo) QCID(metric *model.QualityMetric, f *model.File) string {
	k := qcKey{metricID: metric.ID, fileID: f.ID}
	if id, ok := m.qcIDs[k]; ok {
		m.hits++
		return id
	}
	m.misses++
	id := nodeid.QC(metric.ID, f.ID)
	m.qcIDs[k] = id
	return id
}

// GroupKey returns the hash of a dependent-file signature.
func (m *Memo) GroupKey(signature string) string {
	if key, ok := m.groupKeys[signature]; ok {
		m.hits++
		return key
	}
	m.misses++
	key := HashSignature(signature)
	m.groupKeys[signature] = key
	return key
}

// Stats returns the number of cache hits and misses since the last reset.
func (m *Memo) Stats() (hits, misses int) {
	return m.hits, m.misses
}
