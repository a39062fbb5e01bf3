package layout

import (
	serrors "github.com/matzehuels/sectionflow/pkg/errors"
)

type sizeKey struct {
	ref   ItemRef
	width float64
}

type memoEntry struct {
	size    Size
	clamped bool
}

// sizeMemo caches provider answers per (ref, width). Entries used during a
// pass survive into the next one; anything not asked for is dropped when
// the pass ends, so a width change naturally evicts stale heights.
type sizeMemo struct {
	provider SizeProvider
	prev     map[sizeKey]memoEntry
	next     map[sizeKey]memoEntry

	queries  int // provider invocations during the current pass
	warnings []error
}

func newSizeMemo(p SizeProvider) *sizeMemo {
	return &sizeMemo{
		provider: p,
		next:     make(map[sizeKey]memoEntry),
	}
}

// ItemSize implements [SizeProvider].
func (m *sizeMemo) ItemSize(ref ItemRef, availableWidth float64) Size {
	k := sizeKey{ref: ref, width: availableWidth}
	e, ok := m.next[k]
	if !ok {
		next := m.next
		if e, ok = m.prev[k]; !ok {
			e = m.query(ref, availableWidth)
		}
		// A reset during the query discards this answer with the rest.
		next[k] = e
	}
	if e.clamped {
		m.warnings = append(m.warnings, serrors.New(serrors.ErrCodeNegativeSize,
			"item %s: negative size at width %v clamped to %vx%v", ref, availableWidth, e.size.Width, e.size.Height))
	}
	return e.size
}

func (m *sizeMemo) query(ref ItemRef, availableWidth float64) memoEntry {
	m.queries++
	if m.provider == nil {
		return memoEntry{}
	}
	s, clamped := m.provider.ItemSize(ref, availableWidth).clamped()
	return memoEntry{size: s, clamped: clamped}
}

// begin starts a pass.
func (m *sizeMemo) begin() {
	m.queries = 0
	m.warnings = nil
}

// commit ends a pass, keeping only the entries it used.
func (m *sizeMemo) commit() {
	m.prev = m.next
	m.next = make(map[sizeKey]memoEntry, len(m.prev))
}

// reset forgets every cached size.
func (m *sizeMemo) reset() {
	m.prev = nil
	m.next = make(map[sizeKey]memoEntry)
}
