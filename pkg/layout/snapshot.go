package layout

import "sort"

type lookupKey struct {
	ref  ItemRef
	kind Kind
}

// sectionSpan records where a section's attributes live in the list and
// the vertical band they cover. Spans are stacked, so their bands are
// sorted by Top.
type sectionSpan struct {
	start, end  int
	top, bottom float64
}

// Snapshot is the immutable result of one recompute pass. It is safe to
// share between goroutines; callers must not modify returned slices.
type Snapshot struct {
	Width       float64
	RTL         bool
	Alignment   Alignment
	ContentSize Size
	Sections    []SectionConfig
	Warnings    []error

	attrs  []Attribute
	spans  []sectionSpan
	lookup map[lookupKey]int
}

var emptySnapshot = &Snapshot{lookup: map[lookupKey]int{}}

func newSnapshot(in passInput, out passOutput) *Snapshot {
	s := &Snapshot{
		Width:       in.width,
		RTL:         in.rtl,
		Alignment:   in.align,
		ContentSize: Size{Width: max(0, in.width), Height: out.height},
		Sections:    out.configs,
		Warnings:    out.warnings,
		attrs:       out.attrs,
		lookup:      make(map[lookupKey]int, len(out.attrs)),
	}

	for i, a := range out.attrs {
		s.lookup[lookupKey{ref: a.Ref, kind: a.Kind}] = i

		n := len(s.spans)
		if n == 0 || out.attrs[s.spans[n-1].start].Ref.Section != a.Ref.Section {
			s.spans = append(s.spans, sectionSpan{start: i, end: i + 1, top: a.Frame.Y, bottom: a.Frame.Bottom()})
			continue
		}
		sp := &s.spans[n-1]
		sp.end = i + 1
		sp.top = min(sp.top, a.Frame.Y)
		sp.bottom = max(sp.bottom, a.Frame.Bottom())
	}
	return s
}

// Len returns the number of attributes.
func (s *Snapshot) Len() int { return len(s.attrs) }

// Attributes returns a copy of all attributes in section order: each
// section's header, then its cells by index, then its footer.
func (s *Snapshot) Attributes() []Attribute {
	out := make([]Attribute, len(s.attrs))
	copy(out, s.attrs)
	return out
}

// Attribute looks up a single attribute. Supplementary blocks are keyed by
// section alone; the item index of ref is ignored for them.
func (s *Snapshot) Attribute(ref ItemRef, kind Kind) (Attribute, bool) {
	if kind != KindCell {
		ref.Item = 0
	}
	i, ok := s.lookup[lookupKey{ref: ref, kind: kind}]
	if !ok {
		return Attribute{}, false
	}
	return s.attrs[i], true
}

// AttributesIn returns, in list order, the attributes whose frames
// intersect rect.
func (s *Snapshot) AttributesIn(rect Frame) []Attribute {
	// First span whose band reaches rect.Y.
	first := sort.Search(len(s.spans), func(i int) bool {
		return s.spans[i].bottom >= rect.Y
	})

	var out []Attribute
	for _, sp := range s.spans[first:] {
		if sp.top > rect.Bottom() {
			break
		}
		for _, a := range s.attrs[sp.start:sp.end] {
			if a.Frame.Intersects(rect) {
				out = append(out, a)
			}
		}
	}
	return out
}
