package layout

import (
	"fmt"
	"strings"
)

// ItemRef identifies one placeable unit by section and item index.
type ItemRef struct {
	Section int
	Item    int
}

// String returns the ref as "section.item".
func (r ItemRef) String() string { return fmt.Sprintf("%d.%d", r.Section, r.Item) }

// Kind distinguishes item cells from supplementary blocks.
type Kind int

const (
	KindCell Kind = iota
	KindFooter
	KindHeader
)

// ZOrder returns the paint order of the kind: headers above footers above cells.
func (k Kind) ZOrder() int {
	switch k {
	case KindHeader:
		return 2
	case KindFooter:
		return 1
	default:
		return 0
	}
}

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindFooter:
		return "footer"
	default:
		return "cell"
	}
}

// ParseKind converts "cell", "header" or "footer" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cell", "":
		return KindCell, nil
	case "header":
		return KindHeader, nil
	case "footer":
		return KindFooter, nil
	}
	return KindCell, fmt.Errorf("unknown kind %q", s)
}

// Mode selects the placement strategy of a section.
type Mode int

const (
	// ModeFlow packs items into rows that wrap at the available width.
	ModeFlow Mode = iota
	// ModeWaterfall drops each item into the currently shortest column.
	ModeWaterfall
)

func (m Mode) String() string {
	if m == ModeWaterfall {
		return "waterfall"
	}
	return "flow"
}

// ParseMode converts "flow" or "waterfall" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flow", "":
		return ModeFlow, nil
	case "waterfall", "masonry":
		return ModeWaterfall, nil
	}
	return ModeFlow, fmt.Errorf("unknown mode %q (must be flow or waterfall)", s)
}

// Alignment positions each completed flow row horizontally.
type Alignment int

const (
	AlignLeading Alignment = iota
	AlignCenter
	AlignTrailing
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignTrailing:
		return "trailing"
	default:
		return "leading"
	}
}

// ParseAlignment converts "leading", "center" or "trailing" to an Alignment.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "leading", "":
		return AlignLeading, nil
	case "center", "centre":
		return AlignCenter, nil
	case "trailing":
		return AlignTrailing, nil
	}
	return AlignLeading, fmt.Errorf("unknown alignment %q (must be leading, center or trailing)", s)
}

// Attribute is the computed placement of one cell, header or footer.
// Headers and footers carry Item == 0.
type Attribute struct {
	Ref    ItemRef
	Kind   Kind
	Frame  Frame
	ZOrder int
}

func newAttribute(ref ItemRef, kind Kind, f Frame) Attribute {
	if kind != KindCell {
		ref.Item = 0
	}
	return Attribute{Ref: ref, Kind: kind, Frame: f, ZOrder: kind.ZOrder()}
}
