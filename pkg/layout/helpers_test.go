package layout

import "testing"

// counts is a DataSource with one entry per section.
type counts []int

func (c counts) SectionCount() int         { return len(c) }
func (c counts) ItemCount(section int) int { return c[section] }

// table answers sizes from a per-section list, ignoring the width.
type table [][]Size

func (t table) ItemSize(ref ItemRef, _ float64) Size { return t[ref.Section][ref.Item] }

func widths(height float64, ws ...float64) []Size {
	out := make([]Size, len(ws))
	for i, w := range ws {
		out[i] = Size{Width: w, Height: height}
	}
	return out
}

func heights(width float64, hs ...float64) []Size {
	out := make([]Size, len(hs))
	for i, h := range hs {
		out[i] = Size{Width: width, Height: h}
	}
	return out
}

// countingSizes wraps a provider and counts invocations.
type countingSizes struct {
	SizeProvider
	calls  int
	widths []float64
}

func (c *countingSizes) ItemSize(ref ItemRef, w float64) Size {
	c.calls++
	c.widths = append(c.widths, w)
	return c.SizeProvider.ItemSize(ref, w)
}

func assertFrame(t *testing.T, name string, got, want Frame) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %+v, want %+v", name, got, want)
	}
}
