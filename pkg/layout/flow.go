package layout

// SizeProvider yields the preferred size of an item for a given available
// width. Implementations must be pure for a fixed (ref, width) pair.
type SizeProvider interface {
	ItemSize(ref ItemRef, availableWidth float64) Size
}

// SizeFunc adapts a function to [SizeProvider].
type SizeFunc func(ref ItemRef, availableWidth float64) Size

// ItemSize implements [SizeProvider].
func (f SizeFunc) ItemSize(ref ItemRef, availableWidth float64) Size { return f(ref, availableWidth) }

// SectionParams describes one section's item region for a placer.
type SectionParams struct {
	Section        int
	Count          int
	OriginY        float64 // top of the item region, before the top inset
	ContainerWidth float64
	Config         SectionConfig
	Alignment      Alignment // flow rows only
}

// Row is a completed flow row: items [Start, End) placed at Y.
type Row struct {
	Start, End int
	Y, Height  float64
}

// Placement is the result of placing one section's items.
type Placement struct {
	Frames []Frame
	EndY   float64 // bottom of the item region, after the bottom inset

	Rows          []Row     // flow only
	ColumnHeights []float64 // waterfall only; columns that can hold an item, trailing line spacing included
}

// PlaceFlow places the items of a flow section as left-to-right rows that
// wrap once the next item would cross the right edge of the available width.
// An item that fits exactly stays on the row; an item wider than the
// available width gets a row of its own. Frames are in LTR coordinates.
func PlaceFlow(p SectionParams, sizes SizeProvider) Placement {
	cfg := p.Config
	avail := max(0, cfg.AvailableWidth(p.ContainerWidth))
	left := cfg.Insets.Left
	lineRight := left + avail

	out := Placement{Frames: make([]Frame, p.Count)}
	y := p.OriginY + cfg.Insets.Top
	x := left
	rowStart := 0
	var rowHeight float64

	finish := func(end int) {
		alignRow(out.Frames[rowStart:end], left, avail, cfg.InteritemSpacing, p.Alignment)
		out.Rows = append(out.Rows, Row{Start: rowStart, End: end, Y: y, Height: rowHeight})
	}

	for i := 0; i < p.Count; i++ {
		s, _ := sizes.ItemSize(ItemRef{Section: p.Section, Item: i}, avail).clamped()

		if i > rowStart && x+s.Width > lineRight {
			finish(i)
			y += rowHeight + cfg.LineSpacing
			x = left
			rowStart = i
			rowHeight = 0
		}

		out.Frames[i] = Frame{X: x, Y: y, Width: s.Width, Height: s.Height}
		x += s.Width + cfg.InteritemSpacing
		rowHeight = max(rowHeight, s.Height)
	}

	if p.Count > 0 {
		finish(p.Count)
		y += rowHeight
	}
	out.EndY = y + cfg.Insets.Bottom
	return out
}

// alignRow recomputes the x-positions of one row. The row total is the sum
// of item widths plus the spacing between them; an overflowing row keeps
// its leading edge at the inset.
func alignRow(row []Frame, left, avail, spacing float64, align Alignment) {
	if len(row) == 0 {
		return
	}
	total := spacing * float64(len(row)-1)
	for _, f := range row {
		total += f.Width
	}
	slack := max(0, avail-total)

	x := left
	switch align {
	case AlignCenter:
		x += slack / 2
	case AlignTrailing:
		x += slack
	}
	for i := range row {
		row[i].X = x
		x += row[i].Width + spacing
	}
}
