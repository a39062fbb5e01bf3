package layout

// PlaceWaterfall places the items of a waterfall section into
// Config.Columns columns of equal width. Each item, in index order, extends
// the column with the smallest current height; on ties the lowest column
// index wins. Item heights are queried with the shared column width, so a
// change of width always yields a fresh query. Frames are in LTR coordinates.
func PlaceWaterfall(p SectionParams, sizes SizeProvider) Placement {
	cfg := p.Config
	cols := max(1, cfg.Columns)
	avail := max(0, cfg.AvailableWidth(p.ContainerWidth))
	spacing := cfg.InteritemSpacing
	itemWidth := max(0, (avail-float64(cols-1)*spacing)/float64(cols))

	// Columns past the item count never win the shortest-column scan, so
	// only the ones that can receive an item are tracked.
	startY := p.OriginY + cfg.Insets.Top
	heights := make([]float64, min(cols, max(1, p.Count)))
	for i := range heights {
		heights[i] = startY
	}

	out := Placement{Frames: make([]Frame, p.Count), ColumnHeights: heights}
	if p.Count == 0 {
		out.EndY = startY + cfg.Insets.Bottom
		return out
	}

	for i := 0; i < p.Count; i++ {
		col := shortestColumn(heights)
		s, _ := sizes.ItemSize(ItemRef{Section: p.Section, Item: i}, itemWidth).clamped()

		out.Frames[i] = Frame{
			X:      cfg.Insets.Left + float64(col)*(itemWidth+spacing),
			Y:      heights[col],
			Width:  itemWidth,
			Height: s.Height,
		}
		heights[col] += s.Height + cfg.LineSpacing
	}

	tallest := heights[0]
	for _, h := range heights[1:] {
		tallest = max(tallest, h)
	}
	out.EndY = tallest - cfg.LineSpacing + cfg.Insets.Bottom
	return out
}

// shortestColumn returns the first index holding the minimum height.
func shortestColumn(heights []float64) int {
	best := 0
	for i := 1; i < len(heights); i++ {
		if heights[i] < heights[best] {
			best = i
		}
	}
	return best
}
