package document

import "fmt"

// Sample returns a small two-section feed: a flow section of tags under a
// header and a two-column waterfall of photos with a footer. It backs the
// preview command when no file is given.
func Sample() *Document {
	f := func(v float64) *float64 { return &v }
	cols := 2

	tags := Section{
		ID:               "tags",
		Insets:           &Insets{Top: 8, Left: 12, Bottom: 8, Right: 12},
		InteritemSpacing: f(8),
		LineSpacing:      f(8),
		HeaderHeight:     f(32),
	}
	for i, w := range []float64{64, 88, 52, 120, 72, 96, 60, 110} {
		tags.Items = append(tags.Items, Item{
			ID:     fmt.Sprintf("tag-%d", i+1),
			Label:  fmt.Sprintf("tag %d", i+1),
			Width:  w,
			Height: 28,
		})
	}

	photos := Section{
		ID:               "photos",
		Mode:             "waterfall",
		Columns:          &cols,
		Insets:           &Insets{Left: 12, Right: 12},
		InteritemSpacing: f(10),
		LineSpacing:      f(10),
		FooterHeight:     f(48),
	}
	for i, r := range []float64{0.75, 1.5, 1, 0.6, 1.33, 0.8, 1.2} {
		photos.Items = append(photos.Items, Item{
			ID:          fmt.Sprintf("photo-%d", i+1),
			Label:       fmt.Sprintf("photo %d", i+1),
			AspectRatio: r,
		})
	}

	return &Document{Name: "sample", Sections: []Section{tags, photos}}
}
