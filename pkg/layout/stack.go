package layout

import (
	serrors "github.com/matzehuels/sectionflow/pkg/errors"
)

// DataSource reports how many sections and items there are.
type DataSource interface {
	SectionCount() int
	ItemCount(section int) int
}

// passInput is everything one recompute pass reads.
type passInput struct {
	width    float64
	rtl      bool
	align    Alignment
	resolver Resolver
	source   DataSource
	sizes    SizeProvider
}

// passOutput is everything one recompute pass produces.
type passOutput struct {
	attrs    []Attribute
	height   float64
	configs  []SectionConfig
	warnings []error

	defaulted []int // sections for which neither host nor delegate supplied a field
}

// stackSections walks the sections in index order, emitting for each its
// header, its items and its footer along a running y offset that never
// moves backwards. RTL mirroring is applied to the finished list.
func stackSections(in passInput) passOutput {
	var out passOutput
	if in.source == nil {
		return out
	}

	width := max(0, in.width)
	sections := in.source.SectionCount()
	if sections < 0 {
		out.warnings = append(out.warnings, serrors.New(serrors.ErrCodeInvalidConfig, "negative section count %d treated as 0", sections))
		sections = 0
	}
	out.configs = make([]SectionConfig, 0, sections)

	var y float64
	for s := 0; s < sections; s++ {
		delegate := in.resolver.delegateTier(s)
		if delegate.IsZero() && in.resolver.Host.IsZero() {
			out.defaulted = append(out.defaulted, s)
		}
		cfg, warns := in.resolver.resolve(s, width, delegate)
		out.warnings = append(out.warnings, warns...)
		out.configs = append(out.configs, cfg)

		blockWidth := max(0, width-cfg.Insets.Horizontal())

		if cfg.HeaderHeight > 0 {
			f := Frame{X: cfg.Insets.Left, Y: y, Width: blockWidth, Height: cfg.HeaderHeight}
			out.attrs = append(out.attrs, newAttribute(ItemRef{Section: s}, KindHeader, f))
			y += cfg.HeaderHeight
		}

		count := in.source.ItemCount(s)
		if count < 0 {
			out.warnings = append(out.warnings, serrors.New(serrors.ErrCodeInvalidConfig, "section %d: negative item count %d treated as 0", s, count))
			count = 0
		}

		p := SectionParams{
			Section:        s,
			Count:          count,
			OriginY:        y,
			ContainerWidth: width,
			Config:         cfg,
			Alignment:      in.align,
		}
		var placed Placement
		switch cfg.Mode {
		case ModeWaterfall:
			placed = PlaceWaterfall(p, in.sizes)
		default:
			placed = PlaceFlow(p, in.sizes)
		}
		for i, f := range placed.Frames {
			out.attrs = append(out.attrs, newAttribute(ItemRef{Section: s, Item: i}, KindCell, f))
		}
		y = max(y, placed.EndY)

		if cfg.FooterHeight > 0 {
			f := Frame{X: cfg.Insets.Left, Y: y, Width: blockWidth, Height: cfg.FooterHeight}
			out.attrs = append(out.attrs, newAttribute(ItemRef{Section: s}, KindFooter, f))
			y += cfg.FooterHeight
		}
	}

	if in.rtl {
		for i := range out.attrs {
			out.attrs[i].Frame = out.attrs[i].Frame.Mirror(width)
		}
	}
	out.height = y
	return out
}
