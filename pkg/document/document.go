package document

import (
	"github.com/matzehuels/sectionflow/pkg/layout"
)

// =============================================================================
// Document - Layout Input
// =============================================================================

// Document is an ordered list of sections.
type Document struct {
	Name string `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`

	// DefaultColumns is the engine-global waterfall column count. 0 keeps
	// the engine default.
	DefaultColumns int `json:"default_columns,omitempty" toml:"default_columns,omitempty" yaml:"default_columns,omitempty"`

	Sections []Section `json:"sections" toml:"sections" yaml:"sections"`
}

// Section is one independently configured group of items. Nil fields are
// not supplied by the document.
type Section struct {
	ID   string `json:"id,omitempty" toml:"id,omitempty" yaml:"id,omitempty"`
	Mode string `json:"mode,omitempty" toml:"mode,omitempty" yaml:"mode,omitempty"`

	Insets           *Insets  `json:"insets,omitempty" toml:"insets,omitempty" yaml:"insets,omitempty"`
	InteritemSpacing *float64 `json:"interitem_spacing,omitempty" toml:"interitem_spacing,omitempty" yaml:"interitem_spacing,omitempty"`
	LineSpacing      *float64 `json:"line_spacing,omitempty" toml:"line_spacing,omitempty" yaml:"line_spacing,omitempty"`
	Columns          *int     `json:"columns,omitempty" toml:"columns,omitempty" yaml:"columns,omitempty"`
	MinItemWidth     *float64 `json:"min_item_width,omitempty" toml:"min_item_width,omitempty" yaml:"min_item_width,omitempty"`
	HeaderHeight     *float64 `json:"header_height,omitempty" toml:"header_height,omitempty" yaml:"header_height,omitempty"`
	FooterHeight     *float64 `json:"footer_height,omitempty" toml:"footer_height,omitempty" yaml:"footer_height,omitempty"`

	Items []Item `json:"items,omitempty" toml:"items,omitempty" yaml:"items,omitempty"`
}

// Insets are section edge paddings.
type Insets struct {
	Top    float64 `json:"top,omitempty" toml:"top,omitempty" yaml:"top,omitempty"`
	Left   float64 `json:"left,omitempty" toml:"left,omitempty" yaml:"left,omitempty"`
	Bottom float64 `json:"bottom,omitempty" toml:"bottom,omitempty" yaml:"bottom,omitempty"`
	Right  float64 `json:"right,omitempty" toml:"right,omitempty" yaml:"right,omitempty"`
}

// Item is one placeable unit.
type Item struct {
	ID          string  `json:"id,omitempty" toml:"id,omitempty" yaml:"id,omitempty"`
	Label       string  `json:"label,omitempty" toml:"label,omitempty" yaml:"label,omitempty"`
	Width       float64 `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty"`
	Height      float64 `json:"height,omitempty" toml:"height,omitempty" yaml:"height,omitempty"`
	AspectRatio float64 `json:"aspect_ratio,omitempty" toml:"aspect_ratio,omitempty" yaml:"aspect_ratio,omitempty"`
}

// TotalItems returns the number of items across all sections.
func (d *Document) TotalItems() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Items)
	}
	return n
}

// =============================================================================
// Engine Providers
// =============================================================================

// SectionCount implements [layout.DataSource].
func (d *Document) SectionCount() int { return len(d.Sections) }

// ItemCount implements [layout.DataSource].
func (d *Document) ItemCount(section int) int {
	if section < 0 || section >= len(d.Sections) {
		return 0
	}
	return len(d.Sections[section].Items)
}

// ItemSize implements [layout.SizeProvider].
func (d *Document) ItemSize(ref layout.ItemRef, availableWidth float64) layout.Size {
	it, ok := d.item(ref)
	if !ok {
		return layout.Size{}
	}
	w := it.Width
	if w == 0 || d.Sections[ref.Section].mode() == layout.ModeWaterfall {
		w = availableWidth
	}
	h := it.Height
	if it.AspectRatio > 0 {
		h = w / it.AspectRatio
	}
	return layout.Size{Width: w, Height: h}
}

// SectionOverrides implements [layout.SectionConfigProvider].
func (d *Document) SectionOverrides(section int) layout.SectionOverrides {
	if section < 0 || section >= len(d.Sections) {
		return layout.SectionOverrides{}
	}
	s := d.Sections[section]
	o := layout.SectionOverrides{
		InteritemSpacing: s.InteritemSpacing,
		LineSpacing:      s.LineSpacing,
		ColumnCount:      s.Columns,
		MinItemWidth:     s.MinItemWidth,
		HeaderHeight:     s.HeaderHeight,
		FooterHeight:     s.FooterHeight,
	}
	if s.Mode != "" {
		if m, err := layout.ParseMode(s.Mode); err == nil {
			o.Mode = &m
		}
	}
	if s.Insets != nil {
		o.Insets = &layout.Insets{Top: s.Insets.Top, Left: s.Insets.Left, Bottom: s.Insets.Bottom, Right: s.Insets.Right}
	}
	return o
}

func (d *Document) item(ref layout.ItemRef) (Item, bool) {
	if ref.Section < 0 || ref.Section >= len(d.Sections) {
		return Item{}, false
	}
	items := d.Sections[ref.Section].Items
	if ref.Item < 0 || ref.Item >= len(items) {
		return Item{}, false
	}
	return items[ref.Item], true
}

func (s Section) mode() layout.Mode {
	m, _ := layout.ParseMode(s.Mode)
	return m
}

var (
	_ layout.DataSource            = (*Document)(nil)
	_ layout.SizeProvider          = (*Document)(nil)
	_ layout.SectionConfigProvider = (*Document)(nil)
)
