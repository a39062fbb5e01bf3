package document

import (
	"encoding/json"
	"fmt"
	"os"

	serrors "github.com/matzehuels/sectionflow/pkg/errors"
	"github.com/matzehuels/sectionflow/pkg/layout"
)

// =============================================================================
// Layout - Computed Output
// =============================================================================

// Layout is the serialization format of a computed layout.
//
// Blocks are in engine order: for each section its header, its cells by
// item index, then its footer. Coordinates are container-local with Y
// growing downward; RTL layouts are already mirrored.
type Layout struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`

	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	RTL       bool    `json:"rtl,omitempty"`
	Alignment string  `json:"alignment"`

	Sections []SectionInfo `json:"sections,omitempty"`
	Blocks   []Block       `json:"blocks"`
	Warnings []Warning     `json:"warnings,omitempty"`
}

// SectionInfo is the resolved configuration of one section.
type SectionInfo struct {
	ID      string `json:"id,omitempty"`
	Mode    string `json:"mode"`
	Columns int    `json:"columns"`
}

// Block is one positioned cell, header or footer.
type Block struct {
	ID      string  `json:"id,omitempty"`
	Label   string  `json:"label,omitempty"`
	Kind    string  `json:"kind"`
	Section int     `json:"section"`
	Item    int     `json:"item"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Z       int     `json:"z"`
}

// Warning is a recovered problem reported by the engine.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Right returns the x-coordinate of the right edge.
func (b Block) Right() float64 { return b.X + b.Width }

// Bottom returns the y-coordinate of the bottom edge.
func (b Block) Bottom() float64 { return b.Y + b.Height }

// IsCell reports whether the block is an item cell.
func (b Block) IsCell() bool { return b.Kind == layout.KindCell.String() }

// Export converts an engine snapshot into a serializable layout, attaching
// item IDs and labels from the document.
func Export(d *Document, s *layout.Snapshot) Layout {
	out := Layout{
		Name:      d.Name,
		Width:     s.ContentSize.Width,
		Height:    s.ContentSize.Height,
		RTL:       s.RTL,
		Alignment: s.Alignment.String(),
		Blocks:    make([]Block, 0, s.Len()),
	}

	for i, cfg := range s.Sections {
		info := SectionInfo{Mode: cfg.Mode.String(), Columns: cfg.Columns}
		if i < len(d.Sections) {
			info.ID = d.Sections[i].ID
		}
		out.Sections = append(out.Sections, info)
	}

	for _, a := range s.Attributes() {
		b := Block{
			Kind:    a.Kind.String(),
			Section: a.Ref.Section,
			Item:    a.Ref.Item,
			X:       a.Frame.X,
			Y:       a.Frame.Y,
			Width:   a.Frame.Width,
			Height:  a.Frame.Height,
			Z:       a.ZOrder,
		}
		b.ID, b.Label = d.blockNames(a)
		out.Blocks = append(out.Blocks, b)
	}

	for _, w := range s.Warnings {
		out.Warnings = append(out.Warnings, Warning{
			Code:    string(serrors.GetCode(w)),
			Message: serrors.UserMessage(w),
		})
	}
	return out
}

func (d *Document) blockNames(a layout.Attribute) (id, label string) {
	if a.Kind != layout.KindCell {
		if a.Ref.Section < len(d.Sections) && d.Sections[a.Ref.Section].ID != "" {
			return a.Kind.String() + ":" + d.Sections[a.Ref.Section].ID, ""
		}
		return "", ""
	}
	it, ok := d.item(a.Ref)
	if !ok {
		return "", ""
	}
	return it.ID, it.Label
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and checks that
// every block is well formed.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Width < 0 || l.Height < 0 {
		return Layout{}, fmt.Errorf("layout size must not be negative")
	}
	for i, b := range l.Blocks {
		if _, err := layout.ParseKind(b.Kind); err != nil {
			return Layout{}, fmt.Errorf("block %d: %w", i, err)
		}
		if b.Width < 0 || b.Height < 0 {
			return Layout{}, fmt.Errorf("block %d: negative size", i)
		}
	}
	if l.Alignment == "" {
		l.Alignment = layout.AlignLeading.String()
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
