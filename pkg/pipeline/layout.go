package pipeline

import (
	"github.com/google/uuid"

	"github.com/matzehuels/sectionflow/pkg/document"
	"github.com/matzehuels/sectionflow/pkg/layout"
)

// =============================================================================
// Layout Generation
// =============================================================================

// NewEngine builds a layout engine for a document. Option values win over
// the document: Spacing is applied as a host override for every section and
// Columns replaces the document's default column count.
//
// Options must have passed [Options.ValidateForLayout].
func NewEngine(doc *document.Document, opts Options) *layout.Engine {
	align, _ := layout.ParseAlignment(opts.Alignment)
	engOpts := []layout.Option{
		layout.WithSectionConfig(doc),
		layout.WithWidth(opts.Width),
		layout.WithRTL(opts.RTL),
		layout.WithAlignment(align),
		layout.WithDefaultColumns(opts.EffectiveColumns(doc)),
		layout.WithLogger(opts.Logger),
	}
	if opts.Spacing != nil {
		engOpts = append(engOpts, layout.WithOverrides(layout.SectionOverrides{
			InteritemSpacing: opts.Spacing,
			LineSpacing:      opts.Spacing,
		}))
	}
	return layout.New(doc, doc, engOpts...)
}

// GenerateLayout runs one layout pass over the document and exports the
// result with a fresh layout ID.
func GenerateLayout(doc *document.Document, opts Options) document.Layout {
	eng := NewEngine(doc, opts)
	out := document.Export(doc, eng.Prepare())
	out.ID = uuid.NewString()
	return out
}
