// Package sink provides output format renderers for computed layouts.
//
// # Overview
//
// A "sink" transforms a [document.Layout] into a final output format:
//
//   - JSON: Layout data export for external tools and caching
//   - SVG: Boxes for every cell, header and footer
//   - Text: A character-grid sketch for terminals and logs
//
// # SVG Output
//
// [RenderSVG] draws each block as a rectangle. Headers and footers are tinted
// so sections are easy to tell apart, and blocks are painted in z-order:
//
//	svg := sink.RenderSVG(l, sink.WithLabels(), sink.WithScale(2))
//
// # Text Output
//
// [RenderText] maps the layout onto a grid of the given number of columns,
// drawing each block as a box of ASCII characters:
//
//	txt := sink.RenderText(l, sink.WithColumns(60))
//
// # Adding New Formats
//
// To add a new output format:
//
//  1. Create a renderer function: func RenderFoo(l document.Layout, opts ...Option) ([]byte, error)
//  2. Access l.Blocks for positioned blocks and l.Width/l.Height for the frame
//  3. Register it in pkg/pipeline/render.go
//
// [document.Layout]: github.com/matzehuels/sectionflow/pkg/document.Layout
package sink
