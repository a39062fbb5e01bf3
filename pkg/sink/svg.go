package sink

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"slices"

	"github.com/matzehuels/sectionflow/pkg/document"
)

const blockCSS = `
    .block { stroke: #333; stroke-width: 1; }
    .cell { fill: #e8eef7; }
    .header { fill: #c9d6ea; }
    .footer { fill: #dde3ea; }
    .block:hover { stroke-width: 2; }
    .block-text { font-family: ui-sans-serif, system-ui, sans-serif; fill: #222; }`

const (
	fontHeightRatio = 0.5
	fontCharWidth   = 0.55
	fontSizeMin     = 6.0
	fontSizeMax     = 16.0
)

// RenderSVG draws every block of the layout as a rectangle, in paint order.
func RenderSVG(l document.Layout, opts ...Option) []byte {
	r := newRenderer(opts...)

	blocks := slices.Clone(l.Blocks)
	slices.SortStableFunc(blocks, func(a, b document.Block) int {
		return cmp.Compare(a.Z, b.Z)
	})

	w, h := l.Width*r.scale, l.Height*r.scale
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, w, h)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", blockCSS)
	if l.RTL {
		buf.WriteString(`  <g direction="rtl">` + "\n")
	} else {
		buf.WriteString("  <g>\n")
	}

	for i, b := range blocks {
		renderBlock(&buf, i, b)
	}
	if r.labels {
		for _, b := range blocks {
			renderText(&buf, b)
		}
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func renderBlock(buf *bytes.Buffer, i int, b document.Block) {
	id := b.ID
	if id == "" {
		id = fmt.Sprintf("%s-%d-%d-%d", b.Kind, b.Section, b.Item, i)
	}
	fmt.Fprintf(buf, `    <rect id="block-%s" class="block %s" x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
		escapeXML(id), b.Kind, b.X, b.Y, b.Width, b.Height)
}

func renderText(buf *bytes.Buffer, b document.Block) {
	label := b.Label
	if label == "" {
		label = b.ID
	}
	if label == "" || b.Width <= 0 || b.Height <= 0 {
		return
	}
	size := fontSize(b.Width, b.Height, len(label))
	label = truncateLabel(label, b.Width, size)
	fmt.Fprintf(buf, `    <text class="block-text" x="%.2f" y="%.2f" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		b.X+b.Width/2, b.Y+b.Height/2, size, escapeXML(label))
}

func fontSize(w, h float64, n int) float64 {
	byHeight := h * fontHeightRatio
	byWidth := w / (float64(max(1, n)) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, byHeight, byWidth))
}

func truncateLabel(label string, width, size float64) string {
	maxChars := max(3, int(width/(size*fontCharWidth)))
	if len(label) <= maxChars {
		return label
	}
	return label[:maxChars-2] + ".."
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
