package sink

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/sectionflow/pkg/document"
)

// cellAspect is how many horizontal units one grid row spans; terminal
// characters are roughly twice as tall as they are wide.
const cellAspect = 2

// Text grid bounds. Wider requests are narrowed to MaxTextColumns and
// taller layouts are cut off after MaxTextRows rows.
const (
	MaxTextColumns = 1000
	MaxTextRows    = 5000
)

// RenderText sketches the layout on a character grid. Cells are drawn with
// '-' borders, headers and footers with '='. A block narrower or shorter than
// two characters is filled with '#'.
func RenderText(l document.Layout, opts ...Option) []byte {
	r := newRenderer(opts...)
	if !finitePositive(l.Width) || !finitePositive(l.Height) {
		return nil
	}

	cols := min(r.columns, MaxTextColumns)
	sx := l.Width / float64(cols)
	sy := sx * cellAspect
	rows := int(max(1, min(math.Ceil(l.Height/sy), MaxTextRows)))
	g := newGrid(cols, rows)

	blocks := slices.Clone(l.Blocks)
	slices.SortStableFunc(blocks, func(a, b document.Block) int {
		return cmp.Compare(a.Z, b.Z)
	})
	for _, b := range blocks {
		if b.Width <= 0 || b.Height <= 0 || b.Y/sy >= float64(rows) {
			continue
		}
		x0, x1 := span(b.X, b.Right(), sx, cols)
		y0, y1 := span(b.Y, b.Bottom(), sy, rows)
		edge := '-'
		if !b.IsCell() {
			edge = '='
		}
		g.box(x0, y0, x1, y1, edge)
		if r.labels {
			label := b.Label
			if label == "" {
				label = b.ID
			}
			g.label(x0, y0, x1, y1, label)
		}
	}
	return []byte(g.String())
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// span maps [lo, hi) in layout units to an inclusive grid range.
func span(lo, hi, scale float64, limit int) (int, int) {
	a := int(math.Floor(lo/scale + 1e-9))
	b := int(math.Ceil(hi/scale-1e-9)) - 1
	a = min(max(a, 0), limit-1)
	b = min(max(b, a), limit-1)
	return a, b
}

type grid [][]rune

func newGrid(cols, rows int) grid {
	g := make(grid, rows)
	for i := range g {
		g[i] = []rune(strings.Repeat(" ", cols))
	}
	return g
}

func (g grid) box(x0, y0, x1, y1 int, edge rune) {
	if x1 == x0 || y1 == y0 {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				g[y][x] = '#'
			}
		}
		return
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			switch {
			case (y == y0 || y == y1) && (x == x0 || x == x1):
				g[y][x] = '+'
			case y == y0 || y == y1:
				g[y][x] = edge
			case x == x0 || x == x1:
				g[y][x] = '|'
			default:
				g[y][x] = ' '
			}
		}
	}
}

func (g grid) label(x0, y0, x1, y1 int, s string) {
	room := x1 - x0 - 1
	if y1-y0 < 2 || room < 1 || s == "" {
		return
	}
	r := []rune(s)
	if len(r) > room {
		r = r[:room]
	}
	copy(g[y0+1][x0+1:], r)
}

func (g grid) String() string {
	var sb strings.Builder
	for _, row := range g {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
