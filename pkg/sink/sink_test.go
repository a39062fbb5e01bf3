package sink

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/sectionflow/pkg/document"
)

func twoBlocks() document.Layout {
	return document.Layout{
		Width:     10,
		Height:    8,
		Alignment: "leading",
		Blocks: []document.Block{
			{ID: "a", Label: "ab", Kind: "cell", Width: 5, Height: 8},
			{ID: "b", Kind: "cell", Item: 1, X: 5, Width: 5, Height: 4},
		},
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(twoBlocks())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if !bytes.HasSuffix(data, []byte("}\n")) {
		t.Error("RenderJSON() output should end with a newline")
	}
	got, err := document.UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout() error: %v", err)
	}
	if len(got.Blocks) != 2 || got.Width != 10 {
		t.Errorf("round trip = %+v", got)
	}
}

func TestRenderText(t *testing.T) {
	got := string(RenderText(twoBlocks(), WithColumns(10), WithLabels()))
	want := strings.Join([]string{
		"+---++---+",
		"|ab |+---+",
		"|   |",
		"+---+",
	}, "\n") + "\n"
	if got != want {
		t.Errorf("RenderText() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderTextSupplementary(t *testing.T) {
	l := document.Layout{
		Width:  10,
		Height: 4,
		Blocks: []document.Block{
			{Kind: "header", Width: 10, Height: 4},
		},
	}
	got := string(RenderText(l, WithColumns(10)))
	want := "+========+\n+========+\n"
	if got != want {
		t.Errorf("RenderText() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderTextThinBlock(t *testing.T) {
	l := document.Layout{
		Width:  10,
		Height: 2,
		Blocks: []document.Block{{Kind: "cell", X: 2, Width: 3, Height: 2}},
	}
	if got, want := string(RenderText(l, WithColumns(10))), "  ###\n"; got != want {
		t.Errorf("RenderText() = %q, want %q", got, want)
	}
}

func TestRenderTextEmpty(t *testing.T) {
	if got := RenderText(document.Layout{Width: 100}); got != nil {
		t.Errorf("RenderText(zero height) = %q, want nil", got)
	}
}

func TestRenderTextBoundsGrid(t *testing.T) {
	tests := []struct {
		name     string
		layout   document.Layout
		columns  int
		wantCols int
		wantRows int
		skipped  bool // the last block lies below the grid
	}{
		{
			name:     "tall layout cut off",
			layout:   document.Layout{Width: 375, Height: 1e15, Blocks: []document.Block{{Kind: "cell", Width: 375, Height: 1e15}}},
			columns:  10,
			wantCols: 10,
			wantRows: MaxTextRows,
		},
		{
			name:     "wide request narrowed",
			layout:   document.Layout{Width: 1000, Height: 20, Blocks: []document.Block{{Kind: "cell", Width: 1000, Height: 20}}},
			columns:  1 << 40,
			wantCols: MaxTextColumns,
			wantRows: 10,
		},
		{
			name: "blocks below the cut are skipped",
			layout: document.Layout{Width: 10, Height: 1e9, Blocks: []document.Block{
				{Kind: "cell", Width: 10, Height: 4},
				{Kind: "cell", Y: 1e8, Width: 10, Height: 4},
			}},
			columns:  10,
			wantCols: 10,
			wantRows: MaxTextRows,
			skipped:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := strings.TrimSuffix(string(RenderText(tt.layout, WithColumns(tt.columns))), "\n")
			lines := strings.Split(out, "\n")
			if len(lines) != tt.wantRows {
				t.Errorf("rows = %d, want %d", len(lines), tt.wantRows)
			}
			if got := len([]rune(lines[0])); got != tt.wantCols {
				t.Errorf("first row width = %d, want %d", got, tt.wantCols)
			}
			if n := strings.Count(out, "+"); n != 4 {
				t.Errorf("drew %d corners, want one box", n)
			}
			if last := lines[len(lines)-1]; tt.skipped && last != "" {
				t.Errorf("last row = %q, want it empty", last)
			}
		})
	}
}

func TestRenderTextNonFinite(t *testing.T) {
	for _, l := range []document.Layout{
		{Width: math.Inf(1), Height: 10},
		{Width: 10, Height: math.Inf(1)},
		{Width: math.NaN(), Height: 10},
	} {
		if got := RenderText(l); got != nil {
			t.Errorf("RenderText(%v x %v) = %q, want nil", l.Width, l.Height, got)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	l := twoBlocks()
	l.Blocks = append([]document.Block{{ID: "header:s", Kind: "header", Width: 10, Height: 2, Z: 2}}, l.Blocks...)

	svg := string(RenderSVG(l, WithScale(2)))

	for _, want := range []string{
		`viewBox="0 0 10.0 8.0" width="20" height="16"`,
		`id="block-a" class="block cell"`,
		`id="block-header:s" class="block header"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() missing %q", want)
		}
	}
	if strings.Index(svg, `block-header:s`) < strings.Index(svg, `block-b`) {
		t.Error("header should be painted after cells")
	}
	if strings.Contains(svg, "<text") {
		t.Error("labels should be off by default")
	}
}

func TestRenderSVGLabels(t *testing.T) {
	l := document.Layout{
		Width:  200,
		Height: 40,
		Blocks: []document.Block{
			{ID: "x", Label: "Tom & Jerry", Kind: "cell", Width: 200, Height: 40},
			{ID: "unlabeled", Kind: "cell", Width: 0, Height: 0},
		},
	}
	svg := string(RenderSVG(l, WithLabels()))
	if !strings.Contains(svg, ">Tom &amp; Jerry</text>") {
		t.Errorf("RenderSVG() should escape labels:\n%s", svg)
	}
	if strings.Count(svg, "<text") != 1 {
		t.Error("zero-sized blocks should not get labels")
	}
}

func TestFontSize(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
		n    int
		want float64
	}{
		{"height bound", 1000, 20, 3, 10},
		{"clamped max", 1000, 1000, 3, fontSizeMax},
		{"clamped min", 5, 5, 20, fontSizeMin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fontSize(tt.w, tt.h, tt.n); got != tt.want {
				t.Errorf("fontSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTruncateLabel(t *testing.T) {
	if got := truncateLabel("abcdefghij", 1000, 10); got != "abcdefghij" {
		t.Errorf("truncateLabel() = %q", got)
	}
	// 30 / (10 * 0.55) = 5 chars
	if got := truncateLabel("abcdefghij", 30, 10); got != "abc.." {
		t.Errorf("truncateLabel() = %q, want %q", got, "abc..")
	}
}
