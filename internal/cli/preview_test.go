package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/sectionflow/pkg/document"
	"github.com/matzehuels/sectionflow/pkg/layout"
	"github.com/matzehuels/sectionflow/pkg/pipeline"
)

func newTestPreview(t *testing.T, width float64, follow bool) *previewModel {
	t.Helper()
	doc, err := document.Parse([]byte(fixtureYAML), document.FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	opts := pipeline.Options{Width: width}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	return newPreviewModel(doc, "", opts, follow)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m *previewModel, msg tea.Msg) *previewModel {
	next, _ := m.Update(msg)
	return next.(*previewModel)
}

func cellX(t *testing.T, m *previewModel, id string) float64 {
	t.Helper()
	out := document.Export(m.doc, m.engine.Snapshot())
	for _, b := range out.Blocks {
		if b.ID == id {
			return b.X
		}
	}
	t.Fatalf("block %q not found", id)
	return 0
}

func TestPreviewInitialLayout(t *testing.T) {
	m := newTestPreview(t, 230, false)

	if m.passes != 1 {
		t.Errorf("passes = %d, want 1", m.passes)
	}
	if m.height != 64 {
		t.Errorf("height = %v, want 64", m.height)
	}
	if m.engine.State() != layout.Fresh {
		t.Errorf("state = %v, want fresh", m.engine.State())
	}
	view := m.View()
	for _, want := range []string{"preview", "fixture", "width", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPreviewFollowsTerminalWidth(t *testing.T) {
	m := newTestPreview(t, 230, true)

	m = update(m, tea.WindowSizeMsg{Width: 50, Height: 30})
	if got := m.engine.Width(); got != 50*defaultPointsPerColumn {
		t.Fatalf("width = %v, want %v", got, 50*defaultPointsPerColumn)
	}
	// 200pt no longer fits both cells on one row.
	if m.height != 104 {
		t.Errorf("height = %v, want 104", m.height)
	}
	if m.passes != 2 {
		t.Errorf("passes = %d, want 2", m.passes)
	}

	// Same size again does not recompute.
	m = update(m, tea.WindowSizeMsg{Width: 50, Height: 30})
	if m.passes != 2 {
		t.Errorf("passes after identical resize = %d, want 2", m.passes)
	}
}

func TestPreviewFixedWidthIgnoresTerminal(t *testing.T) {
	m := newTestPreview(t, 230, false)
	m = update(m, tea.WindowSizeMsg{Width: 50, Height: 30})
	if got := m.engine.Width(); got != 230 {
		t.Errorf("width = %v, want 230", got)
	}
	if m.passes != 1 {
		t.Errorf("passes = %d, want 1", m.passes)
	}
}

func TestPreviewKeys(t *testing.T) {
	tests := []struct {
		name  string
		keys  []string
		width float64
		rtl   bool
		align layout.Alignment
	}{
		{"widen", []string{"+"}, 230 + previewWidthStep, false, layout.AlignLeading},
		{"narrow", []string{"-", "-"}, 230 - 2*previewWidthStep, false, layout.AlignLeading},
		{"rtl toggle", []string{"r"}, 230, true, layout.AlignLeading},
		{"rtl twice", []string{"r", "r"}, 230, false, layout.AlignLeading},
		{"align center", []string{"a"}, 230, false, layout.AlignCenter},
		{"align wraps", []string{"a", "a", "a"}, 230, false, layout.AlignLeading},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestPreview(t, 230, true)
			for _, k := range tt.keys {
				m = update(m, key(k))
			}
			if got := m.engine.Width(); got != tt.width {
				t.Errorf("width = %v, want %v", got, tt.width)
			}
			if got := m.engine.RTL(); got != tt.rtl {
				t.Errorf("rtl = %v, want %v", got, tt.rtl)
			}
			if got := m.engine.Alignment(); got != tt.align {
				t.Errorf("alignment = %v, want %v", got, tt.align)
			}
			if m.engine.State() != layout.Fresh {
				t.Errorf("state = %v, want fresh after update", m.engine.State())
			}
		})
	}
}

func TestPreviewWidthKeysStopFollowing(t *testing.T) {
	m := newTestPreview(t, 230, true)
	m = update(m, key("+"))
	if m.follow {
		t.Fatal("follow still on after +")
	}
	m = update(m, tea.WindowSizeMsg{Width: 50, Height: 30})
	if got := m.engine.Width(); got != 230+previewWidthStep {
		t.Errorf("width = %v, want %v", got, 230+previewWidthStep)
	}
	m = update(m, key("f"))
	if got := m.engine.Width(); got != 50*defaultPointsPerColumn {
		t.Errorf("width after f = %v, want %v", got, 50*defaultPointsPerColumn)
	}
}

func TestPreviewNarrowStopsAtMinimum(t *testing.T) {
	m := newTestPreview(t, previewMinWidth+4, false)
	m = update(m, key("-"))
	if got := m.engine.Width(); got != previewMinWidth {
		t.Errorf("width = %v, want %v", got, previewMinWidth)
	}
}

func TestPreviewRTLMirrors(t *testing.T) {
	m := newTestPreview(t, 230, false)
	if x := cellX(t, m, "a"); x != 0 {
		t.Fatalf("a.X = %v, want 0", x)
	}
	m = update(m, key("r"))
	if x := cellX(t, m, "a"); x != 130 {
		t.Errorf("a.X after rtl = %v, want 130", x)
	}
	if !strings.Contains(m.status(), "rtl") {
		t.Errorf("status missing rtl: %s", m.status())
	}
}

func TestPreviewQuit(t *testing.T) {
	m := newTestPreview(t, 230, false)
	for _, k := range []string{"q", "esc"} {
		msg := key(k)
		if k == "esc" {
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s: no command returned", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command is not quit", k)
		}
	}
}

func TestPreviewScroll(t *testing.T) {
	m := newTestPreview(t, 230, false)
	m = update(m, tea.WindowSizeMsg{Width: 40, Height: previewChrome + 2})
	if len(m.lines) <= 2 {
		t.Fatalf("expected more than 2 body lines, got %d", len(m.lines))
	}

	m = update(m, key("down"))
	if m.offset != 1 {
		t.Errorf("offset = %d, want 1", m.offset)
	}
	for i := 0; i < 100; i++ {
		m = update(m, key("down"))
	}
	if want := len(m.lines) - m.bodyRows(); m.offset != want {
		t.Errorf("offset = %d, want clamp at %d", m.offset, want)
	}
	m = update(m, key("g"))
	if m.offset != 0 {
		t.Errorf("offset after g = %d, want 0", m.offset)
	}
	m = update(m, key("up"))
	if m.offset != 0 {
		t.Errorf("offset after up at top = %d, want 0", m.offset)
	}
}

func TestPreviewReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.yaml")
	if err := os.WriteFile(path, []byte(fixtureYAML), 0644); err != nil {
		t.Fatal(err)
	}
	doc, err := document.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	opts := pipeline.Options{Width: 230}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	m := newPreviewModel(doc, path, opts, false)

	grown := fixtureYAML + "      - {id: c, width: 100, height: 40}\n"
	if err := os.WriteFile(path, []byte(grown), 0644); err != nil {
		t.Fatal(err)
	}
	m = update(m, key("ctrl+r"))
	if m.err != nil {
		t.Fatalf("reload: %v", m.err)
	}
	if m.height != 104 {
		t.Errorf("height after reload = %v, want 104", m.height)
	}

	if err := os.WriteFile(path, []byte("sections: [{mode: spiral}]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	m = update(m, key("ctrl+r"))
	if m.err == nil {
		t.Fatal("expected reload error")
	}
	if m.height != 104 {
		t.Errorf("failed reload changed the layout: height = %v", m.height)
	}
	if !strings.Contains(m.View(), "reload failed") {
		t.Error("view does not report the reload failure")
	}
}

func TestNextAlignment(t *testing.T) {
	tests := []struct {
		in, want layout.Alignment
	}{
		{layout.AlignLeading, layout.AlignCenter},
		{layout.AlignCenter, layout.AlignTrailing},
		{layout.AlignTrailing, layout.AlignLeading},
	}
	for _, tt := range tests {
		if got := nextAlignment(tt.in); got != tt.want {
			t.Errorf("nextAlignment(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
