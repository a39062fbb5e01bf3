package cli

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sectionflow/pkg/document"
	"github.com/matzehuels/sectionflow/pkg/layout"
	"github.com/matzehuels/sectionflow/pkg/pipeline"
	"github.com/matzehuels/sectionflow/pkg/sink"
)

const (
	// defaultPointsPerColumn converts terminal columns into container
	// points while the preview follows the terminal width.
	defaultPointsPerColumn = 4.0

	previewWidthStep = 16.0
	previewMinWidth  = 32.0

	// previewChrome is the number of terminal rows used by the title,
	// status and help lines.
	previewChrome = 4
)

// =============================================================================
// previewModel - Interactive layout preview
// =============================================================================

// previewModel re-lays out a document as the terminal or the requested
// width changes. It owns the engine; every key press is applied through
// the engine's invalidation calls and the next View recomputes lazily.
type previewModel struct {
	doc    *document.Document
	path   string // reloaded on ctrl+r; empty for the sample
	engine *layout.Engine

	follow       bool    // container width tracks the terminal width
	pointsPerCol float64 // only used while following
	labels       bool

	cols, rows int // terminal size
	offset     int // first visible body line

	passes   int
	lastSnap *layout.Snapshot
	lines    []string
	height   float64
	warnings int
	err      error
}

func newPreviewModel(doc *document.Document, path string, opts pipeline.Options, follow bool) *previewModel {
	m := &previewModel{
		doc:          doc,
		path:         path,
		engine:       pipeline.NewEngine(doc, opts),
		follow:       follow,
		pointsPerCol: defaultPointsPerColumn,
		labels:       true,
		cols:         sink.DefaultColumns,
		rows:         24,
	}
	m.refresh()
	return m
}

func (m *previewModel) Init() tea.Cmd {
	return nil
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=", "right", "l":
			m.follow = false
			m.engine.NotifyWidthChanged(m.engine.Width() + previewWidthStep)
		case "-", "_", "left", "h":
			m.follow = false
			m.engine.NotifyWidthChanged(max(m.engine.Width()-previewWidthStep, previewMinWidth))
		case "f":
			m.follow = true
			m.followTerminal()
		case "r":
			m.engine.SetRTL(!m.engine.RTL())
		case "a":
			m.engine.SetAlignment(nextAlignment(m.engine.Alignment()))
		case "t":
			m.labels = !m.labels
		case "ctrl+r":
			m.reload()
		case "up", "k":
			m.scroll(-1)
		case "down", "j":
			m.scroll(1)
		case "pgup":
			m.scroll(-m.bodyRows())
		case "pgdown", " ":
			m.scroll(m.bodyRows())
		case "home", "g":
			m.offset = 0
		}
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		if m.follow {
			m.followTerminal()
		}
	}
	m.refresh()
	return m, nil
}

func (m *previewModel) View() string {
	var b strings.Builder

	title := StyleTitle.Render(appName + " preview")
	if m.doc.Name != "" {
		title += " " + StyleDim.Render(m.doc.Name)
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(m.status())
	b.WriteString("\n")

	end := min(m.offset+m.bodyRows(), len(m.lines))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.lines[i])
		b.WriteString("\n")
	}
	for i := end - m.offset; i < m.bodyRows(); i++ {
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(StyleWarning.Render("reload failed: " + m.err.Error()))
	} else {
		b.WriteString(StyleDim.Render("+/- width  f follow  r rtl  a align  t labels  ↑/↓ scroll  ctrl+r reload  q quit"))
	}
	return b.String()
}

func (m *previewModel) status() string {
	dir := "ltr"
	if m.engine.RTL() {
		dir = "rtl"
	}
	width := formatNum(m.engine.Width())
	if m.follow {
		width += " (follow)"
	}
	parts := []string{
		"width " + StyleHighlight.Render(width),
		dir,
		m.engine.Alignment().String(),
		fmt.Sprintf("height %s", formatNum(m.height)),
		plural(m.passes, "pass"),
	}
	if m.warnings > 0 {
		parts = append(parts, StyleWarning.Render(plural(m.warnings, "warning")))
	}
	return StyleDim.Render(strings.Join(parts, " · "))
}

// refresh brings the engine up to date and re-renders the body lines.
func (m *previewModel) refresh() {
	snap := m.engine.Prepare()
	if snap != m.lastSnap {
		m.passes++
		m.lastSnap = snap
	}

	out := document.Export(m.doc, snap)
	m.height = out.Height
	m.warnings = len(out.Warnings)

	opts := []sink.Option{sink.WithColumns(max(m.cols, 1))}
	if m.labels {
		opts = append(opts, sink.WithLabels())
	}
	text := strings.TrimSuffix(string(sink.RenderText(out, opts...)), "\n")
	m.lines = nil
	if text != "" {
		m.lines = strings.Split(text, "\n")
	}
	m.scroll(0)
}

func (m *previewModel) followTerminal() {
	if m.cols > 0 {
		m.engine.NotifyWidthChanged(max(float64(m.cols)*m.pointsPerCol, previewMinWidth))
	}
}

// reload re-reads the document file in place and tells the engine its data
// changed.
func (m *previewModel) reload() {
	if m.path == "" {
		return
	}
	fresh, err := document.ReadFile(m.path)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	*m.doc = *fresh
	m.engine.NotifyDataChanged()
}

func (m *previewModel) bodyRows() int {
	return max(m.rows-previewChrome, 1)
}

func (m *previewModel) scroll(delta int) {
	m.offset += delta
	if limit := len(m.lines) - m.bodyRows(); m.offset > limit {
		m.offset = limit
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func nextAlignment(a layout.Alignment) layout.Alignment {
	switch a {
	case layout.AlignLeading:
		return layout.AlignCenter
	case layout.AlignCenter:
		return layout.AlignTrailing
	default:
		return layout.AlignLeading
	}
}

// =============================================================================
// Command
// =============================================================================

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		spacing      float64
		pointsPerCol float64
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "preview [document]",
		Short: "Preview a layout interactively in the terminal",
		Long: `Preview a layout interactively in the terminal.

The document is drawn as a character grid. By default the container width
follows the terminal (--points-per-column points per column); +/- set an
explicit width, r toggles right-to-left, a cycles the flow row alignment.
Without an argument the built-in sample document is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("spacing") {
				opts.Spacing = &spacing
			}
			if pointsPerCol <= 0 {
				return errors.New("--points-per-column must be positive")
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			follow := !cmd.Flags().Changed("width")
			return c.runPreview(cmd, path, opts, follow, pointsPerCol)
		},
	}

	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "fixed container width in points (default: follow the terminal)")
	cmd.Flags().BoolVar(&opts.RTL, "rtl", false, "start right-to-left")
	cmd.Flags().StringVar(&opts.Alignment, "alignment", opts.Alignment, "flow row alignment: leading, center, trailing")
	registerAlignmentCompletion(cmd)
	cmd.Flags().IntVar(&opts.Columns, "columns", 0, "waterfall column count (default: document, then 2)")
	cmd.Flags().Float64Var(&spacing, "spacing", 0, "item and line spacing for every section, overriding the document")
	cmd.Flags().Float64Var(&pointsPerCol, "points-per-column", defaultPointsPerColumn, "container points per terminal column while following")

	return cmd
}

func (c *CLI) runPreview(cmd *cobra.Command, path string, opts pipeline.Options, follow bool, pointsPerCol float64) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	// Engine logs would draw over the alternate screen.
	opts.Logger = nil
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	doc, err := loadDocument(ctx, path)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	m := newPreviewModel(doc, path, opts, follow)
	m.pointsPerCol = pointsPerCol
	logger.Debug("starting preview", "document", doc.Name, "sections", doc.SectionCount(), "follow", follow)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
