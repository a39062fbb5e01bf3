// Package pipeline provides the layout pipeline shared by the CLI and the
// HTTP API.
//
// This package implements the complete parse → layout → render pipeline. By
// centralizing this logic, every entry point resolves defaults, derives
// cache keys and renders artifacts the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read and validate a document (JSON, TOML or YAML)
//  2. Layout: Run the layout engine and export a [document.Layout]
//  3. Render: Generate output in various formats (JSON, SVG, text)
//
// Layout and render results are cached through [cache.Cache].
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "feed.yaml",
//	    Width:   375,
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	doc, err := runner.Parse(ctx, opts)
//	l, err := runner.ComputeLayout(ctx, doc, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sectionflow/pkg/cache"
	"github.com/matzehuels/sectionflow/pkg/document"
	serrors "github.com/matzehuels/sectionflow/pkg/errors"
	"github.com/matzehuels/sectionflow/pkg/layout"
	"github.com/matzehuels/sectionflow/pkg/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default container width in points.
	DefaultWidth = 375.0

	// DefaultColumns is the waterfall column count used when neither the
	// options nor the document set one.
	DefaultColumns = layout.DefaultColumns

	// DefaultAlignment is the default flow row alignment.
	DefaultAlignment = "leading"

	// DefaultScale is the default SVG scale factor.
	DefaultScale = 1.0
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatText = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatSVG:  true,
	FormatText: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Path     string             `json:"-"` // document file, CLI only
	Document *document.Document `json:"document,omitempty"`
	Refresh  bool               `json:"refresh,omitempty"` // bypass cached results

	// Layout options
	Width     float64  `json:"width,omitempty"`
	RTL       bool     `json:"rtl,omitempty"`
	Alignment string   `json:"alignment,omitempty"`
	Columns   int      `json:"columns,omitempty"` // engine-global column count
	Spacing   *float64 `json:"spacing,omitempty"` // host override for item and line spacing

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Labels      bool     `json:"labels,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	TextColumns int      `json:"text_columns,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the parsed input.
	Document *document.Document

	// DocumentHash is the content hash of the document.
	DocumentHash string

	// Layout is the computed layout.
	Layout document.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SectionCount int
	ItemCount    int
	BlockCount   int
	WarningCount int
	ParseTime    time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return serrors.New(serrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, svg, txt)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAlignment checks that an alignment name is valid.
func ValidateAlignment(alignment string) error {
	if _, err := layout.ParseAlignment(alignment); err != nil {
		return serrors.Wrap(serrors.ErrCodeInvalidAlignment, err, "invalid alignment")
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks that a document source is given.
func (o *Options) ValidateForParse() error {
	if o.Document == nil {
		if o.Path == "" {
			return serrors.New(serrors.ErrCodeInvalidInput, "document or path is required")
		}
		if err := serrors.ValidatePath(o.Path); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Alignment == "" {
		o.Alignment = DefaultAlignment
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := serrors.ValidateWidth(o.Width); err != nil {
		return err
	}
	if err := serrors.ValidateColumns(o.Columns); err != nil {
		return err
	}
	if o.Spacing != nil && (math.IsNaN(*o.Spacing) || math.IsInf(*o.Spacing, 0)) {
		return serrors.New(serrors.ErrCodeInvalidInput, "spacing must be a finite number")
	}
	return ValidateAlignment(o.Alignment)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if o.Scale < 0 || math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0) {
		return serrors.New(serrors.ErrCodeInvalidInput, "scale must be a positive number")
	}
	if o.TextColumns < 0 || o.TextColumns > sink.MaxTextColumns {
		return serrors.New(serrors.ErrCodeInvalidInput, "text columns must be between 0 and %d: %d", sink.MaxTextColumns, o.TextColumns)
	}
	return ValidateFormats(o.Formats)
}

// EffectiveColumns returns the engine-global column count: the options
// value, then the document default, then [DefaultColumns].
func (o *Options) EffectiveColumns(doc *document.Document) int {
	switch {
	case o.Columns > 0:
		return o.Columns
	case doc != nil && doc.DefaultColumns > 0:
		return doc.DefaultColumns
	}
	return DefaultColumns
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(doc *document.Document) cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		Width:     o.Width,
		RTL:       o.RTL,
		Alignment: o.Alignment,
		Columns:   o.EffectiveColumns(doc),
	}
	if o.Spacing != nil {
		k.Spacing = fmt.Sprint(*o.Spacing)
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Labels:      o.Labels,
		Scale:       o.Scale,
		TextColumns: o.TextColumns,
	}
}
