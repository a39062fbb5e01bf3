package layout

import (
	"io"

	"github.com/charmbracelet/log"
)

// Option configures an [Engine].
type Option func(*Engine)

// WithWidth sets the initial container width.
func WithWidth(w float64) Option { return func(e *Engine) { e.width = w } }

// WithRTL enables right-to-left mirroring.
func WithRTL(rtl bool) Option { return func(e *Engine) { e.rtl = rtl } }

// WithAlignment sets the flow row alignment.
func WithAlignment(a Alignment) Option { return func(e *Engine) { e.align = a } }

// WithSectionConfig sets the per-section delegate tier.
func WithSectionConfig(p SectionConfigProvider) Option {
	return func(e *Engine) { e.resolver.Delegate = p }
}

// WithOverrides sets the host tier, which wins over the delegate for every
// field it supplies.
func WithOverrides(o SectionOverrides) Option { return func(e *Engine) { e.resolver.Host = o } }

// WithDefaults replaces the global default tier.
func WithDefaults(c SectionConfig) Option { return func(e *Engine) { e.resolver.Defaults = c } }

// WithDefaultColumns sets the engine-global waterfall column count.
func WithDefaultColumns(n int) Option { return func(e *Engine) { e.resolver.Defaults.Columns = n } }

// WithLogger sets the logger used for pass timings and warnings.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
