package layout

import (
	"math"

	serrors "github.com/matzehuels/sectionflow/pkg/errors"
)

// DefaultColumns is the engine-global waterfall column count used when no
// tier supplies a column count or a minimum item width.
const DefaultColumns = 2

// SectionOverrides is one tier of optional section configuration.
// A nil field means "not supplied by this tier".
type SectionOverrides struct {
	Mode             *Mode
	Insets           *Insets
	InteritemSpacing *float64
	LineSpacing      *float64
	ColumnCount      *int
	MinItemWidth     *float64
	HeaderHeight     *float64
	FooterHeight     *float64
}

// IsZero reports whether the tier supplies no field at all.
func (o SectionOverrides) IsZero() bool {
	return o == SectionOverrides{}
}

// SectionConfig is a fully resolved section configuration.
// Columns is always >= 1 in a config returned by [Resolver.Resolve].
type SectionConfig struct {
	Mode             Mode
	Insets           Insets
	InteritemSpacing float64
	LineSpacing      float64
	Columns          int
	MinItemWidth     float64
	HeaderHeight     float64
	FooterHeight     float64
}

// DefaultSectionConfig returns the built-in global default tier: a flow
// section without insets, spacing or supplementary blocks.
func DefaultSectionConfig() SectionConfig {
	return SectionConfig{Mode: ModeFlow, Columns: DefaultColumns}
}

// SectionConfigProvider supplies the per-section (delegate) tier.
type SectionConfigProvider interface {
	SectionOverrides(section int) SectionOverrides
}

// SectionConfigFunc adapts a function to [SectionConfigProvider].
type SectionConfigFunc func(section int) SectionOverrides

// SectionOverrides implements [SectionConfigProvider].
func (f SectionConfigFunc) SectionOverrides(section int) SectionOverrides { return f(section) }

// Resolver resolves section configuration field by field from three tiers:
// the host override, the per-section delegate and the global defaults.
// Defaults.Columns is the engine-global column count.
type Resolver struct {
	Host     SectionOverrides
	Delegate SectionConfigProvider
	Defaults SectionConfig
}

// Resolve returns the effective configuration of a section laid out in a
// container of the given width, together with any configuration warnings.
// It never fails: degenerate values are coerced to safe ones.
func (r Resolver) Resolve(section int, containerWidth float64) (SectionConfig, []error) {
	return r.resolve(section, containerWidth, r.delegateTier(section))
}

func (r Resolver) delegateTier(section int) SectionOverrides {
	if r.Delegate == nil {
		return SectionOverrides{}
	}
	return r.Delegate.SectionOverrides(section)
}

func (r Resolver) resolve(section int, containerWidth float64, delegate SectionOverrides) (SectionConfig, []error) {
	host := r.Host
	def := r.Defaults

	var warnings []error
	warnf := func(code serrors.Code, format string, args ...any) {
		warnings = append(warnings, serrors.New(code, format, args...))
	}

	cfg := SectionConfig{
		Mode:             pick(host.Mode, delegate.Mode, def.Mode),
		Insets:           pick(host.Insets, delegate.Insets, def.Insets),
		InteritemSpacing: pick(host.InteritemSpacing, delegate.InteritemSpacing, def.InteritemSpacing),
		LineSpacing:      pick(host.LineSpacing, delegate.LineSpacing, def.LineSpacing),
		MinItemWidth:     pick(host.MinItemWidth, delegate.MinItemWidth, def.MinItemWidth),
		HeaderHeight:     pick(host.HeaderHeight, delegate.HeaderHeight, def.HeaderHeight),
		FooterHeight:     pick(host.FooterHeight, delegate.FooterHeight, def.FooterHeight),
	}

	if sanitizeConfig(&cfg) {
		warnf(serrors.ErrCodeInvalidConfig, "section %d: negative insets, spacing or block heights coerced to 0", section)
	}

	avail := containerWidth - cfg.Insets.Horizontal()

	switch {
	case avail <= 0:
		cfg.Columns = 1
		warnf(serrors.ErrCodeInvalidWidth, "section %d: available width %v is not positive, using a single column", section, avail)
	case host.ColumnCount != nil || delegate.ColumnCount != nil:
		n := pick(host.ColumnCount, delegate.ColumnCount, 0)
		if n < 1 {
			warnf(serrors.ErrCodeInvalidColumns, "section %d: column count %d coerced to 1", section, n)
			n = 1
		}
		cfg.Columns = n
	case cfg.MinItemWidth != 0:
		if cfg.MinItemWidth < 0 {
			warnf(serrors.ErrCodeInvalidConfig, "section %d: min item width %v ignored", section, cfg.MinItemWidth)
			cfg.MinItemWidth = 0
			cfg.Columns = globalColumns(def.Columns, section, warnf)
			break
		}
		cfg.Columns = deriveColumns(avail, cfg.InteritemSpacing, cfg.MinItemWidth)
	default:
		cfg.Columns = globalColumns(def.Columns, section, warnf)
	}

	return cfg, warnings
}

// AvailableWidth returns the width left for items once the horizontal insets
// are taken out of the container width.
func (c SectionConfig) AvailableWidth(containerWidth float64) float64 {
	return containerWidth - c.Insets.Horizontal()
}

// maxDerivedColumns bounds a column count derived from MinItemWidth.
const maxDerivedColumns = math.MaxInt32

// deriveColumns fits as many columns of at least minItemWidth as the
// available width allows, never fewer than one.
func deriveColumns(avail, spacing, minItemWidth float64) int {
	q := math.Floor((avail + spacing) / (minItemWidth + spacing))
	switch {
	case !(q < maxDerivedColumns):
		return maxDerivedColumns
	case q < 1:
		return 1
	}
	return int(q)
}

func globalColumns(n, section int, warnf func(serrors.Code, string, ...any)) int {
	if n == 0 {
		return DefaultColumns
	}
	if n < 0 {
		warnf(serrors.ErrCodeInvalidColumns, "section %d: global column count %d coerced to 1", section, n)
		return 1
	}
	return n
}

// sanitizeConfig clamps negative lengths to zero and reports whether it did.
func sanitizeConfig(c *SectionConfig) bool {
	fields := []*float64{
		&c.Insets.Top, &c.Insets.Left, &c.Insets.Bottom, &c.Insets.Right,
		&c.InteritemSpacing, &c.LineSpacing, &c.HeaderHeight, &c.FooterHeight,
	}
	changed := false
	for _, f := range fields {
		if v := nonNegative(*f); v != *f {
			*f = v
			changed = true
		}
	}
	return changed
}

// pick returns the first supplied tier value, falling back to def.
func pick[T any](host, delegate *T, def T) T {
	if host != nil {
		return *host
	}
	if delegate != nil {
		return *delegate
	}
	return def
}

// Ptr returns a pointer to v. It keeps override literals short:
//
//	layout.SectionOverrides{ColumnCount: layout.Ptr(3)}
func Ptr[T any](v T) *T { return &v }
