package layout

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	serrors "github.com/matzehuels/sectionflow/pkg/errors"
	"github.com/matzehuels/sectionflow/pkg/observability"
)

// CacheState tells whether the current snapshot matches the engine inputs.
type CacheState int

const (
	// Stale means a recompute is needed before attributes can be trusted.
	Stale CacheState = iota
	// Fresh means the snapshot was computed for the current inputs.
	Fresh
)

func (s CacheState) String() string {
	if s == Fresh {
		return "fresh"
	}
	return "stale"
}

// Invalidation reasons reported to the observability layout hooks.
const (
	ReasonWidth     = "width"
	ReasonData      = "data"
	ReasonDirection = "direction"
	ReasonAlignment = "alignment"
)

// Engine computes and caches section layouts.
//
// An Engine is owned by a single goroutine (typically the host's layout
// or UI loop): all methods except [Engine.Snapshot] must be called from
// it. Recomputes are synchronous and run to completion. Other goroutines
// may read the last published result through [Engine.Snapshot], which is
// swapped in atomically once a pass has been fully built.
type Engine struct {
	source   DataSource
	memo     *sizeMemo
	resolver Resolver
	logger   *log.Logger

	width float64
	rtl   bool
	align Alignment

	state      CacheState
	generation uint64 // bumped on every invalidation
	computing  bool
	pending    bool

	snap atomic.Pointer[Snapshot]
}

// New creates an engine over the given data and size providers. The
// engine starts Stale with an empty snapshot; the first query computes.
func New(source DataSource, sizes SizeProvider, opts ...Option) *Engine {
	e := &Engine{
		source:   source,
		memo:     newSizeMemo(sizes),
		resolver: Resolver{Defaults: DefaultSectionConfig()},
		logger:   discardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.width = e.finiteWidth(e.width)
	e.snap.Store(emptySnapshot)
	return e
}

// State returns the cache state.
func (e *Engine) State() CacheState { return e.state }

// Width returns the current container width.
func (e *Engine) Width() float64 { return e.width }

// RTL reports whether right-to-left mirroring is on.
func (e *Engine) RTL() bool { return e.rtl }

// Alignment returns the flow row alignment.
func (e *Engine) Alignment() Alignment { return e.align }

// NotifyWidthChanged records a new container width. It invalidates the
// cache only if the width differs from the current one and reports
// whether it did.
//
// A NaN or infinite width is treated as 0 with an INVALID_WIDTH warning.
func (e *Engine) NotifyWidthChanged(w float64) bool {
	w = e.finiteWidth(w)
	if w == e.width {
		return false
	}
	e.width = w
	e.invalidate(ReasonWidth)
	return true
}

// NotifyDataChanged invalidates the cache after a change of section or
// item counts, item sizes or section configuration. Cached item sizes are
// discarded.
func (e *Engine) NotifyDataChanged() {
	e.memo.reset()
	e.invalidate(ReasonData)
}

// SetRTL switches mirroring on or off.
func (e *Engine) SetRTL(rtl bool) {
	if rtl == e.rtl {
		return
	}
	e.rtl = rtl
	e.invalidate(ReasonDirection)
}

// SetAlignment changes the flow row alignment.
func (e *Engine) SetAlignment(a Alignment) {
	if a == e.align {
		return
	}
	e.align = a
	e.invalidate(ReasonAlignment)
}

func (e *Engine) invalidate(reason string) {
	e.generation++
	if e.state == Fresh {
		observability.Layout().OnInvalidate(reason)
		e.logger.Debug("layout invalidated", "reason", reason)
	}
	e.state = Stale
}

// Recompute runs a full layout pass unconditionally.
//
// A call made while a pass is already running (for example from inside a
// size provider) does not recurse: it is coalesced into a single follow-up
// pass that runs once the current one finishes. If the follow-up is itself
// interrupted the engine is left Stale for the next query.
func (e *Engine) Recompute() {
	if e.computing {
		e.pending = true
		e.warn(serrors.New(serrors.ErrCodeReentrant, "layout requested during a layout pass; coalesced"))
		return
	}
	e.computing = true
	defer func() { e.computing = false }()

	e.pass()
	if !e.pending {
		return
	}
	e.pending = false
	e.pass()
	if e.pending {
		e.pending = false
		e.state = Stale
	}
}

// Prepare recomputes if the cache is Stale and returns the current
// snapshot. During a running pass it returns the previous snapshot and
// schedules a follow-up pass.
func (e *Engine) Prepare() *Snapshot {
	if e.state == Stale {
		e.Recompute()
	}
	return e.snap.Load()
}

// Snapshot returns the last published snapshot without recomputing.
// It is safe to call from any goroutine.
func (e *Engine) Snapshot() *Snapshot { return e.snap.Load() }

// Attributes returns every attribute of the current layout.
func (e *Engine) Attributes() []Attribute { return e.Prepare().Attributes() }

// AttributesIn returns the attributes intersecting rect. Querying a new
// visible rect never invalidates the cache.
func (e *Engine) AttributesIn(rect Frame) []Attribute { return e.Prepare().AttributesIn(rect) }

// Attribute returns the attribute of one cell, header or footer.
func (e *Engine) Attribute(ref ItemRef, kind Kind) (Attribute, bool) {
	return e.Prepare().Attribute(ref, kind)
}

// ContentSize returns the total size of the laid out content.
func (e *Engine) ContentSize() Size { return e.Prepare().ContentSize }

// pass builds a complete new snapshot off to the side and publishes it.
func (e *Engine) pass() {
	start := time.Now()
	gen := e.generation

	sections := 0
	if e.source != nil {
		sections = e.source.SectionCount()
	}
	observability.Layout().OnRecomputeStart(sections)

	e.memo.begin()
	in := passInput{
		width:    e.width,
		rtl:      e.rtl,
		align:    e.align,
		resolver: e.resolver,
		source:   e.source,
		sizes:    e.memo,
	}
	out := stackSections(in)
	out.warnings = append(out.warnings, e.memo.warnings...)
	e.memo.commit()

	snap := newSnapshot(in, out)
	e.snap.Store(snap)

	if e.generation == gen {
		e.state = Fresh
	} else {
		// Inputs changed while the pass ran.
		e.state = Stale
		e.pending = true
	}

	if len(out.defaulted) > 0 {
		e.logger.Debug("sections using default config", "sections", out.defaulted)
	}
	for _, w := range out.warnings {
		e.warn(w)
	}

	d := time.Since(start)
	observability.Layout().OnRecomputeComplete(snap.Len(), snap.ContentSize.Height, d, len(out.warnings))
	e.logger.Debug("recomputed layout",
		"sections", sections,
		"attributes", snap.Len(),
		"height", snap.ContentSize.Height,
		"size_queries", e.memo.queries,
		"duration", d)
}

func (e *Engine) finiteWidth(w float64) float64 {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		e.warn(serrors.New(serrors.ErrCodeInvalidWidth, "container width %v is not finite, using 0", w))
		return 0
	}
	return w
}

func (e *Engine) warn(err error) {
	code := serrors.GetCode(err)
	msg := serrors.UserMessage(err)
	observability.Layout().OnWarning(string(code), msg)
	e.logger.Warn(msg, "code", code)
}
