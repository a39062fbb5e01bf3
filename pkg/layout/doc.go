// Package layout computes the placement of items grouped into sections.
//
// # Overview
//
// A collection is an ordered list of sections, each holding an ordered list
// of items and optionally a header and a footer block. The engine assigns
// every item, header and footer a [Frame] in container-local coordinates.
// It does no rendering and holds no data: counts come from a [DataSource],
// item sizes from a [SizeProvider] and per-section configuration from a
// [SectionConfigProvider].
//
// # Placement Modes
//
// Each section is laid out by one of two placers selected by [Mode]:
//
//   - [ModeFlow]: items are packed left to right into rows that wrap when
//     the next item would cross the right edge. Completed rows are aligned
//     according to [Alignment]. See [PlaceFlow].
//   - [ModeWaterfall]: items share a uniform column width and each one is
//     dropped into the currently shortest column, lowest index first on
//     ties. See [PlaceWaterfall].
//
// Placers work in left-to-right coordinates only. Right-to-left layout is
// the pure transform [Frame.Mirror] applied to the finished attribute list.
//
// # Configuration
//
// [Resolver] resolves a [SectionConfig] field by field from three tiers:
// host overrides, the per-section delegate and the global defaults. The
// column count of a waterfall section comes from an explicit count, else
// from a minimum item width, else from the engine-global default
// ([DefaultColumns]).
//
// # Engine
//
// [Engine] owns the cached result. It is Stale until the first query and
// after any width, data, direction or alignment change, and Fresh after a
// recompute pass. Changing the visible rect never invalidates it:
//
//	eng := layout.New(source, sizes, layout.WithWidth(375))
//	for _, a := range eng.AttributesIn(visible) {
//	    draw(a)
//	}
//	eng.NotifyWidthChanged(768) // Stale; next query recomputes
//
// Degenerate input (no sections, no items, zero width, negative sizes)
// never fails. It is coerced to a safe value and reported as a warning on
// the [Snapshot] and through the observability layout hooks.
package layout
