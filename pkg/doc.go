// Package pkg provides the libraries behind Sectionflow, a layout engine for
// sectioned collections of items.
//
// # Overview
//
// Sectionflow computes frames for a vertical list of sections. Each section
// has an optional header, a body of items placed either in wrapping rows
// (flow) or in the currently shortest of N columns (waterfall), and an
// optional footer. Sections stack top to bottom; right-to-left mirroring and
// flow row alignment apply to the whole layout.
//
// # Architecture
//
// The typical data flow:
//
//	Document (JSON / TOML / YAML, or API request)
//	         ↓
//	    [document] package (decode + validate, engine providers)
//	         ↓
//	    [layout] package (resolve configs, place, stack, cache)
//	         ↓
//	    [document.Layout] (positioned blocks + content size)
//	         ↓
//	    [sink] package (JSON, SVG, text)
//
// [pipeline] runs those stages with caching and is shared by the CLI and the
// HTTP server.
//
// # Quick Start
//
// Drive the engine directly from your own data:
//
//	eng := layout.New(source, sizes,
//	    layout.WithSectionConfig(configs),
//	    layout.WithWidth(375),
//	)
//	for _, a := range eng.Attributes() {
//	    fmt.Println(a.Ref, a.Kind, a.Frame)
//	}
//	eng.NotifyWidthChanged(414) // next query recomputes
//
// Or lay out a document file:
//
//	doc, _ := document.ReadFile("feed.yaml")
//	out := pipeline.GenerateLayout(doc, pipeline.Options{Width: 375})
//	svg := sink.RenderSVG(out, sink.WithLabels())
//
// # Main Packages
//
// ## Engine
//
// [layout] - The engine: three-tier section configuration (host overrides,
// per-section delegate, defaults), flow and waterfall placement, section
// stacking, RTL mirroring, the Fresh/Stale cache and its invalidation calls,
// and visible-rect queries on the published snapshot.
//
// ## Serialization
//
// [document] - Input documents (sections of items) and the computed layout
// format. A Document implements the engine's data, size and section config
// providers.
//
// [sink] - Renderers from a computed layout to JSON, SVG and a character grid.
//
// ## Infrastructure
//
// [pipeline] - parse → layout → render with validation, defaults and caching,
// used by the CLI and the HTTP API.
//
// [cache] - Result cache with file, Redis and null backends and key builders.
//
// [errors] - Coded errors with user-facing messages and input validators.
//
// [observability] - Hook interfaces for layout passes, cache access and HTTP
// requests. No-op by default.
//
// [httputil] - JSON request decoding and error responses for the HTTP API.
//
// [buildinfo] - Version information stamped in with ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./...               # All tests
//	go test ./pkg/layout/...    # Engine only
//	go test -run Example ./...  # Examples only
//
// [layout]: https://pkg.go.dev/github.com/matzehuels/sectionflow/pkg/layout
// [document]: https://pkg.go.dev/github.com/matzehuels/sectionflow/pkg/document
// [document.Layout]: https://pkg.go.dev/github.com/matzehuels/sectionflow/pkg/document#Layout
// [sink]: https://pkg.go.dev/github.com/matzehuels/sectionflow/pkg/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sectionflow/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/sectionflow/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/sectionflow/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/sectionflow/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/sectionflow/pkg/httputil
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/sectionflow/pkg/buildinfo
package pkg
