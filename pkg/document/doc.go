// Package document provides the serialization types around the layout engine.
//
// This package defines the wire format used for input files, API requests,
// cached results and renderer input. It sits at the boundary between the
// engine (pkg/layout), which works on counts and callbacks, and everything
// that needs concrete data.
//
// # Core Types
//
//   - [Document]: sections of items with per-section configuration (input)
//   - [Layout]: positioned blocks and content size (output)
//   - [Block]: one positioned cell, header or footer
//
// # Documents
//
// A [Document] implements [layout.DataSource], [layout.SizeProvider] and
// [layout.SectionConfigProvider], so it can drive an engine directly:
//
//	doc, _ := document.ReadFile("feed.yaml")
//	eng := layout.New(doc, doc, layout.WithSectionConfig(doc), layout.WithWidth(375))
//	out := document.Export(doc, eng.Prepare())
//
// Documents are read from JSON, TOML or YAML chosen by file extension:
//
//	name: feed
//	sections:
//	  - id: stories
//	    header_height: 44
//	    interitem_spacing: 8
//	    items:
//	      - {id: a, width: 120, height: 80}
//	  - id: photos
//	    mode: waterfall
//	    columns: 2
//	    items:
//	      - {id: p1, aspect_ratio: 0.75}
//
// A section field left out of the file is not supplied, and the engine
// falls back to host overrides and global defaults for it.
//
// # Item Sizes
//
// An item's width is its Width, or the whole available width when Width is
// 0. Waterfall items always take the column width. Height is Height, or
// width / AspectRatio when AspectRatio > 0.
//
// # Layout Serialization
//
//	data, _ := document.MarshalLayout(out)       // Layout → []byte
//	l, _ := document.UnmarshalLayout(data)       // []byte → Layout
//	document.WriteLayoutFile(out, "layout.json") // Layout → File
package document
