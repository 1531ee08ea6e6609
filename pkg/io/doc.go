// Package io reads score documents and writes layout documents.
//
// # Score Documents
//
// A score document describes the staves detected on scanned source pages
// and where each piece begins. It is stored as JSON or TOML; the format is
// chosen by file extension (see [FormatFromPath]):
//
//	{
//	  "version": 1,
//	  "title": "Partita No. 2",
//	  "staves": [
//	    {"page": 0, "start": {"x": 120, "y": 300}, "end": {"x": 2380, "y": 520}},
//	    {"page": 0, "start": {"x": 120, "y": 610}, "end": {"x": 2380, "y": 830}}
//	  ],
//	  "pieces": [
//	    {"start": 0, "name": "Allemande"}
//	  ]
//	}
//
// The same document in TOML:
//
//	version = 1
//	title = "Partita No. 2"
//
//	[[staves]]
//	page = 0
//	start = { x = 120, y = 300 }
//	end = { x = 2380, y = 520 }
//
//	[[pieces]]
//	start = 0
//	name = "Allemande"
//
// The version field selects the document shape. Version 1 is the only
// current shape; any other version is rejected with UNSUPPORTED. When no
// pieces are listed the whole score is a single unnamed piece.
//
// Use [ImportScore] to read a file, or [ReadScore] to read from any
// io.Reader. Both validate the decoded score, so a nil error means the score
// can be passed to the layout engine as is.
//
// # Layout Documents
//
// [NewLayoutDocument] flattens a computed layout into the exported shape:
//
//	{
//	  "id": "0b9d...",
//	  "scale": 0.42,
//	  "canvas_width": 1280,
//	  "canvas_height": 800,
//	  "pages": [
//	    {"index": 0, "staves": [{"index": 0, "x": 165, "y": 24, "width": 950, "height": 92}]}
//	  ]
//	}
//
// [WriteLayout] and [ExportLayout] encode it; the HTTP API returns the same
// document from POST /v1/layout.
//
// # Concurrency
//
// All functions in this package are safe for concurrent use.
package io
