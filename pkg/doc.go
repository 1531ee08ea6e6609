// Package pkg holds the libraries behind scorepager.
//
// Scorepager reflows the staves detected on scanned sheet music into columns
// and pages that fit a screen. The packages, leaves first:
//
//  1. [score] - input model: staff bounding boxes and piece boundaries
//  2. [layout] - the pure layout engine (scale, columns, pages, merge, place)
//  3. [pipeline] - option defaults, sizing modes, batch layout, layout tracking
//  4. [navigator] - page navigation that survives re-layout
//  5. [session] - saved reading positions (memory, file, Redis)
//  6. [io] - score document import and layout export
//  7. [errors], [observability], [buildinfo] - ambient support
//
// # Data Flow
//
//	score document (JSON/TOML)
//	         ↓
//	    [io] ImportScore
//	         ↓
//	    [pipeline] Runner.Layout (resolve scale for the sizing mode)
//	         ↓
//	    [layout] Compute
//	         ↓
//	    [navigator] / layout JSON / HTTP response
//
// [score]: github.com/matzehuels/scorepager/pkg/score
// [layout]: github.com/matzehuels/scorepager/pkg/layout
// [pipeline]: github.com/matzehuels/scorepager/pkg/pipeline
// [navigator]: github.com/matzehuels/scorepager/pkg/navigator
// [session]: github.com/matzehuels/scorepager/pkg/session
// [io]: github.com/matzehuels/scorepager/pkg/io
// [errors]: github.com/matzehuels/scorepager/pkg/errors
// [observability]: github.com/matzehuels/scorepager/pkg/observability
// [buildinfo]: github.com/matzehuels/scorepager/pkg/buildinfo
package pkg
