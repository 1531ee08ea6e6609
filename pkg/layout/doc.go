// Package layout paginates the staves of a scanned score onto a canvas.
//
// # Overview
//
// Given an ordered sequence of staves (bounding boxes on scanned source
// pages), the piece boundaries, a canvas size and a zoom factor, [Compute]
// partitions the staves into columns and pages, merges staves that are
// fragments of one physical system and spaces everything so that the result
// looks typeset. The output is an immutable [PageLayout] that answers
// page/staff queries in both directions.
//
// # Pipeline
//
// Layout runs in four steps, each a plain loop over an index range:
//
//  1. Columns: walk the staves accumulating scaled height; break before a
//     piece start or before the staff that would overflow the canvas height.
//  2. Pages: walk the columns accumulating width; break before a piece start
//     or before the column that would overflow the canvas width. Every piece
//     begins on a new page.
//  3. Merging: inside a column, staves on the same source page that overlap
//     vertically are merged first; staves closer than the computed spacing
//     are merged second. Merged groups are only used for spacing decisions.
//  4. Placement: groups are stacked top to bottom with uniform spacing
//     (capped to 10% of the mean staff height, top margin capped to three
//     times that) and centered horizontally; columns are centered on the page
//     with even gaps. Each original staff keeps its offset inside its group.
//
// All merge comparisons are strict and use no epsilon.
//
// # Scale
//
// [ScaleForStaffCount] and [ScaleForColumnCount] derive a zoom that is
// relative to the canvas height (1.0 means one source pixel spans the full
// canvas height). [PixelScale] turns it into the pixels-per-source-pixel
// factor [Compute] expects.
//
// # Concurrency
//
// Every function in this package is pure: no shared state, no I/O. Compute
// may be called from any number of goroutines. Each result carries a fresh
// random [PageLayout.ID] so that background consumers can recognize output
// that has been superseded by a newer computation.
package layout
