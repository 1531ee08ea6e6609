// Package score defines the input data model of the staff layout engine.
//
// A [Score] is one globally ordered sequence of [Staff] bounding boxes
// detected on scanned source pages, plus a sparse [Pieces] map marking the
// staff at which each musical piece begins. The order of the staves is the
// musical reading order; nothing downstream ever reorders them.
//
// # Coordinates
//
// Staff coordinates are absolute pixel positions on the source page: Start
// is the top-left corner and End the bottom-right corner, so End.X > Start.X
// and End.Y > Start.Y for every valid staff. The rendered height of a staff
// is implied by its aspect ratio (height / width).
//
// # Pieces
//
// A piece boundary means "this staff starts a new column and a new page".
// Index 0 is always a piece start; [Score.Validate] enforces it along with
// the staff geometry, so the layout engine can treat both as preconditions.
package score
