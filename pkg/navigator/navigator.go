// Package navigator pages through a laid-out score.
//
// A [Navigator] owns one score, its layout options and the current page.
// Moving between pages never recomputes anything; changing the canvas size
// or the sizing options does, and the navigator then lands on the page that
// holds the staff that was in the middle of the old page. A reader resizing
// the window keeps looking at the same music.
//
// A Navigator is not safe for concurrent use. Background consumers that need
// to know whether a layout is still current should consult [Navigator.Tracker].
package navigator

import (
	"context"

	"github.com/matzehuels/scorepager/pkg/errors"
	"github.com/matzehuels/scorepager/pkg/layout"
	"github.com/matzehuels/scorepager/pkg/pipeline"
	"github.com/matzehuels/scorepager/pkg/score"
)

// Navigator tracks the reading position within a score's page layout.
type Navigator struct {
	runner  *pipeline.Runner
	score   *score.Score
	result  *pipeline.Result
	page    int
	tracker pipeline.Tracker
}

// New lays out s with opts and positions the navigator on the first page.
func New(ctx context.Context, runner *pipeline.Runner, s *score.Score, opts pipeline.Options) (*Navigator, error) {
	if runner == nil {
		runner = pipeline.NewRunner(nil)
	}
	res, err := runner.Layout(ctx, s, opts)
	if err != nil {
		return nil, err
	}
	n := &Navigator{runner: runner, score: s, result: res}
	n.tracker.Publish(res.Layout)
	return n, nil
}

// =============================================================================
// Accessors
// =============================================================================

// Score returns the score being navigated.
func (n *Navigator) Score() *score.Score { return n.score }

// Layout returns the current page layout.
func (n *Navigator) Layout() layout.PageLayout { return n.result.Layout }

// Result returns the pipeline result behind the current layout.
func (n *Navigator) Result() *pipeline.Result { return n.result }

// Options returns the effective layout options.
func (n *Navigator) Options() pipeline.Options { return n.result.Options }

// Tracker returns the tracker that follows this navigator's layouts.
func (n *Navigator) Tracker() *pipeline.Tracker { return &n.tracker }

// Page returns the current page index.
func (n *Navigator) Page() int { return n.page }

// PageCount returns the number of pages in the current layout.
func (n *Navigator) PageCount() int { return n.result.Layout.PageCount() }

// Staves returns the placed staves of the current page.
func (n *Navigator) Staves() []layout.StaffLayout { return n.result.Layout.Page(n.page) }

// CurrentStaff returns the staff in the middle of the current page.
func (n *Navigator) CurrentStaff() int {
	staff, _ := n.result.Layout.CenterStaff(n.page)
	return staff
}

// CurrentPiece returns the start index and name of the piece shown on the
// current page.
func (n *Navigator) CurrentPiece() (int, string) {
	start := n.score.Pieces.PieceOf(n.CurrentStaff())
	name, _ := n.score.Pieces.Name(start)
	return start, name
}

// =============================================================================
// Movement
// =============================================================================

// Next advances one page. It reports false on the last page.
func (n *Navigator) Next() bool {
	if n.page+1 >= n.PageCount() {
		return false
	}
	n.page++
	return true
}

// Prev goes back one page. It reports false on the first page.
func (n *Navigator) Prev() bool {
	if n.page == 0 {
		return false
	}
	n.page--
	return true
}

// First jumps to the first page.
func (n *Navigator) First() { n.page = 0 }

// Last jumps to the last page.
func (n *Navigator) Last() { n.page = n.PageCount() - 1 }

// GotoPage jumps to page p.
func (n *Navigator) GotoPage(p int) error {
	if p < 0 || p >= n.PageCount() {
		return errors.New(errors.ErrCodeNotFound, "page %d out of range [0, %d)", p, n.PageCount())
	}
	n.page = p
	return nil
}

// GotoStaff jumps to the page that holds staff.
func (n *Navigator) GotoStaff(staff int) error {
	p, err := n.result.Layout.PageOfStaff(staff)
	if err != nil {
		return err
	}
	n.page = p
	return nil
}

// GotoPiece jumps to the first page of the piece with the given name.
func (n *Navigator) GotoPiece(name string) error {
	start, ok := n.score.Pieces.Find(name)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "no piece named %q", name)
	}
	return n.GotoStaff(start)
}

// NextPiece jumps to the first page of the following piece. It reports
// false when the current piece is the last one.
func (n *Navigator) NextPiece() bool {
	current, _ := n.CurrentPiece()
	for _, start := range n.score.Pieces.Starts() {
		if start > current {
			return n.GotoStaff(start) == nil
		}
	}
	return false
}

// PrevPiece jumps to the first page of the current piece, or to the start
// of the previous piece when already there.
func (n *Navigator) PrevPiece() bool {
	current, _ := n.CurrentPiece()
	first, err := n.result.Layout.PageOfStaff(current)
	if err != nil {
		return false
	}
	if n.page > first {
		n.page = first
		return true
	}
	starts := n.score.Pieces.Starts()
	for i := len(starts) - 1; i >= 0; i-- {
		if starts[i] < current {
			return n.GotoStaff(starts[i]) == nil
		}
	}
	return false
}

// =============================================================================
// Re-layout
// =============================================================================

// Resize recomputes the layout for a new canvas size.
func (n *Navigator) Resize(ctx context.Context, width, height float64) error {
	return n.SetOptions(ctx, n.result.Options.WithSize(width, height))
}

// SetOptions recomputes the layout with opts and keeps the current staff in
// view. On error the previous layout and position are kept.
func (n *Navigator) SetOptions(ctx context.Context, opts pipeline.Options) error {
	anchor := n.CurrentStaff()
	res, err := n.runner.Layout(ctx, n.score, opts)
	if err != nil {
		return err
	}
	n.result = res
	n.tracker.Publish(res.Layout)
	if err := n.GotoStaff(anchor); err != nil {
		n.page = 0
	}
	return nil
}
