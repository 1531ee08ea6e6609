package layout

import (
	"github.com/google/uuid"

	"github.com/matzehuels/scorepager/pkg/errors"
	"github.com/matzehuels/scorepager/pkg/score"
)

// StaffLayout is the position and rendered width of one staff on a page,
// in canvas pixels. The height follows from the staff's aspect ratio.
type StaffLayout struct {
	Index int
	X, Y  float64
	Width float64
}

// Height returns the rendered height given the staff the layout refers to.
func (s StaffLayout) Height(st score.Staff) float64 {
	return s.Width * st.AspectRatio()
}

// PageLayout is the immutable result of one layout computation.
type PageLayout struct {
	// Pages lists the placed staves of each page in reading order.
	Pages [][]StaffLayout

	// ID is regenerated on every computation. Consumers compare it against
	// the latest published ID to detect stale results.
	ID uuid.UUID
}

// Compute lays out staves on pages of canvasWidth x canvasHeight pixels at
// the given scale (canvas pixels per source pixel).
//
// Preconditions are checked up front: at least one staff, valid staff
// geometry, a piece start at index 0, and a positive canvas and scale.
// Violations are reported as coded errors from [errors].
func Compute(staves []score.Staff, pieces score.Pieces, canvasWidth, canvasHeight, scale float64) (PageLayout, error) {
	if err := checkInput(staves, pieces, canvasWidth, canvasHeight, scale); err != nil {
		return PageLayout{}, err
	}

	cols := segmentColumns(staves, pieces, canvasHeight, scale)
	pages := segmentPages(cols, pieces, canvasWidth)

	out := make([][]StaffLayout, len(pages))
	for p, page := range pages {
		offsets := columnOffsets(page, canvasWidth)
		for i, c := range page {
			g, err := mergeColumn(staves, c, canvasHeight, scale)
			if err != nil {
				return PageLayout{}, err
			}
			out[p] = append(out[p], placeColumn(staves, c, g, offsets[i], canvasHeight, scale)...)
		}
	}

	return PageLayout{Pages: out, ID: uuid.New()}, nil
}

// ComputeScore is Compute for a whole score.
func ComputeScore(s *score.Score, canvasWidth, canvasHeight, scale float64) (PageLayout, error) {
	return Compute(s.Staves, s.Pieces, canvasWidth, canvasHeight, scale)
}

func checkInput(staves []score.Staff, pieces score.Pieces, canvasWidth, canvasHeight, scale float64) error {
	if len(staves) == 0 {
		return errors.New(errors.ErrCodeEmptyScore, "cannot lay out an empty staff list")
	}
	if err := pieces.Validate(len(staves)); err != nil {
		return err
	}
	for i, s := range staves {
		if err := s.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidStaff, err, "staff %d", i)
		}
	}
	if err := errors.ValidateDimension("canvas width", canvasWidth); err != nil {
		return err
	}
	if err := errors.ValidateDimension("canvas height", canvasHeight); err != nil {
		return err
	}
	return errors.ValidateScale(scale)
}

// PageCount returns the number of pages.
func (l PageLayout) PageCount() int { return len(l.Pages) }

// StaffCount returns the number of placed staves across all pages.
func (l PageLayout) StaffCount() int {
	n := 0
	for _, p := range l.Pages {
		n += len(p)
	}
	return n
}

// Page returns the placed staves of page p, or nil if p is out of range.
func (l PageLayout) Page(p int) []StaffLayout {
	if p < 0 || p >= len(l.Pages) {
		return nil
	}
	return l.Pages[p]
}

// CenterStaff returns the staff in the middle of page p. It is the anchor
// used to keep the reading position stable across a re-layout.
func (l PageLayout) CenterStaff(p int) (int, error) {
	if p < 0 || p >= len(l.Pages) {
		return 0, errors.New(errors.ErrCodeNotFound, "page %d out of range [0, %d)", p, len(l.Pages))
	}
	before := 0
	for _, page := range l.Pages[:p] {
		before += len(page)
	}
	return before + len(l.Pages[p])/2, nil
}

// StavesOfPage returns the staff indices on page p in order.
func (l PageLayout) StavesOfPage(p int) []int {
	page := l.Page(p)
	if page == nil {
		return nil
	}
	indices := make([]int, len(page))
	for i, s := range page {
		indices[i] = s.Index
	}
	return indices
}

// PageOfStaff returns the page on which staff was placed.
func (l PageLayout) PageOfStaff(staff int) (int, error) {
	if staff >= 0 {
		seen := 0
		for p, page := range l.Pages {
			seen += len(page)
			if seen > staff {
				return p, nil
			}
		}
	}
	return 0, errors.New(errors.ErrCodeNotFound, "staff %d out of range [0, %d)", staff, l.StaffCount())
}
