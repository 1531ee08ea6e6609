package score

import (
	"math"

	"github.com/matzehuels/scorepager/pkg/errors"
)

// Point is a position in source-page pixel coordinates.
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Staff is one detected system of music as a bounding box on a source page.
type Staff struct {
	Page  int   `json:"page" toml:"page"`
	Start Point `json:"start" toml:"start"`
	End   Point `json:"end" toml:"end"`
}

// Width returns the horizontal span of the staff.
func (s Staff) Width() float64 { return s.End.X - s.Start.X }

// Height returns the vertical span of the staff.
func (s Staff) Height() float64 { return s.End.Y - s.Start.Y }

// AspectRatio returns height / width.
func (s Staff) AspectRatio() float64 { return s.Height() / s.Width() }

// Union returns the bounding box covering both staves.
// The result keeps the receiver's source page.
func (s Staff) Union(o Staff) Staff {
	return Staff{
		Page:  s.Page,
		Start: Point{X: math.Min(s.Start.X, o.Start.X), Y: math.Min(s.Start.Y, o.Start.Y)},
		End:   Point{X: math.Max(s.End.X, o.End.X), Y: math.Max(s.End.Y, o.End.Y)},
	}
}

// Validate checks the staff geometry.
func (s Staff) Validate() error {
	if s.Page < 0 {
		return errors.New(errors.ErrCodeInvalidStaff, "negative source page %d", s.Page)
	}
	for _, v := range []float64{s.Start.X, s.Start.Y, s.End.X, s.End.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeInvalidStaff, "non-finite coordinate %v", v)
		}
	}
	if s.End.X <= s.Start.X {
		return errors.New(errors.ErrCodeInvalidStaff, "end.x (%v) must be greater than start.x (%v)", s.End.X, s.Start.X)
	}
	if s.End.Y <= s.Start.Y {
		return errors.New(errors.ErrCodeInvalidStaff, "end.y (%v) must be greater than start.y (%v)", s.End.Y, s.Start.Y)
	}
	return nil
}
