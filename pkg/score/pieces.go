package score

import (
	"sort"

	"github.com/matzehuels/scorepager/pkg/errors"
)

// Pieces maps the staff index at which a piece starts to its optional
// display name. An empty name means the piece is unnamed.
type Pieces map[int]string

// SinglePiece returns a Pieces map with one unnamed piece starting at 0.
func SinglePiece() Pieces { return Pieces{0: ""} }

// IsStart reports whether staff i begins a piece.
func (p Pieces) IsStart(i int) bool {
	_, ok := p[i]
	return ok
}

// Name returns the display name of the piece starting at staff i.
func (p Pieces) Name(i int) (string, bool) {
	name, ok := p[i]
	return name, ok
}

// Starts returns the piece start indices in ascending order.
func (p Pieces) Starts() []int {
	starts := make([]int, 0, len(p))
	for i := range p {
		starts = append(starts, i)
	}
	sort.Ints(starts)
	return starts
}

// PieceOf returns the start index of the piece containing staff i,
// or -1 when no piece starts at or before i.
func (p Pieces) PieceOf(i int) int {
	best := -1
	for start := range p {
		if start <= i && start > best {
			best = start
		}
	}
	return best
}

// Find returns the start index of the first piece with the given name.
func (p Pieces) Find(name string) (int, bool) {
	for _, start := range p.Starts() {
		if p[start] == name {
			return start, true
		}
	}
	return 0, false
}

// Validate checks that index 0 is a piece start and that every start
// addresses an existing staff.
func (p Pieces) Validate(staffCount int) error {
	if !p.IsStart(0) {
		return errors.New(errors.ErrCodeMissingPieceStart, "no piece starts at staff 0")
	}
	for i := range p {
		if i < 0 || i >= staffCount {
			return errors.New(errors.ErrCodeInvalidPiece, "piece start %d out of range [0, %d)", i, staffCount)
		}
	}
	return nil
}
