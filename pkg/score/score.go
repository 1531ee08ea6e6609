package score

import (
	"github.com/matzehuels/scorepager/pkg/errors"
)

// Score is a validated, ordered staff sequence with its piece boundaries.
type Score struct {
	Title  string
	Staves []Staff
	Pieces Pieces
}

// Validate checks all preconditions of the layout engine: at least one
// staff, well-formed geometry for every staff and a piece map that starts
// at index 0.
func (s *Score) Validate() error {
	if len(s.Staves) == 0 {
		return errors.New(errors.ErrCodeEmptyScore, "score has no staves")
	}
	for i, st := range s.Staves {
		if err := st.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidStaff, err, "staff %d", i)
		}
	}
	return s.Pieces.Validate(len(s.Staves))
}

// PieceNames returns the named pieces in reading order.
func (s *Score) PieceNames() []string {
	var names []string
	for _, start := range s.Pieces.Starts() {
		if name := s.Pieces[start]; name != "" {
			names = append(names, name)
		}
	}
	return names
}
