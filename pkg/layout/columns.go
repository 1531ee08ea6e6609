package layout

import (
	"math"

	"github.com/matzehuels/scorepager/pkg/score"
)

// column is a vertical run of staves [start, end).
type column struct {
	start, end int
	width      float64 // widest member, canvas pixels
}

// segmentColumns splits the staves into columns that fit the canvas height.
// A column never stays empty: a staff taller than the canvas gets a column
// of its own.
func segmentColumns(staves []score.Staff, pieces score.Pieces, canvasHeight, scale float64) []column {
	var (
		cols []column
		cur  column
		y    float64
	)
	for i, s := range staves {
		h := s.Height() * scale
		if i > cur.start && (pieces.IsStart(i) || y+h > canvasHeight) {
			cur.end = i
			cols = append(cols, cur)
			cur = column{start: i}
			y = 0
		}
		y += h
		cur.width = math.Max(cur.width, s.Width()*scale)
	}
	cur.end = len(staves)
	return append(cols, cur)
}
