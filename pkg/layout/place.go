package layout

import (
	"math"

	"github.com/matzehuels/scorepager/pkg/score"
)

// placeColumn positions every staff of column c. left is the column's left
// edge in canvas pixels.
func placeColumn(staves []score.Staff, c column, g columnGroups, left, canvasHeight, scale float64) []StaffLayout {
	n := len(g.groups)
	excess := canvasHeight/scale - totalHeight(g.groups)

	// y runs in source pixels and is scaled on output.
	var y float64
	if n == 1 {
		y = excess / 2
	} else {
		y = math.Min((excess-g.spacing*float64(n-1))/2, 3*g.maxSpacing)
	}

	out := make([]StaffLayout, 0, c.end-c.start)
	for _, m := range g.groups {
		x := left + (c.width-m.bounds.Width()*scale)/2
		for i := m.first; i <= m.last; i++ {
			d := staves[i].Start.Sub(m.bounds.Start)
			out = append(out, StaffLayout{
				Index: i,
				X:     x + d.X*scale,
				Y:     (y + d.Y) * scale,
				Width: staves[i].Width() * scale,
			})
		}
		y += m.height() + g.spacing
	}
	return out
}

// columnOffsets returns the left edge of each column, centering the row of
// columns on the page with even gaps.
func columnOffsets(cols []column, canvasWidth float64) []float64 {
	var total float64
	for _, c := range cols {
		total += c.width
	}
	excess := canvasWidth - total
	gap := excess / float64(len(cols))

	x := (excess - gap*float64(len(cols)-1)) / 2
	offsets := make([]float64, len(cols))
	for i, c := range cols {
		offsets[i] = x
		x += c.width + gap
	}
	return offsets
}
