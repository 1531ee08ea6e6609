package layout

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/scorepager/pkg/score"
)

const tolerance = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) <= tolerance }

func staffAt(page int, x, y, w, h float64) score.Staff {
	return score.Staff{Page: page, Start: score.Point{X: x, Y: y}, End: score.Point{X: x + w, Y: y + h}}
}

// uniformStaves returns n staves of w x h, each on its own source page.
func uniformStaves(n int, w, h float64) []score.Staff {
	staves := make([]score.Staff, n)
	for i := range staves {
		staves[i] = staffAt(i, 0, 0, w, h)
	}
	return staves
}

// stackedStaves returns n staves of w x h on source page 0, separated by gap.
func stackedStaves(n int, w, h, gap float64) []score.Staff {
	staves := make([]score.Staff, n)
	for i := range staves {
		staves[i] = staffAt(0, 0, float64(i)*(h+gap), w, h)
	}
	return staves
}

type randomInput struct {
	staves        []score.Staff
	pieces        score.Pieces
	width, height float64
	scale         float64
}

// randomScore builds a plausible scanned score: staves flow down source
// pages with occasional overlaps and page turns.
func randomScore(r *rand.Rand) randomInput {
	n := 1 + r.IntN(60)
	staves := make([]score.Staff, 0, n)
	page, y := 0, 0.0
	for range n {
		if r.Float64() < 0.3 {
			page++
			y = 0
		}
		h := 10 + r.Float64()*50
		w := 80 + r.Float64()*120
		y = math.Max(0, y+r.Float64()*40-5)
		staves = append(staves, staffAt(page, r.Float64()*20, y, w, h))
		y += h
	}

	pieces := score.SinglePiece()
	for i := 1; i < n; i++ {
		if r.Float64() < 0.1 {
			pieces[i] = ""
		}
	}

	return randomInput{
		staves: staves,
		pieces: pieces,
		width:  200 + r.Float64()*1300,
		height: 100 + r.Float64()*1400,
		scale:  0.3 + r.Float64()*1.7,
	}
}
