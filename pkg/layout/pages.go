package layout

import "github.com/matzehuels/scorepager/pkg/score"

// segmentPages groups columns into pages that fit the canvas width.
// A piece start always opens a new page, except for the very first column.
func segmentPages(cols []column, pieces score.Pieces, canvasWidth float64) [][]column {
	var (
		pages [][]column
		cur   []column
		x     float64
	)
	for _, c := range cols {
		if len(cur) > 0 && (pieces.IsStart(c.start) || x+c.width > canvasWidth) {
			pages = append(pages, cur)
			cur = nil
			x = 0
		}
		cur = append(cur, c)
		x += c.width
	}
	if len(cur) > 0 {
		pages = append(pages, cur)
	}
	return pages
}
