package layout

import (
	"testing"

	"github.com/matzehuels/scorepager/pkg/score"
)

func pageRanges(pages [][]column) [][][2]int {
	out := make([][][2]int, len(pages))
	for i, p := range pages {
		out[i] = ranges(p)
	}
	return out
}

func TestSegmentPages(t *testing.T) {
	cols := []column{
		{start: 0, end: 2, width: 100},
		{start: 2, end: 4, width: 100},
		{start: 4, end: 5, width: 100},
	}

	tests := []struct {
		name   string
		cols   []column
		pieces score.Pieces
		width  float64
		want   int
		first  [][2]int
	}{
		{"all fit", cols, score.SinglePiece(), 1000, 1, [][2]int{{0, 2}, {2, 4}, {4, 5}}},
		{"overflow", cols, score.SinglePiece(), 250, 2, [][2]int{{0, 2}, {2, 4}}},
		{"exact fit", cols, score.SinglePiece(), 300, 1, [][2]int{{0, 2}, {2, 4}, {4, 5}}},
		{"piece start", cols, score.Pieces{0: "", 2: "b"}, 1000, 2, [][2]int{{0, 2}}},
		{"narrow canvas", cols, score.SinglePiece(), 50, 3, [][2]int{{0, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages := segmentPages(tt.cols, tt.pieces, tt.width)
			if len(pages) != tt.want {
				t.Fatalf("got %d pages %v, want %d", len(pages), pageRanges(pages), tt.want)
			}
			got := ranges(pages[0])
			if len(got) != len(tt.first) {
				t.Fatalf("first page = %v, want %v", got, tt.first)
			}
			for i := range got {
				if got[i] != tt.first[i] {
					t.Errorf("first page = %v, want %v", got, tt.first)
				}
			}
		})
	}
}

func TestSegmentPagesLeadingPieceHasNoEmptyPage(t *testing.T) {
	cols := []column{{start: 0, end: 3, width: 100}}
	pages := segmentPages(cols, score.Pieces{0: "first"}, 1000)
	if len(pages) != 1 || len(pages[0]) != 1 {
		t.Errorf("got %v, want a single page with a single column", pageRanges(pages))
	}
}
