package layout

import (
	"math"

	"github.com/matzehuels/scorepager/pkg/errors"
	"github.com/matzehuels/scorepager/pkg/score"
)

// mergedStaff is a group of consecutive staves that belong to one physical
// system. Member ranges of neighbouring groups are contiguous and together
// cover their column exactly.
type mergedStaff struct {
	bounds      score.Staff
	first, last int // inclusive member range
}

func (m mergedStaff) height() float64 { return m.bounds.Height() }

// columnGroups is the outcome of merging one column. Spacing values are in
// source pixels.
type columnGroups struct {
	groups     []mergedStaff
	spacing    float64
	maxSpacing float64
}

// mergeColumn merges the staves of c in two passes: hard overlaps first,
// then gaps narrower than the spacing derived from the first pass.
func mergeColumn(staves []score.Staff, c column, canvasHeight, scale float64) (columnGroups, error) {
	groups := make([]mergedStaff, 0, c.end-c.start)
	for i := c.start; i < c.end; i++ {
		groups = append(groups, mergedStaff{bounds: staves[i], first: i, last: i})
	}
	count := c.end - c.start
	available := canvasHeight / scale

	groups, err := mergeAdjacent(groups, func(a, b mergedStaff) bool {
		return a.bounds.End.Y > b.bounds.Start.Y
	})
	if err != nil {
		return columnGroups{}, err
	}

	spacing, maxSpacing := groupSpacing(groups, count, available)
	groups, err = mergeAdjacent(groups, func(a, b mergedStaff) bool {
		return b.bounds.Start.Y-a.bounds.End.Y < spacing
	})
	if err != nil {
		return columnGroups{}, err
	}

	spacing, maxSpacing = groupSpacing(groups, count, available)
	return columnGroups{groups: groups, spacing: spacing, maxSpacing: maxSpacing}, nil
}

// mergeAdjacent scans neighbouring pairs back to front and merges those on
// the same source page for which join returns true.
func mergeAdjacent(groups []mergedStaff, join func(a, b mergedStaff) bool) ([]mergedStaff, error) {
	for i := len(groups) - 1; i > 0; i-- {
		a, b := groups[i-1], groups[i]
		if a.bounds.Page != b.bounds.Page || !join(a, b) {
			continue
		}
		if a.last+1 != b.first {
			return nil, errors.New(errors.ErrCodeInternal,
				"cannot merge non-adjacent staves %d-%d and %d-%d", a.first, a.last, b.first, b.last)
		}
		groups[i-1] = mergedStaff{bounds: a.bounds.Union(b.bounds), first: a.first, last: b.last}
		groups = append(groups[:i], groups[i+1:]...)
	}
	return groups, nil
}

// groupSpacing returns the gap between groups and its cap. The cap is 10%
// of the mean staff height so that a sparse last column does not spread out.
// A single group needs no spacing; it is centered instead.
func groupSpacing(groups []mergedStaff, staffCount int, available float64) (spacing, maxSpacing float64) {
	total := totalHeight(groups)
	maxSpacing = total / float64(staffCount) / 10
	if len(groups) < 2 {
		return 0, maxSpacing
	}
	spacing = (available - total) / float64(len(groups)-1)
	return math.Min(spacing, maxSpacing), maxSpacing
}

func totalHeight(groups []mergedStaff) float64 {
	var sum float64
	for _, g := range groups {
		sum += g.height()
	}
	return sum
}
