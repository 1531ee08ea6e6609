package layout

import (
	"github.com/matzehuels/scorepager/pkg/errors"
	"github.com/matzehuels/scorepager/pkg/score"
)

// fitMargin biases the target so that above-average staves do not tip a
// page from N to N-1 staves.
const fitMargin = 0.5

// ScaleForStaffCount returns the zoom at which target staves of average
// height fit into one column. The zoom is relative to the canvas height.
func ScaleForStaffCount(staves []score.Staff, canvasHeight float64, target int) (float64, error) {
	if err := checkTarget(staves, target); err != nil {
		return 0, err
	}
	if err := errors.ValidateDimension("canvas height", canvasHeight); err != nil {
		return 0, err
	}

	var sum float64
	for _, s := range staves {
		sum += s.Height()
	}
	avg := sum / float64(len(staves))
	return 1 / (avg * (float64(target) + fitMargin)), nil
}

// ScaleForColumnCount returns the zoom at which target columns of average
// width fit side by side on one page. The zoom is relative to the canvas
// height.
func ScaleForColumnCount(staves []score.Staff, canvasWidth, canvasHeight float64, target int) (float64, error) {
	if err := checkTarget(staves, target); err != nil {
		return 0, err
	}
	if err := errors.ValidateDimension("canvas width", canvasWidth); err != nil {
		return 0, err
	}
	if err := errors.ValidateDimension("canvas height", canvasHeight); err != nil {
		return 0, err
	}

	var sum float64
	for _, s := range staves {
		sum += s.Width()
	}
	avg := sum / float64(len(staves))
	return canvasWidth / (canvasHeight * avg * (float64(target) + fitMargin)), nil
}

// PixelScale converts a canvas-relative zoom into canvas pixels per source
// pixel.
func PixelScale(zoom, canvasHeight float64) float64 {
	return zoom * canvasHeight
}

func checkTarget(staves []score.Staff, target int) error {
	if len(staves) == 0 {
		return errors.New(errors.ErrCodeEmptyScore, "cannot derive a scale without staves")
	}
	return errors.ValidateTarget("target", target)
}
