// Package pipeline turns a score and a set of sizing options into a layout.
//
// This package sits between the entry points (CLI, HTTP API, interactive
// viewer) and the pure layout engine in [layout]. It centralizes option
// defaults, resolves the pixel scale for the chosen sizing mode, emits
// logging and observability events, and lays out several scores at once.
//
// # Sizing Modes
//
//   - zoom: the caller supplies the pixels-per-source-pixel factor directly
//   - staves: fit a target number of staves into each column
//   - columns: fit a target number of columns onto each page
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{Width: 1280, Height: 800, Mode: pipeline.ModeStaves, Staves: 4}
//	res, err := runner.Layout(ctx, s, opts)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Layout.PageCount())
//
// [layout]: github.com/matzehuels/scorepager/pkg/layout
package pipeline

import (
	"github.com/matzehuels/scorepager/pkg/errors"
	"github.com/matzehuels/scorepager/pkg/layout"
	"github.com/matzehuels/scorepager/pkg/score"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Viewer
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 1280.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 800.0

	// DefaultStaves is the default number of staves per column.
	DefaultStaves = 4

	// DefaultColumns is the default number of columns per page.
	DefaultColumns = 2

	// DefaultZoom is the default manual scale.
	DefaultZoom = 1.0

	// DefaultMode is the default sizing mode.
	DefaultMode = ModeStaves
)

// Mode selects how the layout scale is chosen.
type Mode string

// Sizing modes.
const (
	ModeZoom    Mode = "zoom"
	ModeStaves  Mode = "staves"
	ModeColumns Mode = "columns"
)

// ValidModes is the set of supported sizing modes.
var ValidModes = map[Mode]bool{
	ModeZoom:    true,
	ModeStaves:  true,
	ModeColumns: true,
}

// =============================================================================
// Options - Layout Configuration
// =============================================================================

// Options configures one layout computation.
// This struct supports JSON serialization for API requests and TOML for the
// config file.
type Options struct {
	Width   float64 `json:"width,omitempty" toml:"width"`
	Height  float64 `json:"height,omitempty" toml:"height"`
	Mode    Mode    `json:"mode,omitempty" toml:"mode"`
	Zoom    float64 `json:"zoom,omitempty" toml:"zoom"`
	Staves  int     `json:"staves,omitempty" toml:"staves"`
	Columns int     `json:"columns,omitempty" toml:"columns"`
}

// SetDefaults fills zero fields with the package defaults.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if o.Zoom == 0 {
		o.Zoom = DefaultZoom
	}
	if o.Staves == 0 {
		o.Staves = DefaultStaves
	}
	if o.Columns == 0 {
		o.Columns = DefaultColumns
	}
}

// Validate checks the options after defaults have been applied.
func (o Options) Validate() error {
	if !ValidModes[o.Mode] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid mode: %q (must be one of: zoom, staves, columns)", o.Mode)
	}
	if err := errors.ValidateDimension("canvas width", o.Width); err != nil {
		return err
	}
	if err := errors.ValidateDimension("canvas height", o.Height); err != nil {
		return err
	}
	switch o.Mode {
	case ModeZoom:
		return errors.ValidateScale(o.Zoom)
	case ModeStaves:
		return errors.ValidateTarget("staves", o.Staves)
	default:
		return errors.ValidateTarget("columns", o.Columns)
	}
}

// Scale resolves the pixel scale for the configured mode.
func (o Options) Scale(staves []score.Staff) (float64, error) {
	switch o.Mode {
	case ModeZoom:
		return o.Zoom, nil
	case ModeStaves:
		zoom, err := layout.ScaleForStaffCount(staves, o.Height, o.Staves)
		if err != nil {
			return 0, err
		}
		return layout.PixelScale(zoom, o.Height), nil
	case ModeColumns:
		zoom, err := layout.ScaleForColumnCount(staves, o.Width, o.Height, o.Columns)
		if err != nil {
			return 0, err
		}
		return layout.PixelScale(zoom, o.Height), nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "invalid mode: %q", o.Mode)
}

// WithSize returns a copy of o for a different canvas size.
func (o Options) WithSize(width, height float64) Options {
	o.Width, o.Height = width, height
	return o
}

// Target returns the numeric target of the active mode as a float, for
// display.
func (o Options) Target() float64 {
	switch o.Mode {
	case ModeStaves:
		return float64(o.Staves)
	case ModeColumns:
		return float64(o.Columns)
	}
	return o.Zoom
}
