package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/scorepager/pkg/layout"
	"github.com/matzehuels/scorepager/pkg/observability"
	"github.com/matzehuels/scorepager/pkg/score"
)

// DefaultConcurrency bounds LayoutAll when no limit is given.
const DefaultConcurrency = 4

// Runner executes layout computations with logging and observability.
//
// The Runner holds no per-call state. Multiple goroutines can safely use the
// same Runner with different scores and options.
type Runner struct {
	Logger *log.Logger
}

// Result contains the output of one layout run.
type Result struct {
	// Title of the score that was laid out.
	Title string

	// Layout is the computed page layout.
	Layout layout.PageLayout

	// Scale is the pixel scale the layout was computed at.
	Scale float64

	// Options are the effective options after defaults.
	Options Options

	// Duration is the wall time spent in the layout engine.
	Duration time.Duration
}

// NewRunner creates a runner. If logger is nil, output is discarded.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Logger: logger}
}

// Layout validates s and opts, resolves the scale and computes the layout.
func (r *Runner) Layout(ctx context.Context, s *score.Score, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	scale, err := opts.Scale(s.Staves)
	if err != nil {
		return nil, fmt.Errorf("resolve scale: %w", err)
	}
	observability.Layout().OnScaleResolved(ctx, string(opts.Mode), scale)
	r.Logger.Debug("resolved scale", "mode", opts.Mode, "target", opts.Target(), "scale", scale)

	observability.Layout().OnLayoutStart(ctx, len(s.Staves))
	start := time.Now()
	l, err := layout.ComputeScore(s, opts.Width, opts.Height, scale)
	elapsed := time.Since(start)
	observability.Layout().OnLayoutComplete(ctx, l.PageCount(), elapsed, err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	r.Logger.Info("computed layout",
		"score", s.Title,
		"staves", len(s.Staves),
		"pages", l.PageCount(),
		"duration", elapsed)

	return &Result{
		Title:    s.Title,
		Layout:   l,
		Scale:    scale,
		Options:  opts,
		Duration: elapsed,
	}, nil
}

// LayoutAll lays out several scores concurrently with the same options.
// Results are returned in input order. The first error cancels the rest.
// A limit of zero or less uses DefaultConcurrency.
func (r *Runner) LayoutAll(ctx context.Context, scores []*score.Score, opts Options, limit int) ([]*Result, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([]*Result, len(scores))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, s := range scores {
		g.Go(func() error {
			res, err := r.Layout(ctx, s, opts)
			if err != nil {
				return fmt.Errorf("score %q: %w", s.Title, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
