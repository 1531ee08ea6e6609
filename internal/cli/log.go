package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scorepager/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Laid out 3 scores (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Layout Trace
// =============================================================================

// logHooks traces layout events at debug level. Registered with --verbose.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnScaleResolved(_ context.Context, mode string, scale float64) {
	h.logger.Debug("scale resolved", "mode", mode, "scale", scale)
}

func (h *logHooks) OnLayoutStart(_ context.Context, staffCount int) {
	h.logger.Debug("layout started", "staves", staffCount)
}

func (h *logHooks) OnLayoutComplete(_ context.Context, pageCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "err", err, "duration", d)
		return
	}
	h.logger.Debug("layout complete", "pages", pageCount, "duration", d)
}

var _ observability.LayoutHooks = (*logHooks)(nil)
