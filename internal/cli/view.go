package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scorepager/pkg/errors"
	scoreio "github.com/matzehuels/scorepager/pkg/io"
	"github.com/matzehuels/scorepager/pkg/layout"
	"github.com/matzehuels/scorepager/pkg/navigator"
	"github.com/matzehuels/scorepager/pkg/pipeline"
	"github.com/matzehuels/scorepager/pkg/score"
	"github.com/matzehuels/scorepager/pkg/session"
)

// A terminal cell stands for this many canvas pixels.
const (
	cellWidth  = 8.0
	cellHeight = 16.0

	// header and footer lines around the page preview
	chromeLines = 3
)

var (
	viewHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	viewStaffStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	viewHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	viewErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// viewCommand pages through a score in the terminal.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		flags    optionFlags
		noResume bool
	)

	cmd := &cobra.Command{
		Use:   "view [score]",
		Short: "Page through a score interactively",
		Long: `Page through a score interactively.

The terminal window is the canvas: resizing it reflows the staves and keeps
the current staff in view. The reading position is saved on exit and
restored the next time the same score is opened.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, c.Config.Options())
			if err != nil {
				return err
			}
			return c.runView(cmd.Context(), args[0], opts, !noResume, !flags.changed(cmd))
		},
	}
	cmd.Flags().BoolVar(&noResume, "no-resume", false, "start on the first page instead of the saved position")
	flags.register(cmd)
	return cmd
}

func (c *CLI) runView(ctx context.Context, input string, opts pipeline.Options, resume, resumeOptions bool) error {
	s, err := scoreio.ImportScore(input)
	if err != nil {
		return fmt.Errorf("load score %s: %w", input, err)
	}

	dir, err := c.sessionDir()
	if err != nil {
		return err
	}
	store, err := session.NewFileStore(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	// The viewer owns the terminal; keep the runner quiet.
	nav, err := navigator.New(ctx, pipeline.NewRunner(nil), s, opts)
	if err != nil {
		return err
	}

	scoreID := scoreio.TitleFromPath(input)
	sess, err := store.Get(ctx, scoreID)
	switch {
	case err == nil && resume:
		if resumeOptions {
			if err := nav.SetOptions(ctx, sess.Options.WithSize(opts.Width, opts.Height)); err != nil {
				c.Logger.Warn("ignoring saved options", "err", err)
			}
		}
		if err := nav.GotoStaff(sess.Staff); err != nil {
			c.Logger.Warn("ignoring saved position", "staff", sess.Staff, "err", err)
		}
	case err != nil && !errors.Is(err, errors.ErrCodeSessionNotFound):
		c.Logger.Warn("cannot read session", "err", err)
	}

	final, err := tea.NewProgram(newViewModel(ctx, nav), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	nav = final.(viewModel).nav

	if sess == nil {
		sess, err = session.New(scoreID, nav.CurrentStaff(), nav.Options(), session.DefaultTTL)
		if err != nil {
			return err
		}
	} else {
		sess.Record(nav.CurrentStaff(), nav.Options(), session.DefaultTTL)
	}
	if err := store.Set(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	printSuccess("Saved position: page %d of %d, staff %d", nav.Page()+1, nav.PageCount(), nav.CurrentStaff())
	return nil
}

// =============================================================================
// viewModel - Interactive page navigator
// =============================================================================

// previewMsg carries a page preview drawn in the background.
type previewMsg struct {
	layoutID uuid.UUID
	page     int
	text     string
}

type viewModel struct {
	ctx        context.Context
	nav        *navigator.Navigator
	cols, rows int
	preview    string
	err        error
}

func newViewModel(ctx context.Context, nav *navigator.Navigator) viewModel {
	return viewModel{ctx: ctx, nav: nav, cols: 80, rows: 24}
}

func (m viewModel) Init() tea.Cmd {
	return m.drawPreview()
}

// drawPreview renders the current page off the update loop. The result is
// dropped if the layout or page changed in the meantime.
func (m viewModel) drawPreview() tea.Cmd {
	var (
		s     = m.nav.Score()
		l     = m.nav.Layout()
		page  = m.nav.Page()
		opts  = m.nav.Options()
		cols  = m.cols
		lines = max(1, m.rows-chromeLines)
	)
	return func() tea.Msg {
		return previewMsg{
			layoutID: l.ID,
			page:     page,
			text:     drawPage(s, l, page, opts.Width, opts.Height, cols, lines),
		}
	}
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case previewMsg:
		if m.nav.Tracker().IsCurrent(msg.layoutID) && msg.page == m.nav.Page() {
			m.preview = msg.text
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		lines := max(1, m.rows-chromeLines)
		m.err = m.nav.Resize(m.ctx, float64(m.cols)*cellWidth, float64(lines)*cellHeight)
		return m, m.drawPreview()

	case tea.KeyMsg:
		m.err = nil
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", " ", "pgdown":
			m.nav.Next()
		case "left", "h", "pgup":
			m.nav.Prev()
		case "home", "g":
			m.nav.First()
		case "end", "G":
			m.nav.Last()
		case "n":
			m.nav.NextPiece()
		case "p":
			m.nav.PrevPiece()
		case "+", "=":
			m.err = m.nav.SetOptions(m.ctx, zoomed(m.nav.Options(), +1))
		case "-":
			m.err = m.nav.SetOptions(m.ctx, zoomed(m.nav.Options(), -1))
		case "m":
			m.err = m.nav.SetOptions(m.ctx, nextMode(m.nav.Options(), m.nav.Result().Scale))
		default:
			return m, nil
		}
		return m, m.drawPreview()
	}
	return m, nil
}

func (m viewModel) View() string {
	var b strings.Builder

	title := m.nav.Score().Title
	if _, name := m.nav.CurrentPiece(); name != "" {
		title += " · " + name
	}
	opts := m.nav.Options()
	b.WriteString(viewHeaderStyle.Render(title))
	b.WriteString(viewHelpStyle.Render(fmt.Sprintf("  page %d/%d · %s %g",
		m.nav.Page()+1, m.nav.PageCount(), opts.Mode, opts.Target())))
	b.WriteString("\n")

	b.WriteString(viewStaffStyle.Render(m.preview))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(viewErrorStyle.Render(errors.UserMessage(m.err)))
	} else {
		b.WriteString(viewHelpStyle.Render("←/→ page  n/p piece  g/G first/last  +/- size  m mode  q quit"))
	}
	return b.String()
}

// zoomed returns opts with the music made larger (dir > 0) or smaller.
func zoomed(opts pipeline.Options, dir int) pipeline.Options {
	switch opts.Mode {
	case pipeline.ModeStaves:
		opts.Staves = max(1, opts.Staves-dir)
	case pipeline.ModeColumns:
		opts.Columns = max(1, opts.Columns-dir)
	default:
		opts.Zoom *= math.Pow(1.25, float64(dir))
	}
	return opts
}

// nextMode cycles staves -> columns -> zoom. Switching to zoom keeps the
// current scale so the page does not jump.
func nextMode(opts pipeline.Options, scale float64) pipeline.Options {
	switch opts.Mode {
	case pipeline.ModeStaves:
		opts.Mode = pipeline.ModeColumns
	case pipeline.ModeColumns:
		opts.Mode = pipeline.ModeZoom
		opts.Zoom = scale
	default:
		opts.Mode = pipeline.ModeStaves
	}
	return opts
}

// drawPage draws the staves of page p as blocks on a cols x lines grid that
// stands for a canvasWidth x canvasHeight canvas. Each block is labelled with
// its staff index.
func drawPage(s *score.Score, l layout.PageLayout, p int, canvasWidth, canvasHeight float64, cols, lines int) string {
	if cols <= 0 || lines <= 0 {
		return ""
	}
	grid := make([][]rune, lines)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}

	sx := float64(cols) / canvasWidth
	sy := float64(lines) / canvasHeight
	for _, st := range l.Page(p) {
		x0 := clamp(int(st.X*sx), 0, cols-1)
		y0 := clamp(int(st.Y*sy), 0, lines-1)
		x1 := clamp(int(math.Ceil((st.X+st.Width)*sx)), x0+1, cols)
		y1 := clamp(int(math.Ceil((st.Y+st.Height(s.Staves[st.Index]))*sy)), y0+1, lines)

		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				grid[y][x] = '▒'
			}
		}
		for i, r := range fmt.Sprint(st.Index) {
			if x0+i < x1 {
				grid[y0][x0+i] = r
			}
		}
	}

	out := make([]string, lines)
	for i, row := range grid {
		out[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(out, "\n")
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
