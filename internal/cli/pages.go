package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	scoreio "github.com/matzehuels/scorepager/pkg/io"
	"github.com/matzehuels/scorepager/pkg/layout"
	"github.com/matzehuels/scorepager/pkg/pipeline"
	"github.com/matzehuels/scorepager/pkg/score"
)

// pagesCommand prints the page breakdown of a score.
func (c *CLI) pagesCommand() *cobra.Command {
	var flags optionFlags

	cmd := &cobra.Command{
		Use:   "pages [score]",
		Short: "Print which staves land on which page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, c.Config.Options())
			if err != nil {
				return err
			}
			return c.runPages(cmd.Context(), args[0], opts)
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *CLI) runPages(ctx context.Context, input string, opts pipeline.Options) error {
	s, err := scoreio.ImportScore(input)
	if err != nil {
		return fmt.Errorf("load score %s: %w", input, err)
	}
	res, err := c.newRunner().Layout(ctx, s, opts)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(s.Title))
	fmt.Println(pagesTable(s, res.Layout))
	printStats(res.Layout.StaffCount(), res.Layout.PageCount(), res.Scale)
	return nil
}

// pageRows returns one row per page: page number, staff range, staff count
// and the piece the page belongs to.
func pageRows(s *score.Score, l layout.PageLayout) [][]string {
	rows := make([][]string, 0, l.PageCount())
	for p := range l.PageCount() {
		staves := l.StavesOfPage(p)
		first, last := staves[0], staves[len(staves)-1]

		span := fmt.Sprint(first)
		if last != first {
			span = fmt.Sprintf("%d-%d", first, last)
		}

		piece := ""
		start := s.Pieces.PieceOf(first)
		if name, _ := s.Pieces.Name(start); name != "" {
			piece = name
		}
		if start == first && p > 0 {
			piece = "▸ " + piece
		}

		rows = append(rows, []string{fmt.Sprint(p + 1), span, fmt.Sprint(len(staves)), piece})
	}
	return rows
}

func pagesTable(s *score.Score, l layout.PageLayout) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Page", "Staves", "Count", "Piece").
		Rows(pageRows(s, l)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col == 3 {
				return cellStyle.Foreground(colorCyan)
			}
			return cellStyle.Foreground(colorWhite)
		}).
		Render()
}
