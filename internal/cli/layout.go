package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	scoreio "github.com/matzehuels/scorepager/pkg/io"
	"github.com/matzehuels/scorepager/pkg/pipeline"
	"github.com/matzehuels/scorepager/pkg/score"
)

// layoutCommand creates the layout command for computing page layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		jobs   int
		flags  optionFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [score.json|score.toml]...",
		Short: "Compute page layouts for score documents",
		Long: `Compute page layouts for score documents.

Each input is a score document listing the staves detected on the scanned
source pages. The layout is written next to the input as <score>.layout.json
and lists, for every screen page, the position and size of each staff.

Several inputs are laid out concurrently with the same options.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && len(args) > 1 {
				return fmt.Errorf("--output needs exactly one input, got %d", len(args))
			}
			opts, err := flags.resolve(cmd, c.Config.Options())
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args, opts, output, jobs)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", pipeline.DefaultConcurrency, "scores laid out in parallel")
	flags.register(cmd)

	return cmd
}

// runLayout loads the scores, lays them out and writes one layout file each.
func (c *CLI) runLayout(ctx context.Context, inputs []string, opts pipeline.Options, output string, jobs int) error {
	logger := loggerFromContext(ctx)

	scores := make([]*score.Score, len(inputs))
	for i, input := range inputs {
		s, err := scoreio.ImportScore(input)
		if err != nil {
			return fmt.Errorf("load score %s: %w", input, err)
		}
		scores[i] = s
		logger.Debug("loaded score", "path", input, "staves", len(s.Staves), "pieces", len(s.Pieces))
	}

	prog := newProgress(logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Laying out %s...", plural(len(scores), "score", "scores")))
	spinner.Start()

	results, err := c.newRunner().LayoutAll(ctx, scores, opts, jobs)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	for i, res := range results {
		path := output
		if path == "" {
			path = layoutPath(inputs[i])
		}
		doc := scoreio.NewLayoutDocument(scores[i], res.Layout, res.Scale, res.Options.Width, res.Options.Height)
		if err := scoreio.ExportLayout(doc, path); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}

		printSuccess("Laid out %s", StyleHighlight.Render(res.Title))
		printFile(path)
		printStats(res.Layout.StaffCount(), res.Layout.PageCount(), res.Scale)
	}
	prog.done(fmt.Sprintf("Laid out %s", plural(len(results), "score", "scores")))

	printNewline()
	printNextStep("Browse", "scorepager view "+inputs[0])
	return nil
}

// layoutPath returns <input without extension>.layout.json.
func layoutPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
}
