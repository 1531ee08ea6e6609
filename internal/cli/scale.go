package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	scoreio "github.com/matzehuels/scorepager/pkg/io"
	"github.com/matzehuels/scorepager/pkg/pipeline"
	"github.com/matzehuels/scorepager/pkg/score"
)

// scaleCommand shows the scale a score resolves to under the current
// options and the page count it produces.
func (c *CLI) scaleCommand() *cobra.Command {
	var flags optionFlags

	cmd := &cobra.Command{
		Use:   "scale [score]",
		Short: "Show the layout scale for a score",
		Long: `Show the layout scale for a score.

In staves mode the scale fits the given number of average-height staves into
one column; in columns mode it fits the given number of average-width columns
side by side. The canvas-relative zoom is printed alongside the resulting
pixel scale (canvas pixels per source pixel).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd, c.Config.Options())
			if err != nil {
				return err
			}
			return c.runScale(cmd.Context(), args[0], opts)
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *CLI) runScale(ctx context.Context, input string, opts pipeline.Options) error {
	s, err := scoreio.ImportScore(input)
	if err != nil {
		return fmt.Errorf("load score %s: %w", input, err)
	}

	res, err := c.newRunner().Layout(ctx, s, opts)
	if err != nil {
		return err
	}

	printInfo("%s", StyleTitle.Render(s.Title))
	printKeyValue("canvas", fmt.Sprintf("%.0f x %.0f", opts.Width, opts.Height))
	printKeyValue("mode", string(opts.Mode))
	if opts.Mode != pipeline.ModeZoom {
		printKeyValue("target", fmt.Sprintf("%.0f", opts.Target()))
		printKeyValue("zoom", fmt.Sprintf("%.6f", res.Scale/opts.Height))
	}
	printKeyValue("scale", fmt.Sprintf("%.4f", res.Scale))
	printKeyValue("pages", fmt.Sprint(res.Layout.PageCount()))

	if tallest := tallestStaff(s.Staves) * res.Scale; tallest > opts.Height {
		printWarning("the tallest staff is %.0fpx, taller than the %.0fpx canvas", tallest, opts.Height)
	}
	return nil
}

func tallestStaff(staves []score.Staff) float64 {
	var h float64
	for _, st := range staves {
		h = max(h, st.Height())
	}
	return h
}
