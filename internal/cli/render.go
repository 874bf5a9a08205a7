package cli

import (
	"github.com/spf13/cobra"

	"github.com/corkboard-io/corkboard/pkg/pipeline"
)

// renderCommand creates the render command, a layout run fixed to SVG output.
func (c *CLI) renderCommand() *cobra.Command {
	var opts layoutOpts
	opts.formats = []string{pipeline.FormatSVG}

	cmd := &cobra.Command{
		Use:   "render [board.json]",
		Short: "Render a board's grouped layout to SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output SVG path")
	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "isolate one label; everything else packs into a grid")
	cmd.Flags().BoolVar(&opts.showLabels, "labels", false, "draw object labels in the SVG")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached layout exists")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable layout caching")

	return cmd
}
