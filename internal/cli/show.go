package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netgraph/internal/window"
	"github.com/matzehuels/netgraph/pkg/pipeline"
)

// showCommand creates the show command, which opens the interactive window.
func (c *CLI) showCommand() *cobra.Command {
	var captions bool

	cmd := &cobra.Command{
		Use:   "show [counts...]",
		Short: "Open the diagram in an interactive window",
		Long: `Open the diagram in a window sized to the canvas.

Moving the pointer over a neuron highlights it, emphasizes its incoming and
outgoing connections and dims everything else. Press Escape or close the
window to quit.`,
		Example: `  netgraph show
  netgraph show 3 6 10
  netgraph show --layers 784,128,10 --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions(cmd, args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("captions") {
				opts.Captions = captions
			}
			return c.runShow(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&captions, "captions", false, "draw neuron indices inside the neurons")

	return cmd
}

func (c *CLI) runShow(ctx context.Context, opts pipeline.Options) error {
	prog := newProgress(c.Logger)
	drawn, err := pipeline.NewRunner(c.Logger).Draw(ctx, opts)
	if err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	prog.done("drew diagram",
		"topology", drawn.Topology.String(),
		"shapes", drawn.Scene.Len())

	w, h := drawn.Scene.Size()
	printKeyValue("network", drawn.Topology.String())
	printKeyValue("canvas", fmt.Sprintf("%.0f × %.0f px", w, h))
	printInfo("Opening window, press Esc to close")

	return window.Run(ctx, drawn.Scene, window.Options{Title: opts.Title, Logger: c.Logger})
}
