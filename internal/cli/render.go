package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/pipeline"
)

// defaultOutputBase is the file name stem used when --output is not given.
const defaultOutputBase = "netgraph"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file (single format) or base path (multiple)
	formats  string  // comma-separated output formats
	vizType  string  // diagram or nodelink
	hover    string  // neuron left highlighted in the export, "layer:index"
	title    string  // document title
	pngScale float64 // PNG resolution multiplier
	captions bool    // draw neuron indices
}

// renderCommand creates the render command for exporting the diagram to files.
func (c *CLI) renderCommand() *cobra.Command {
	var ro renderOpts

	cmd := &cobra.Command{
		Use:   "render [counts...]",
		Short: "Export the diagram to SVG, PNG, PDF, JSON or DOT",
		Long: `Export the diagram to one or more files.

The SVG output embeds a small script that reproduces the hover behavior in a
browser. PNG output is rasterized natively; PDF output needs rsvg-convert.
The nodelink type draws the same network through Graphviz instead.

With one format, --output names the file. With several, --output is a base
path and each file gets the format as its extension.`,
		Example: `  netgraph render -f svg,png
  netgraph render 3 6 10 -o net.svg
  netgraph render --hover 2:0 -f png --png-scale 2
  netgraph render -t nodelink -f svg,dot -o out/net`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions(cmd, args)
			if err != nil {
				return err
			}
			if err := ro.apply(cmd, &opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, ro.output)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVarP(&ro.vizType, "type", "t", pipeline.DefaultVizType, "visualization type: diagram, nodelink")
	cmd.Flags().StringVar(&ro.hover, "hover", "", "leave a neuron highlighted, e.g. 2:0")
	cmd.Flags().StringVar(&ro.title, "title", "", "document title (overrides config)")
	cmd.Flags().Float64Var(&ro.pngScale, "png-scale", 1, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&ro.captions, "captions", false, "draw neuron indices inside the neurons")

	return cmd
}

// apply copies the flags onto opts and validates them.
func (ro *renderOpts) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	formats, err := pipeline.ParseFormats(ro.formats)
	if err != nil {
		return err
	}
	if len(formats) == 0 {
		formats = []string{pipeline.FormatSVG}
	}
	if err := pipeline.ValidateVizType(ro.vizType); err != nil {
		return err
	}
	if ro.pngScale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "--png-scale must be positive, got %g", ro.pngScale)
	}
	if ro.output != "" {
		if err := errors.ValidatePath(ro.output); err != nil {
			return err
		}
	}

	opts.Formats = formats
	opts.VizType = ro.vizType
	opts.Hover = ro.hover
	opts.PNGScale = ro.pngScale
	if ro.title != "" {
		opts.Title = ro.title
	}
	if cmd.Flags().Changed("captions") {
		opts.Captions = ro.captions
	}
	return nil
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string) error {
	runner := pipeline.NewRunner(c.Logger)

	sp := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	sp.start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		sp.stopWithError("Render failed")
		return err
	}
	sp.stop()

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", StyleHighlight.Render(result.Topology.String()))
	printStats(result.Stats.Neurons, result.Stats.Connections, result.Stats.Shapes)
	for _, p := range paths {
		printFile(p)
	}
	if !opts.IsNodelink() && !slices.Contains(opts.Formats, pipeline.FormatSVG) {
		printNextStep("Interactive version", "netgraph render -f svg")
	}
	return nil
}

// outputPaths maps each format to its file path. A single format uses
// output as-is; several formats treat output as a base path.
func outputPaths(formats []string, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath strips a known format extension from output, or returns the
// default stem when output is empty.
func basePath(output string) string {
	if output == "" {
		return defaultOutputBase
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes each artifact to its output path in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) ([]string, error) {
	paths := outputPaths(formats, output)
	written := make([]string, 0, len(formats))
	for _, f := range formats {
		path := paths[f]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return written, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
