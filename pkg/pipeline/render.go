package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/render/nodelink"
	"github.com/matzehuels/netgraph/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, drawn *Drawn, opts Options) (map[string][]byte, error) {
	if opts.IsNodelink() {
		return renderNodelink(ctx, drawn, opts)
	}
	return renderDiagram(ctx, drawn, opts)
}

// renderDiagram exports the band diagram.
func renderDiagram(ctx context.Context, drawn *Drawn, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(drawn, opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(drawn.Scene, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(drawn.Scene, sink.WithScale(opts.PNGScale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, drawn.Scene, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = renderJSON(drawn, opts)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(drawn.Renderer, nodelink.Options{Detailed: opts.Captions}))
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported diagram format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderNodelink exports the Graphviz view. The DOT source is generated once
// and shared by every format.
func renderNodelink(ctx context.Context, drawn *Drawn, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(drawn.Renderer, nodelink.Options{Detailed: opts.Captions})
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, 2*opts.PNGScale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		case FormatJSON:
			data, err = renderJSON(drawn, opts)
		case FormatDOT:
			data = []byte(dot)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func renderJSON(drawn *Drawn, opts Options) ([]byte, error) {
	jsonOpts := []sink.JSONOption{sink.WithJSONTitle(opts.Title), sink.WithJSONIndent()}
	if opts.Weights == nil && (opts.WeightSource == WeightsRandom || opts.WeightSource == "") {
		jsonOpts = append(jsonOpts, sink.WithJSONSeed(opts.SeedOrDefault()))
	}
	return sink.RenderJSON(drawn.Renderer, jsonOpts...)
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(drawn *Drawn, opts Options) []sink.SVGOption {
	return []sink.SVGOption{
		sink.WithRenderer(drawn.Renderer),
		sink.WithTitle(opts.Title),
	}
}
