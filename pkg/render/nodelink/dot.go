package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/netgraph/pkg/diagram"
	"github.com/matzehuels/netgraph/pkg/render"
	"github.com/matzehuels/netgraph/pkg/topology"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed labels neurons with their full "layer:index" identity.
	// When false, only the index is shown.
	Detailed bool
}

// ToDOT converts a drawn renderer to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(r *diagram.Renderer, opts Options) string {
	p := r.Palette()
	l := r.Layout()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  splines=line;\n")
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fillcolor=%q, color=%q, fontsize=10, width=0.4, fixedsize=true];\n",
		hex(p.Neuron), hex(p.NeuronOutline))
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("  ranksep=1.5;\n")
	buf.WriteString("  nodesep=0.1;\n")
	buf.WriteString("\n")

	for _, b := range l.Bands {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", b.Layer)
		fmt.Fprintf(&buf, "    label=%q;\n", b.Label+"\n"+b.Caption)
		fmt.Fprintf(&buf, "    style=filled;\n    color=%q;\n", hex(p.BandColor(b)))
		for _, n := range l.Layers[b.Layer] {
			fmt.Fprintf(&buf, "    %s [label=%q];\n", nodeName(n.ID), fmtLabel(n.ID, opts.Detailed))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, id := range r.Connections() {
		c, ok := r.ConnectionColor(id)
		if !ok {
			c = p.Connection
		}
		fmt.Fprintf(&buf, "  %s -> %s [color=%q];\n", nodeName(id.Source()), nodeName(id.Dest()), hex(c))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(n topology.NeuronID) string {
	return fmt.Sprintf("n%d_%d", n.Layer, n.Index)
}

func fmtLabel(n topology.NeuronID, detailed bool) string {
	if detailed {
		return n.String()
	}
	return strconv.Itoa(n.Index)
}

func hex(c interface{ RGBA() (r, g, b, a uint32) }) string {
	cc, _ := colorful.MakeColor(c)
	return cc.Hex()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
