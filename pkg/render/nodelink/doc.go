// Package nodelink renders a network topology as a Graphviz node-link diagram.
//
// # Overview
//
// This is an alternative to the band diagram: each layer becomes a
// Graphviz cluster filled with the band color, neurons become circles and
// connections become edges colored by weight. Graphviz decides the
// placement, so large layers stay readable without the fixed canvas.
//
// # Usage
//
// Convert a drawn renderer to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(r, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: label neurons with "layer:index" instead of the bare index
//
// The generated DOT uses left-to-right layout (rankdir=LR), matching the
// band diagram's orientation.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
