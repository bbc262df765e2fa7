// Package sink provides output format renderers for drawn network diagrams.
//
// # Overview
//
// A "sink" transforms a drawn [canvas.Scene] into a final output format.
// This package provides renderers for:
//
//   - SVG: vector graphics with the hover interaction embedded as a script
//   - PNG: raster image output through the native rasterizer
//   - PDF: print-ready output (requires rsvg-convert)
//   - JSON: layout and connection colors for external tools
//
// # SVG Output
//
// [RenderSVG] writes every shape in stacking order. With [WithRenderer] the
// output carries each connection's weight color so the embedded script can
// replay the hover behavior in a browser: entering a neuron paints it,
// widens its incident lines, dims and lowers the rest, and lowers the bands.
//
//	svg := sink.RenderSVG(scene,
//	    sink.WithRenderer(r),
//	    sink.WithTitle("Neural Network Graph"),
//	)
//
// Each document is wrapped in a group with a unique id (see
// [WithDocumentID]) and the script only touches elements under it, so
// several diagrams can share an HTML page.
//
// # PNG and PDF Output
//
//	png, err := sink.RenderPNG(scene, sink.WithScale(2))
//	pdf, err := sink.RenderPDF(ctx, scene, sink.WithPDFSVGOptions(sink.WithRenderer(r)))
//
// PDF conversion requires librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// # JSON Output
//
// [RenderJSON] exports neuron positions, connection segments and colors, and
// band geometry. It is a one-way export; nothing reads it back.
//
// [canvas.Scene]: github.com/matzehuels/netgraph/pkg/canvas.Scene
package sink
