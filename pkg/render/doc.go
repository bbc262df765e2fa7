// Package render provides export formats for network diagrams.
//
// # Overview
//
// A diagram is first drawn into a [canvas.Scene] by [diagram.Renderer]. The
// subpackages turn that scene into files:
//
//   - [sink]: interactive SVG, PNG, PDF and JSON
//   - [raster]: the native rasterizer behind PNG export and the window
//   - [nodelink]: a Graphviz view of the topology as clustered nodes
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg). PDF export always goes through it; PNG export of the
// diagram view uses [raster] instead, so only the node-link view needs
// rsvg-convert for PNG.
//
//	svg := sink.RenderSVG(scene, sink.WithRenderer(r))
//	pdf, err := render.ToPDF(ctx, svg)
//
// [canvas.Scene]: github.com/matzehuels/netgraph/pkg/canvas.Scene
// [diagram.Renderer]: github.com/matzehuels/netgraph/pkg/diagram.Renderer
// [sink]: github.com/matzehuels/netgraph/pkg/render/sink
// [raster]: github.com/matzehuels/netgraph/pkg/render/raster
// [nodelink]: github.com/matzehuels/netgraph/pkg/render/nodelink
package render
