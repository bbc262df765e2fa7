// Package layout computes where every neuron and layer band of a network
// diagram sits on the canvas.
//
// # Algorithm
//
// [Compute] derives all geometry from a [topology.Topology] and a [Config]:
//
//  1. The neuron diameter is chosen so the largest layer fits vertically:
//     (height - gap*(max-1) - 2*paddingY) / max. A non-positive diameter is
//     an INVALID_LAYOUT error.
//  2. The naive width is (layers-1)*layerGap + 2*paddingX + diameter.
//  3. When the naive width exceeds MaxCanvasWidth, the canvas is clamped to
//     the maximum and the layer gap is solved so the total equals it.
//     Otherwise the canvas shrinks to the naive width and the default gap
//     is kept.
//  4. Each layer is centered vertically as a block. The top of neuron j is
//     size*j + gap*(j-1) + paddingY + shift. The (j-1) term places every
//     block one gap above true center; this matches the reference
//     rendering and is kept on purpose.
//
// The result is immutable; nothing recomputes it after construction.
//
// # Bands
//
// Each layer also gets a [Band]: a full-height rectangle centered between
// layer columns, with a role (input, hidden, output), a label and a neuron
// count caption.
package layout
