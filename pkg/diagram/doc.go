// Package diagram draws a network topology onto a [canvas.Surface] and
// drives its hover interaction.
//
// # Drawing
//
// [Renderer.Draw] creates, in order:
//
//  1. One oval per neuron, bound to a per-neuron pointer listener.
//  2. One line per connection, each lowered beneath everything drawn so
//     far, then colored from the renderer's [weights.Source].
//  3. One background band per layer with a label and a neuron count
//     caption; the band rectangles are lowered to the very bottom.
//
// # Hover
//
// Entering a neuron paints it with the hover color, widens every incident
// connection to 2px (keeping its weight color), dims and lowers every other
// connection, and lowers the bands again so they stay underneath. Leaving
// a neuron restores the neuron fill and gives every connection back its
// weight color (or the default line color) at 1px.
//
// The renderer does not enforce that only one neuron is hovered. Exclusivity
// comes from the surface: [canvas.Scene] has a single current item.
//
// # Registries
//
// The renderer owns every handle-to-identity map. Nothing is global, and
// each neuron's listener carries its own identity instead of capturing loop
// variables.
package diagram
