// Package canvas defines the 2D drawing surface the diagram renderer draws on
// and provides [Scene], an in-memory implementation of it.
//
// # Surface
//
// [Surface] is the contract between the renderer and whatever displays the
// result. It mirrors a retained-mode canvas: shapes are created once, get a
// [Handle], and are later restyled, raised or lowered by handle. Pointer
// listeners are bound per handle.
//
// # Scene
//
// [Scene] keeps shapes in a display list ordered bottom to top. Exporters in
// pkg/render walk [Scene.Shapes] to produce SVG, PNG and PDF output, and the
// interactive window rasterizes it every time [Scene.Version] changes.
//
// Pointer dispatch follows "current item" semantics: [Scene.Pointer] finds
// the topmost shape under the pointer that is not disabled, and when that
// shape changes it sends PointerLeave to the old one and PointerEnter to the
// new one. Only one shape is current at a time.
//
// A Scene is not safe for concurrent use. The owning event loop is its only
// mutator.
package canvas
