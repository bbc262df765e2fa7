package canvas

import "image/color"

// Handle identifies a shape on a surface. The zero Handle names no shape.
type Handle int

// Kind is the geometric type of a shape.
type Kind int

const (
	KindOval Kind = iota + 1
	KindLine
	KindRect
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindOval:
		return "oval"
	case KindLine:
		return "line"
	case KindRect:
		return "rect"
	case KindText:
		return "text"
	}
	return "unknown"
}

// Style holds the mutable and descriptive attributes of a shape.
type Style struct {
	// Fill is the interior color of ovals and rectangles, the stroke color of
	// lines and the glyph color of text.
	Fill color.RGBA
	// Outline is the border color of ovals and rectangles. A zero alpha
	// draws no border.
	Outline color.RGBA
	// Width is the border width of ovals and rectangles and the stroke width
	// of lines.
	Width float64
	// FontSize is the text size in pixels. Zero selects DefaultFontSize.
	FontSize float64
	// Disabled shapes are drawn but never become the current item.
	Disabled bool
	// Class and Data annotate shapes for exporters (SVG class and data-* attributes).
	Class string
	Data  map[string]string
}

// DefaultFontSize is used for text whose style leaves FontSize unset.
const DefaultFontSize = 12.0

// Shape is a snapshot of one display list entry.
type Shape struct {
	Handle Handle
	Kind   Kind
	// X0,Y0,X1,Y1 is the bounding box of ovals and rectangles and the
	// endpoints of lines. Text is centered on X0,Y0.
	X0, Y0, X1, Y1 float64
	Text           string
	Style
}

// PointerListener receives pointer transitions for one bound shape.
type PointerListener interface {
	PointerEnter() error
	PointerLeave() error
}

// Surface is a retained-mode 2D drawing surface.
type Surface interface {
	// SetSize sets the drawable area in pixels.
	SetSize(width, height float64)

	CreateOval(x0, y0, x1, y1 float64, s Style) (Handle, error)
	CreateLine(x0, y0, x1, y1 float64, s Style) (Handle, error)
	CreateRect(x0, y0, x1, y1 float64, s Style) (Handle, error)
	CreateText(x, y float64, text string, s Style) (Handle, error)

	SetFill(h Handle, c color.RGBA) error
	SetWidth(h Handle, w float64) error

	// Raise moves a shape to the top of the display list, Lower to the bottom.
	Raise(h Handle) error
	Lower(h Handle) error

	// Clear removes every shape and binding.
	Clear() error

	// Bind attaches l to the pointer transitions of h, replacing any
	// previous listener.
	Bind(h Handle, l PointerListener) error
}
