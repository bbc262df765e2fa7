package canvas

import (
	"fmt"
	"image/color"
	"maps"
	"slices"

	"github.com/matzehuels/netgraph/pkg/errors"
)

// Scene is an in-memory [Surface] backed by a display list.
type Scene struct {
	width, height float64

	next      Handle
	order     []Handle // bottom to top
	shapes    map[Handle]*Shape
	listeners map[Handle]PointerListener

	current Handle
	version uint64
}

// NewScene returns an empty scene of the given size.
func NewScene(width, height float64) *Scene {
	return &Scene{
		width:     width,
		height:    height,
		shapes:    make(map[Handle]*Shape),
		listeners: make(map[Handle]PointerListener),
	}
}

// Ensure Scene implements Surface.
var _ Surface = (*Scene)(nil)

func (s *Scene) SetSize(width, height float64) {
	s.width, s.height = width, height
	s.version++
}

// Size returns the drawable area.
func (s *Scene) Size() (width, height float64) { return s.width, s.height }

// Version increases on every change to the scene's appearance.
func (s *Scene) Version() uint64 { return s.version }

// Len returns the number of shapes.
func (s *Scene) Len() int { return len(s.order) }

func (s *Scene) CreateOval(x0, y0, x1, y1 float64, st Style) (Handle, error) {
	return s.add(Shape{Kind: KindOval, X0: x0, Y0: y0, X1: x1, Y1: y1, Style: st}), nil
}

func (s *Scene) CreateLine(x0, y0, x1, y1 float64, st Style) (Handle, error) {
	return s.add(Shape{Kind: KindLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Style: st}), nil
}

func (s *Scene) CreateRect(x0, y0, x1, y1 float64, st Style) (Handle, error) {
	return s.add(Shape{Kind: KindRect, X0: x0, Y0: y0, X1: x1, Y1: y1, Style: st}), nil
}

func (s *Scene) CreateText(x, y float64, text string, st Style) (Handle, error) {
	if st.FontSize == 0 {
		st.FontSize = DefaultFontSize
	}
	return s.add(Shape{Kind: KindText, X0: x, Y0: y, X1: x, Y1: y, Text: text, Style: st}), nil
}

func (s *Scene) add(sh Shape) Handle {
	s.next++
	sh.Handle = s.next
	sh.Data = maps.Clone(sh.Data)
	s.shapes[sh.Handle] = &sh
	s.order = append(s.order, sh.Handle)
	s.version++
	return sh.Handle
}

func (s *Scene) lookup(h Handle) (*Shape, error) {
	sh, ok := s.shapes[h]
	if !ok {
		return nil, errors.New(errors.ErrCodeShapeNotFound, "no shape with handle %d", h)
	}
	return sh, nil
}

func (s *Scene) SetFill(h Handle, c color.RGBA) error {
	sh, err := s.lookup(h)
	if err != nil {
		return err
	}
	if sh.Fill != c {
		sh.Fill = c
		s.version++
	}
	return nil
}

func (s *Scene) SetWidth(h Handle, w float64) error {
	sh, err := s.lookup(h)
	if err != nil {
		return err
	}
	if sh.Width != w {
		sh.Width = w
		s.version++
	}
	return nil
}

func (s *Scene) Raise(h Handle) error {
	if _, err := s.lookup(h); err != nil {
		return err
	}
	i := slices.Index(s.order, h)
	if i == len(s.order)-1 {
		return nil
	}
	s.order = append(slices.Delete(s.order, i, i+1), h)
	s.version++
	return nil
}

func (s *Scene) Lower(h Handle) error {
	if _, err := s.lookup(h); err != nil {
		return err
	}
	i := slices.Index(s.order, h)
	if i == 0 {
		return nil
	}
	s.order = slices.Insert(slices.Delete(s.order, i, i+1), 0, h)
	s.version++
	return nil
}

func (s *Scene) Clear() error {
	s.order = nil
	clear(s.shapes)
	clear(s.listeners)
	s.current = 0
	s.version++
	return nil
}

func (s *Scene) Bind(h Handle, l PointerListener) error {
	if _, err := s.lookup(h); err != nil {
		return err
	}
	if l == nil {
		delete(s.listeners, h)
		return nil
	}
	s.listeners[h] = l
	return nil
}

// Shape returns a snapshot of shape h.
func (s *Scene) Shape(h Handle) (Shape, bool) {
	sh, ok := s.shapes[h]
	if !ok {
		return Shape{}, false
	}
	return *sh, true
}

// Shapes returns snapshots of every shape, bottom to top.
func (s *Scene) Shapes() []Shape {
	out := make([]Shape, len(s.order))
	for i, h := range s.order {
		out[i] = *s.shapes[h]
	}
	return out
}

// Index returns the display list position of h (0 is the bottom), or -1.
func (s *Scene) Index(h Handle) int {
	return slices.Index(s.order, h)
}

// Current returns the shape the pointer is over, or zero.
func (s *Scene) Current() Handle { return s.current }

// Pointer moves the pointer to x, y and dispatches leave/enter when the
// current shape changes.
func (s *Scene) Pointer(x, y float64) error {
	return s.setCurrent(s.HitTest(x, y))
}

// PointerExit moves the pointer off the surface.
func (s *Scene) PointerExit() error {
	return s.setCurrent(0)
}

// Hover makes h the current shape as if the pointer had moved onto it.
func (s *Scene) Hover(h Handle) error {
	if h != 0 {
		if _, err := s.lookup(h); err != nil {
			return err
		}
	}
	return s.setCurrent(h)
}

func (s *Scene) setCurrent(h Handle) error {
	if h == s.current {
		return nil
	}
	prev := s.current
	s.current = h
	if l, ok := s.listeners[prev]; ok {
		if err := l.PointerLeave(); err != nil {
			return fmt.Errorf("pointer leave %d: %w", prev, err)
		}
	}
	if l, ok := s.listeners[h]; ok {
		if err := l.PointerEnter(); err != nil {
			return fmt.Errorf("pointer enter %d: %w", h, err)
		}
	}
	return nil
}
