package canvas

import "math"

// closeEnough is the extra distance in pixels within which a thin line or
// border still counts as hit.
const closeEnough = 1.0

// HitTest returns the topmost enabled shape containing x, y, or zero.
func (s *Scene) HitTest(x, y float64) Handle {
	for i := len(s.order) - 1; i >= 0; i-- {
		sh := s.shapes[s.order[i]]
		if !sh.Disabled && sh.Contains(x, y) {
			return sh.Handle
		}
	}
	return 0
}

// Contains reports whether x, y lies on the shape.
func (sh Shape) Contains(x, y float64) bool {
	switch sh.Kind {
	case KindOval:
		return ovalContains(sh, x, y)
	case KindRect:
		x0, x1 := min(sh.X0, sh.X1), max(sh.X0, sh.X1)
		y0, y1 := min(sh.Y0, sh.Y1), max(sh.Y0, sh.Y1)
		if sh.Fill.A == 0 && sh.Outline.A == 0 {
			return false
		}
		return x >= x0 && x <= x1 && y >= y0 && y <= y1
	case KindLine:
		return segmentDistance(x, y, sh.X0, sh.Y0, sh.X1, sh.Y1) <= max(sh.Width, 1)/2+closeEnough
	case KindText:
		w, h := TextExtent(sh.Text, sh.FontSize)
		return math.Abs(x-sh.X0) <= w/2 && math.Abs(y-sh.Y0) <= h/2
	}
	return false
}

func ovalContains(sh Shape, x, y float64) bool {
	pad := sh.Width / 2
	rx := math.Abs(sh.X1-sh.X0)/2 + pad
	ry := math.Abs(sh.Y1-sh.Y0)/2 + pad
	if rx == 0 || ry == 0 {
		return false
	}
	cx, cy := (sh.X0+sh.X1)/2, (sh.Y0+sh.Y1)/2
	dx, dy := (x-cx)/rx, (y-cy)/ry
	return dx*dx+dy*dy <= 1
}

func segmentDistance(px, py, x0, y0, x1, y1 float64) float64 {
	dx, dy := x1-x0, y1-y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-x0, py-y0)
	}
	t := ((px-x0)*dx + (py-y0)*dy) / lenSq
	t = max(0, min(1, t))
	return math.Hypot(px-(x0+t*dx), py-(y0+t*dy))
}

// TextExtent estimates the box a single-line label occupies. Exact metrics
// depend on the font a sink uses; this approximation only drives hit testing.
func TextExtent(text string, fontSize float64) (width, height float64) {
	if fontSize == 0 {
		fontSize = DefaultFontSize
	}
	n := 0
	for range text {
		n++
	}
	return float64(n) * fontSize * 0.55, fontSize * 1.2
}
