// Package raster paints a canvas display list into an [image.RGBA].
//
// Shapes are filled with golang.org/x/image/vector, ellipses as four cubic
// Bézier arcs and strokes as quads. Text is drawn with the Go Regular
// TrueType face through freetype, centered on its anchor like the canvas
// hit-testing assumes.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/matzehuels/netgraph/pkg/canvas"
)

// kappa places cubic control points so four arcs approximate a circle.
const kappa = 0.5522847498

// Option configures a [Renderer].
type Option func(*Renderer)

// WithScale multiplies every coordinate, producing a larger image.
func WithScale(s float64) Option {
	return func(r *Renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithBackground sets the color painted under every shape. The default is white.
func WithBackground(c color.Color) Option { return func(r *Renderer) { r.background = c } }

// Renderer rasterizes shapes. It is safe for concurrent use; glyph
// drawing is serialized because faces cache glyphs.
type Renderer struct {
	scale      float64
	background color.Color
	font       *truetype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// New parses the embedded font and returns a renderer.
func New(opts ...Option) (*Renderer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	r := &Renderer{
		scale:      1,
		background: color.White,
		font:       f,
		faces:      make(map[float64]font.Face),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Scale returns the coordinate multiplier.
func (r *Renderer) Scale() float64 { return r.scale }

// RenderScene rasterizes the current contents of s.
func (r *Renderer) RenderScene(s *canvas.Scene) *image.RGBA {
	w, h := s.Size()
	return r.Render(s.Shapes(), w, h)
}

// Render rasterizes shapes, bottom to top, onto a new width x height image.
func (r *Renderer) Render(shapes []canvas.Shape, width, height float64) *image.RGBA {
	w := int(math.Ceil(width * r.scale))
	h := int(math.Ceil(height * r.scale))
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	r.RenderInto(dst, shapes)
	return dst
}

// RenderInto clears dst to the background and paints shapes onto it.
func (r *Renderer) RenderInto(dst *image.RGBA, shapes []canvas.Shape) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)

	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	for _, sh := range shapes {
		switch sh.Kind {
		case canvas.KindOval:
			r.oval(dst, z, sh)
		case canvas.KindLine:
			r.line(dst, z, sh)
		case canvas.KindRect:
			r.rect(dst, z, sh)
		case canvas.KindText:
			r.text(dst, sh)
		}
	}
}

func visible(c color.RGBA) bool { return c.A > 0 }

func fill(dst *image.RGBA, z *vector.Rasterizer, c color.RGBA) {
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

func (r *Renderer) oval(dst *image.RGBA, z *vector.Rasterizer, sh canvas.Shape) {
	s := r.scale
	cx, cy := (sh.X0+sh.X1)/2*s, (sh.Y0+sh.Y1)/2*s
	rx, ry := math.Abs(sh.X1-sh.X0)/2*s, math.Abs(sh.Y1-sh.Y0)/2*s

	if visible(sh.Style.Fill) {
		b := dst.Bounds()
		z.Reset(b.Dx(), b.Dy())
		ellipse(z, cx, cy, rx, ry, false)
		fill(dst, z, sh.Style.Fill)
	}
	if visible(sh.Style.Outline) && sh.Style.Width > 0 {
		half := sh.Style.Width * s / 2
		b := dst.Bounds()
		z.Reset(b.Dx(), b.Dy())
		ellipse(z, cx, cy, rx+half, ry+half, false)
		if rx > half && ry > half {
			ellipse(z, cx, cy, rx-half, ry-half, true)
		}
		fill(dst, z, sh.Style.Outline)
	}
}

// path adapts float64 coordinates to the rasterizer's float32 API.
type path struct{ z *vector.Rasterizer }

func (p path) moveTo(x, y float64) { p.z.MoveTo(float32(x), float32(y)) }
func (p path) lineTo(x, y float64) { p.z.LineTo(float32(x), float32(y)) }
func (p path) cubeTo(bx, by, cx, cy, x, y float64) {
	p.z.CubeTo(float32(bx), float32(by), float32(cx), float32(cy), float32(x), float32(y))
}
func (p path) close() { p.z.ClosePath() }

// ellipse adds a closed elliptical path. reverse flips the winding so the
// path cuts a hole out of an enclosing one.
func ellipse(z *vector.Rasterizer, cx, cy, rx, ry float64, reverse bool) {
	kx, ky := rx*kappa, ry*kappa
	if reverse {
		ky = -ky
		ry = -ry
	}
	p := path{z}
	p.moveTo(cx+rx, cy)
	p.cubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	p.cubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	p.cubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	p.cubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	p.close()
}

func (r *Renderer) line(dst *image.RGBA, z *vector.Rasterizer, sh canvas.Shape) {
	if !visible(sh.Style.Fill) {
		return
	}
	s := r.scale
	x0, y0, x1, y1 := sh.X0*s, sh.Y0*s, sh.X1*s, sh.Y1*s
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	half := math.Max(sh.Style.Width, 1) * s / 2
	nx, ny := -dy/length*half, dx/length*half

	b := dst.Bounds()
	z.Reset(b.Dx(), b.Dy())
	p := path{z}
	p.moveTo(x0+nx, y0+ny)
	p.lineTo(x1+nx, y1+ny)
	p.lineTo(x1-nx, y1-ny)
	p.lineTo(x0-nx, y0-ny)
	p.close()
	fill(dst, z, sh.Style.Fill)
}

func (r *Renderer) rect(dst *image.RGBA, z *vector.Rasterizer, sh canvas.Shape) {
	s := r.scale
	x0, y0 := math.Min(sh.X0, sh.X1)*s, math.Min(sh.Y0, sh.Y1)*s
	x1, y1 := math.Max(sh.X0, sh.X1)*s, math.Max(sh.Y0, sh.Y1)*s
	b := dst.Bounds()

	if visible(sh.Style.Fill) {
		z.Reset(b.Dx(), b.Dy())
		box(z, x0, y0, x1, y1, false)
		fill(dst, z, sh.Style.Fill)
	}
	if visible(sh.Style.Outline) && sh.Style.Width > 0 {
		half := sh.Style.Width * s / 2
		z.Reset(b.Dx(), b.Dy())
		box(z, x0-half, y0-half, x1+half, y1+half, false)
		if x1-x0 > 2*half && y1-y0 > 2*half {
			box(z, x0+half, y0+half, x1-half, y1-half, true)
		}
		fill(dst, z, sh.Style.Outline)
	}
}

func box(z *vector.Rasterizer, x0, y0, x1, y1 float64, reverse bool) {
	p := path{z}
	p.moveTo(x0, y0)
	if reverse {
		p.lineTo(x0, y1)
		p.lineTo(x1, y1)
		p.lineTo(x1, y0)
	} else {
		p.lineTo(x1, y0)
		p.lineTo(x1, y1)
		p.lineTo(x0, y1)
	}
	p.close()
}

// face must be called with mu held.
func (r *Renderer) face(size float64) font.Face {
	if f, ok := r.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(r.font, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	r.faces[size] = f
	return f
}

func (r *Renderer) text(dst *image.RGBA, sh canvas.Shape) {
	if sh.Text == "" || !visible(sh.Style.Fill) {
		return
	}
	size := sh.Style.FontSize
	if size <= 0 {
		size = canvas.DefaultFontSize
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	face := r.face(size * r.scale)

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(sh.Style.Fill), Face: face}
	width := d.MeasureString(sh.Text)
	m := face.Metrics()

	x := fixed.Int26_6(sh.X0*r.scale*64) - width/2
	y := fixed.Int26_6(sh.Y0*r.scale*64) + (m.Ascent-m.Descent)/2
	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(sh.Text)
}
