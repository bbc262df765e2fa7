package raster

import (
	"image"
	"math"

	"github.com/matzehuels/netgraph/pkg/canvas"
)

// Frame caches the rasterized image of a scene and repaints only after the
// scene's version changes.
type Frame struct {
	renderer *Renderer
	scene    *canvas.Scene
	img      *image.RGBA
	version  uint64
	valid    bool
}

// NewFrame returns a frame that paints scene with r.
func NewFrame(r *Renderer, scene *canvas.Scene) *Frame {
	return &Frame{renderer: r, scene: scene}
}

// Image returns the current image and whether it was repainted by this call.
func (f *Frame) Image() (*image.RGBA, bool) {
	if f.valid && f.scene.Version() == f.version {
		return f.img, false
	}

	w, h := f.scene.Size()
	s := f.renderer.Scale()
	bounds := image.Rect(0, 0, max(int(math.Ceil(w*s)), 1), max(int(math.Ceil(h*s)), 1))
	if f.img == nil || f.img.Bounds() != bounds {
		f.img = image.NewRGBA(bounds)
	}
	f.renderer.RenderInto(f.img, f.scene.Shapes())
	f.version = f.scene.Version()
	f.valid = true
	return f.img, true
}

// Size returns the frame size in pixels for the scene's current dimensions.
func (f *Frame) Size() (width, height int) {
	w, h := f.scene.Size()
	s := f.renderer.Scale()
	return max(int(math.Ceil(w*s)), 1), max(int(math.Ceil(h*s)), 1)
}
