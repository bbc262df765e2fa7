package raster

import (
	"image/color"
	"testing"

	"github.com/matzehuels/netgraph/pkg/canvas"
)

func TestFrameRepaintsOnChange(t *testing.T) {
	s := canvas.NewScene(10, 10)
	h, _ := s.CreateRect(0, 0, 10, 10, canvas.Style{Fill: red})
	f := NewFrame(newRenderer(t), s)

	img, repainted := f.Image()
	if !repainted {
		t.Fatal("first call should paint")
	}
	if !near(img.RGBAAt(5, 5), red) {
		t.Fatalf("pixel = %v, want red", img.RGBAAt(5, 5))
	}

	if _, repainted := f.Image(); repainted {
		t.Error("unchanged scene repainted")
	}

	s.SetFill(h, color.RGBA{0, 0, 255, 255})
	img, repainted = f.Image()
	if !repainted {
		t.Fatal("changed scene not repainted")
	}
	if got := img.RGBAAt(5, 5); !near(got, color.RGBA{0, 0, 255, 255}) {
		t.Errorf("pixel = %v, want blue", got)
	}
}

func TestFrameSize(t *testing.T) {
	s := canvas.NewScene(10.5, 4)
	f := NewFrame(newRenderer(t, WithScale(2)), s)
	if w, h := f.Size(); w != 21 || h != 8 {
		t.Errorf("Size() = %dx%d, want 21x8", w, h)
	}
	img, _ := f.Image()
	if b := img.Bounds(); b.Dx() != 21 || b.Dy() != 8 {
		t.Errorf("image = %v, want 21x8", b)
	}
}
