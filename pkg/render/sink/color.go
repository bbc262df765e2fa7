package sink

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// hex formats c as #rrggbb, ignoring alpha.
func hex(c color.RGBA) string {
	cc, _ := colorful.MakeColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	return cc.Hex()
}

// paint returns the SVG paint and opacity attributes for c.
func paint(c color.RGBA) (value string, opacity float64) {
	if c.A == 0 {
		return "none", 1
	}
	return hex(c), float64(c.A) / 255
}
