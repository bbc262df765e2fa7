package weights

import (
	"image/color"
	"math"
)

// DefaultScale is the weight magnitude that saturates a color channel.
const DefaultScale = 2.0

// Color maps w onto the red/green diverging scale. A non-positive scale
// falls back to DefaultScale.
func Color(w, scale float64) color.RGBA {
	if scale <= 0 {
		scale = DefaultScale
	}
	return color.RGBA{
		R: channel(255 * (w / scale)),
		G: channel(255 * -(w / scale)),
		B: 0,
		A: 0xff,
	}
}

// channel truncates toward zero like an int conversion and clamps to [0, 255].
// Clamping happens before the conversion so infinities cannot wrap around.
func channel(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
