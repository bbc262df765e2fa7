package diagram

import (
	"image/color"

	"github.com/matzehuels/netgraph/pkg/layout"
)

// Palette holds every color the diagram uses.
type Palette struct {
	Neuron           color.RGBA
	NeuronHover      color.RGBA
	NeuronOutline    color.RGBA
	Connection       color.RGBA // line color before a weight is assigned
	ConnectionDimmed color.RGBA
	InputLayer       color.RGBA
	OutputLayer      color.RGBA
	HiddenLayers     [2]color.RGBA // alternated by layer parity
	Text             color.RGBA
}

// DefaultPalette returns the colors of the reference rendering.
func DefaultPalette() Palette {
	return Palette{
		Neuron:           color.RGBA{0xff, 0xff, 0xff, 0xff}, // white
		NeuronHover:      color.RGBA{0xff, 0xa5, 0x00, 0xff}, // orange
		NeuronOutline:    color.RGBA{0x00, 0x00, 0x00, 0xff},
		Connection:       color.RGBA{0x00, 0x00, 0x00, 0xff}, // black
		ConnectionDimmed: color.RGBA{0xd3, 0xd3, 0xd3, 0xff}, // light grey
		InputLayer:       color.RGBA{0xde, 0xed, 0xdc, 0xff},
		OutputLayer:      color.RGBA{0xea, 0xda, 0xda, 0xff},
		HiddenLayers: [2]color.RGBA{
			{0xff, 0xff, 0xff, 0xff},
			{0xf4, 0xf4, 0xf4, 0xff},
		},
		Text: color.RGBA{0x00, 0x00, 0x00, 0xff},
	}
}

// BandColor returns the background color of b.
func (p Palette) BandColor(b layout.Band) color.RGBA {
	switch b.Role {
	case layout.RoleInput:
		return p.InputLayer
	case layout.RoleOutput:
		return p.OutputLayer
	default:
		return p.HiddenLayers[b.Parity]
	}
}
