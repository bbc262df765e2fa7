package layout

import (
	"fmt"

	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/topology"
)

const (
	// DefaultCanvasHeight is the fixed canvas height in pixels.
	DefaultCanvasHeight = 500.0

	// DefaultMaxCanvasWidth caps the canvas width; wider networks squeeze their layer gap.
	DefaultMaxCanvasWidth = 1000.0

	// DefaultPaddingX is the horizontal padding on each side of the neuron columns.
	DefaultPaddingX = 40.0

	// DefaultPaddingY is the vertical padding above and below the tallest layer.
	DefaultPaddingY = 40.0

	// DefaultLayerGap is the horizontal distance between layer columns.
	DefaultLayerGap = 150.0

	// DefaultNeuronGap is the vertical distance between neurons of a layer.
	DefaultNeuronGap = 5.0

	// LabelOffset is the distance of the band label from the canvas top.
	LabelOffset = 15.0

	// CaptionOffset is the distance of the band caption from the canvas bottom.
	CaptionOffset = 20.0
)

// Config holds the fixed dimensions the layout is derived from.
type Config struct {
	CanvasHeight   float64 `toml:"height" json:"height"`
	MaxCanvasWidth float64 `toml:"max_width" json:"max_width"`
	PaddingX       float64 `toml:"padding_x" json:"padding_x"`
	PaddingY       float64 `toml:"padding_y" json:"padding_y"`
	LayerGap       float64 `toml:"layer_gap" json:"layer_gap"`
	NeuronGap      float64 `toml:"neuron_gap" json:"neuron_gap"`
}

// DefaultConfig returns the dimensions of the reference rendering.
func DefaultConfig() Config {
	return Config{
		CanvasHeight:   DefaultCanvasHeight,
		MaxCanvasWidth: DefaultMaxCanvasWidth,
		PaddingX:       DefaultPaddingX,
		PaddingY:       DefaultPaddingY,
		LayerGap:       DefaultLayerGap,
		NeuronGap:      DefaultNeuronGap,
	}
}

// Validate checks that every dimension is usable.
func (c Config) Validate() error {
	switch {
	case c.CanvasHeight <= 0:
		return errors.New(errors.ErrCodeInvalidLayout, "canvas height must be positive, got %g", c.CanvasHeight)
	case c.MaxCanvasWidth <= 0:
		return errors.New(errors.ErrCodeInvalidLayout, "max canvas width must be positive, got %g", c.MaxCanvasWidth)
	case c.PaddingX < 0 || c.PaddingY < 0:
		return errors.New(errors.ErrCodeInvalidLayout, "padding must not be negative")
	case c.LayerGap <= 0:
		return errors.New(errors.ErrCodeInvalidLayout, "layer gap must be positive, got %g", c.LayerGap)
	case c.NeuronGap < 0:
		return errors.New(errors.ErrCodeInvalidLayout, "neuron gap must not be negative, got %g", c.NeuronGap)
	}
	return nil
}

// Layout is the computed geometry of a diagram.
type Layout struct {
	Config

	NeuronSize float64 // diameter of every neuron
	LayerGap   float64 // solved horizontal distance between layer columns
	Width      float64 // canvas width
	Height     float64 // canvas height

	Layers [][]Neuron
	Bands  []Band
}

// Neuron is a positioned neuron. X and Y are its top-left corner.
type Neuron struct {
	ID   topology.NeuronID
	X, Y float64
	Size float64
}

// Center returns the center point of the neuron.
func (n Neuron) Center() (x, y float64) { return n.X + n.Size/2, n.Y + n.Size/2 }

// Bounds returns the bounding box of the neuron.
func (n Neuron) Bounds() (x0, y0, x1, y1 float64) { return n.X, n.Y, n.X + n.Size, n.Y + n.Size }

// Compute derives the layout of t under cfg.
func Compute(t topology.Topology, cfg Config) (Layout, error) {
	if t.Len() == 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidTopology, "topology needs at least one layer")
	}
	if err := cfg.Validate(); err != nil {
		return Layout{}, err
	}

	largest := float64(t.Max())
	size := (cfg.CanvasHeight - cfg.NeuronGap*(largest-1) - 2*cfg.PaddingY) / largest
	if size <= 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidLayout,
			"%d neurons do not fit in a %g px canvas (neuron size %.2f)", t.Max(), cfg.CanvasHeight, size)
	}

	l := Layout{
		Config:     cfg,
		NeuronSize: size,
		LayerGap:   cfg.LayerGap,
		Height:     cfg.CanvasHeight,
	}

	naive := naiveWidth(t.Len(), cfg.LayerGap, cfg.PaddingX, size)
	if naive > cfg.MaxCanvasWidth && t.Len() > 1 {
		l.Width = cfg.MaxCanvasWidth
		l.LayerGap = (cfg.MaxCanvasWidth - 2*cfg.PaddingX - size) / float64(t.Len()-1)
		if l.LayerGap <= 0 {
			return Layout{}, errors.New(errors.ErrCodeInvalidLayout,
				"%d layers do not fit in a %g px canvas", t.Len(), cfg.MaxCanvasWidth)
		}
	} else {
		l.Width = naive
	}

	l.Layers = make([][]Neuron, t.Len())
	for i := range t.Len() {
		l.Layers[i] = l.column(i, t.Size(i))
	}
	l.Bands = buildBands(t, l)
	return l, nil
}

func naiveWidth(layers int, gap, paddingX, size float64) float64 {
	return float64(layers-1)*gap + 2*paddingX + size
}

// column positions the n neurons of layer i.
func (l Layout) column(i, n int) []Neuron {
	fn := float64(n)
	shift := (l.CanvasHeight - (l.NeuronSize*fn + l.NeuronGap*(fn-1)) - 2*l.PaddingY) / 2
	x := l.LayerGap*float64(i) + l.PaddingX

	out := make([]Neuron, n)
	for j := range n {
		fj := float64(j)
		out[j] = Neuron{
			ID:   topology.NeuronID{Layer: i, Index: j},
			X:    x,
			Y:    l.NeuronSize*fj + l.NeuronGap*(fj-1) + l.PaddingY + shift,
			Size: l.NeuronSize,
		}
	}
	return out
}

// NaiveWidth recomputes the total width using the solved layer gap. It equals
// Width for every layout Compute returns.
func (l Layout) NaiveWidth() float64 {
	return naiveWidth(len(l.Layers), l.LayerGap, l.PaddingX, l.NeuronSize)
}

// Neuron returns the positioned neuron id.
func (l Layout) Neuron(id topology.NeuronID) (Neuron, error) {
	if id.Layer < 0 || id.Layer >= len(l.Layers) || id.Index < 0 || id.Index >= len(l.Layers[id.Layer]) {
		return Neuron{}, errors.New(errors.ErrCodeNeuronNotFound, "no neuron %s in layout", id)
	}
	return l.Layers[id.Layer][id.Index], nil
}

// Segment returns the center-to-center endpoints of connection c.
func (l Layout) Segment(c topology.ConnectionID) (x0, y0, x1, y1 float64, err error) {
	src, err := l.Neuron(c.Source())
	if err != nil {
		return 0, 0, 0, 0, err
	}
	dst, err := l.Neuron(c.Dest())
	if err != nil {
		return 0, 0, 0, 0, err
	}
	x0, y0 = src.Center()
	x1, y1 = dst.Center()
	return x0, y0, x1, y1, nil
}

// NeuronCount returns the number of positioned neurons.
func (l Layout) NeuronCount() int {
	total := 0
	for _, layer := range l.Layers {
		total += len(layer)
	}
	return total
}

// String summarizes the layout parameters.
func (l Layout) String() string {
	return fmt.Sprintf("%d layers, neuron %.2fpx, layer gap %.2fpx, canvas %.0fx%.0f",
		len(l.Layers), l.NeuronSize, l.LayerGap, l.Width, l.Height)
}
