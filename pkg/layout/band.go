package layout

import (
	"fmt"

	"github.com/matzehuels/netgraph/pkg/topology"
)

// Role says which palette entry a layer band uses.
type Role int

const (
	RoleInput Role = iota
	RoleHidden
	RoleOutput
)

func (r Role) String() string {
	switch r {
	case RoleInput:
		return "input"
	case RoleOutput:
		return "output"
	default:
		return "hidden"
	}
}

// Band is the background rectangle of one layer.
type Band struct {
	Layer   int
	Role    Role
	Parity  int // alternation key for hidden layers: Layer % 2
	Neurons int

	Left, Top, Right, Bottom float64

	Label   string
	Caption string

	// TextX is the horizontal center of the label and caption.
	TextX    float64
	LabelY   float64
	CaptionY float64
}

// Width returns the horizontal extent of the band.
func (b Band) Width() float64 { return b.Right - b.Left }

func buildBands(t topology.Topology, l Layout) []Band {
	last := t.Len() - 1
	bands := make([]Band, t.Len())
	for i := range t.Len() {
		right := l.PaddingX + (l.LayerGap-l.NeuronSize)/2 + l.LayerGap*float64(i) + l.NeuronSize
		b := Band{
			Layer:    i,
			Parity:   i % 2,
			Neurons:  t.Size(i),
			Left:     right - l.LayerGap,
			Top:      0,
			Right:    right,
			Bottom:   l.CanvasHeight,
			Caption:  Caption(t.Size(i)),
			TextX:    right - l.LayerGap/2,
			LabelY:   LabelOffset,
			CaptionY: l.CanvasHeight - CaptionOffset,
		}
		switch {
		case i == 0:
			b.Role, b.Label = RoleInput, "Input Layer"
		case i == last:
			b.Role, b.Label = RoleOutput, "Output Layer"
		default:
			b.Role, b.Label = RoleHidden, fmt.Sprintf("Hidden Layer %d", i)
		}
		bands[i] = b
	}
	return bands
}

// Caption returns the neuron count caption of a band, e.g. "1 Neuron" or "6 Neurons".
func Caption(n int) string {
	if n == 1 {
		return "1 Neuron"
	}
	return fmt.Sprintf("%d Neurons", n)
}
