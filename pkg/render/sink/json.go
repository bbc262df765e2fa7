package sink

import (
	"encoding/json"

	"github.com/matzehuels/netgraph/pkg/diagram"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	title  string
	seed   uint64
	seeded bool
	indent bool
}

// WithJSONTitle records the diagram title.
func WithJSONTitle(t string) JSONOption { return func(r *jsonRenderer) { r.title = t } }

// WithJSONSeed records the seed of the random weight source.
func WithJSONSeed(seed uint64) JSONOption {
	return func(r *jsonRenderer) { r.seed = seed; r.seeded = true }
}

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Title       string           `json:"title,omitempty"`
	Topology    []int            `json:"topology"`
	Width       float64          `json:"width"`
	Height      float64          `json:"height"`
	NeuronSize  float64          `json:"neuron_size"`
	LayerGap    float64          `json:"layer_gap"`
	Seed        *uint64          `json:"seed,omitempty"`
	Neurons     []jsonNeuron     `json:"neurons"`
	Connections []jsonConnection `json:"connections"`
	Bands       []jsonBand       `json:"bands"`
}

type jsonNeuron struct {
	Layer int     `json:"layer"`
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
}

type jsonConnection struct {
	Layer int     `json:"layer"`
	From  int     `json:"from"`
	To    int     `json:"to"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color string  `json:"color"`
}

type jsonBand struct {
	Layer   int     `json:"layer"`
	Role    string  `json:"role"`
	Label   string  `json:"label"`
	Caption string  `json:"caption"`
	Left    float64 `json:"left"`
	Right   float64 `json:"right"`
	Color   string  `json:"color"`
}

// RenderJSON exports the layout and connection colors of a drawn renderer.
func RenderJSON(r *diagram.Renderer, opts ...JSONOption) ([]byte, error) {
	jr := jsonRenderer{}
	for _, opt := range opts {
		opt(&jr)
	}

	l := r.Layout()
	out := jsonOutput{
		Title:      jr.title,
		Topology:   r.Topology().Counts(),
		Width:      l.Width,
		Height:     l.Height,
		NeuronSize: l.NeuronSize,
		LayerGap:   l.LayerGap,
	}
	if jr.seeded {
		out.Seed = &jr.seed
	}

	for _, column := range l.Layers {
		for _, n := range column {
			out.Neurons = append(out.Neurons, jsonNeuron{
				Layer: n.ID.Layer, Index: n.ID.Index, X: n.X, Y: n.Y, Size: n.Size,
			})
		}
	}

	for _, id := range r.Connections() {
		x1, y1, x2, y2, err := l.Segment(id)
		if err != nil {
			return nil, err
		}
		c, ok := r.ConnectionColor(id)
		if !ok {
			c = r.Palette().Connection
		}
		out.Connections = append(out.Connections, jsonConnection{
			Layer: id.Layer, From: id.From, To: id.To,
			X1: x1, Y1: y1, X2: x2, Y2: y2,
			Color: hex(c),
		})
	}

	for _, b := range l.Bands {
		out.Bands = append(out.Bands, jsonBand{
			Layer:   b.Layer,
			Role:    b.Role.String(),
			Label:   b.Label,
			Caption: b.Caption,
			Left:    b.Left,
			Right:   b.Right,
			Color:   hex(r.Palette().BandColor(b)),
		})
	}

	if jr.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
