package diagram

import (
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netgraph/pkg/canvas"
	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/layout"
	"github.com/matzehuels/netgraph/pkg/topology"
	"github.com/matzehuels/netgraph/pkg/weights"
)

const (
	// NormalWidth is the stroke width of a connection at rest.
	NormalWidth = 1.0

	// EmphasizedWidth is the stroke width of a connection incident to the hovered neuron.
	EmphasizedWidth = 2.0

	// OutlineWidth is the border width of neuron ovals.
	OutlineWidth = 1.0

	// LabelFontSize is the size of band labels and captions.
	LabelFontSize = 12.0

	// NeuronFontSize is the size of neuron captions.
	NeuronFontSize = 8.0
)

// Option configures a [Renderer].
type Option func(*Renderer)

// WithPalette replaces the default colors.
func WithPalette(p Palette) Option { return func(r *Renderer) { r.palette = p } }

// WithWeights sets the source of connection weights. The default is a
// random source seeded with 42.
func WithWeights(src weights.Source) Option { return func(r *Renderer) { r.weights = src } }

// WithScale sets the weight magnitude that saturates a color channel.
func WithScale(scale float64) Option { return func(r *Renderer) { r.scale = scale } }

// WithLayoutConfig replaces the default canvas dimensions.
func WithLayoutConfig(cfg layout.Config) Option { return func(r *Renderer) { r.layoutCfg = cfg } }

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option { return func(r *Renderer) { r.logger = l } }

// WithCaptions draws each neuron's index inside its circle.
func WithCaptions() Option { return func(r *Renderer) { r.captions = true } }

// Renderer draws one topology onto one surface and owns the registries
// that map surface handles back to neurons and connections.
type Renderer struct {
	topo      topology.Topology
	layout    layout.Layout
	layoutCfg layout.Config
	surface   canvas.Surface
	palette   Palette
	weights   weights.Source
	scale     float64
	captions  bool
	logger    *log.Logger

	neurons     map[canvas.Handle]topology.NeuronID
	layers      [][]canvas.Handle
	connections map[topology.ConnectionID]canvas.Handle
	order       []topology.ConnectionID
	colors      map[topology.ConnectionID]color.RGBA
	bands       []canvas.Handle
}

// New computes the layout of t and prepares a renderer for s. Nothing is
// drawn until [Renderer.Draw].
func New(t topology.Topology, s canvas.Surface, opts ...Option) (*Renderer, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "renderer needs a surface")
	}
	r := &Renderer{
		topo:      t,
		layoutCfg: layout.DefaultConfig(),
		surface:   s,
		palette:   DefaultPalette(),
		scale:     weights.DefaultScale,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.weights == nil {
		r.weights = weights.NewRandom(42)
	}
	if r.logger == nil {
		r.logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	l, err := layout.Compute(t, r.layoutCfg)
	if err != nil {
		return nil, err
	}
	r.layout = l
	return r, nil
}

// Topology returns the drawn topology.
func (r *Renderer) Topology() topology.Topology { return r.topo }

// Layout returns the computed geometry.
func (r *Renderer) Layout() layout.Layout { return r.layout }

// Palette returns the colors in use.
func (r *Renderer) Palette() Palette { return r.palette }

// Draw clears the surface and draws neurons, connections and layer bands.
func (r *Renderer) Draw() error {
	if err := r.surface.Clear(); err != nil {
		return fmt.Errorf("clear surface: %w", err)
	}
	r.surface.SetSize(r.layout.Width, r.layout.Height)

	r.neurons = make(map[canvas.Handle]topology.NeuronID, r.topo.Neurons())
	r.layers = make([][]canvas.Handle, r.topo.Len())
	r.connections = make(map[topology.ConnectionID]canvas.Handle, r.topo.ConnectionCount())
	r.order = r.topo.Connections()
	r.colors = make(map[topology.ConnectionID]color.RGBA, len(r.order))
	r.bands = make([]canvas.Handle, 0, r.topo.Len())

	if err := r.drawNeurons(); err != nil {
		return err
	}
	if err := r.drawConnections(); err != nil {
		return err
	}
	for _, id := range r.order {
		if _, err := r.SetWeight(id, r.weights.Weight(id)); err != nil {
			return err
		}
	}
	if err := r.drawBands(); err != nil {
		return err
	}

	r.logger.Info("Drew network", "topology", r.topo.String(),
		"neurons", len(r.neurons), "connections", len(r.connections), "bands", len(r.bands))
	r.logger.Debug("Layout", "detail", r.layout.String())
	return nil
}

func (r *Renderer) drawNeurons() error {
	for i, column := range r.layout.Layers {
		handles := make([]canvas.Handle, len(column))
		for j, n := range column {
			x0, y0, x1, y1 := n.Bounds()
			h, err := r.surface.CreateOval(x0, y0, x1, y1, canvas.Style{
				Fill:    r.palette.Neuron,
				Outline: r.palette.NeuronOutline,
				Width:   OutlineWidth,
				Class:   "neuron",
				Data: map[string]string{
					"layer": strconv.Itoa(i),
					"index": strconv.Itoa(j),
				},
			})
			if err != nil {
				return fmt.Errorf("draw neuron %s: %w", n.ID, err)
			}
			if err := r.surface.Bind(h, &neuronBinding{renderer: r, id: n.ID, handle: h}); err != nil {
				return fmt.Errorf("bind neuron %s: %w", n.ID, err)
			}
			r.neurons[h] = n.ID
			handles[j] = h

			if r.captions {
				cx, cy := n.Center()
				if _, err := r.surface.CreateText(cx, cy, strconv.Itoa(j), canvas.Style{
					Fill:     r.palette.Text,
					FontSize: NeuronFontSize,
					Disabled: true,
					Class:    "neuron-caption",
				}); err != nil {
					return fmt.Errorf("draw neuron caption %s: %w", n.ID, err)
				}
			}
		}
		r.layers[i] = handles
	}
	return nil
}

func (r *Renderer) drawConnections() error {
	for _, id := range r.order {
		x0, y0, x1, y1, err := r.layout.Segment(id)
		if err != nil {
			return err
		}
		h, err := r.surface.CreateLine(x0, y0, x1, y1, canvas.Style{
			Fill:  r.palette.Connection,
			Width: NormalWidth,
			Class: "connection",
			Data: map[string]string{
				"layer": strconv.Itoa(id.Layer),
				"from":  strconv.Itoa(id.From),
				"to":    strconv.Itoa(id.To),
			},
		})
		if err != nil {
			return fmt.Errorf("draw connection %s: %w", id, err)
		}
		if err := r.surface.Lower(h); err != nil {
			return fmt.Errorf("lower connection %s: %w", id, err)
		}
		r.connections[id] = h
	}
	return nil
}

func (r *Renderer) drawBands() error {
	for _, b := range r.layout.Bands {
		h, err := r.surface.CreateRect(b.Left, b.Top, b.Right, b.Bottom, canvas.Style{
			Fill:  r.palette.BandColor(b),
			Class: "band",
			Data: map[string]string{
				"layer": strconv.Itoa(b.Layer),
				"role":  b.Role.String(),
			},
		})
		if err != nil {
			return fmt.Errorf("draw band %d: %w", b.Layer, err)
		}
		textStyle := canvas.Style{Fill: r.palette.Text, FontSize: LabelFontSize, Class: "band-label"}
		if _, err := r.surface.CreateText(b.TextX, b.LabelY, b.Label, textStyle); err != nil {
			return fmt.Errorf("draw band label %d: %w", b.Layer, err)
		}
		if _, err := r.surface.CreateText(b.TextX, b.CaptionY, b.Caption, textStyle); err != nil {
			return fmt.Errorf("draw band caption %d: %w", b.Layer, err)
		}
		r.bands = append(r.bands, h)
		if err := r.surface.Lower(h); err != nil {
			return fmt.Errorf("lower band %d: %w", b.Layer, err)
		}
	}
	return nil
}

// SetWeight recolors connection id from weight w and records the color as
// the connection's resting color.
func (r *Renderer) SetWeight(id topology.ConnectionID, w float64) (color.RGBA, error) {
	h, ok := r.connections[id]
	if !ok {
		return color.RGBA{}, errors.New(errors.ErrCodeConnectionNotFound, "no connection %s", id)
	}
	c := weights.Color(w, r.scale)
	if err := r.surface.SetFill(h, c); err != nil {
		return color.RGBA{}, fmt.Errorf("color connection %s: %w", id, err)
	}
	r.colors[id] = c
	return c, nil
}

// Neuron returns the neuron drawn as shape h.
func (r *Renderer) Neuron(h canvas.Handle) (topology.NeuronID, bool) {
	id, ok := r.neurons[h]
	return id, ok
}

// NeuronHandle returns the shape of neuron id.
func (r *Renderer) NeuronHandle(id topology.NeuronID) (canvas.Handle, error) {
	if id.Layer < 0 || id.Layer >= len(r.layers) || id.Index < 0 || id.Index >= len(r.layers[id.Layer]) {
		return 0, errors.New(errors.ErrCodeNeuronNotFound, "no neuron %s", id)
	}
	return r.layers[id.Layer][id.Index], nil
}

// ConnectionHandle returns the shape of connection id.
func (r *Renderer) ConnectionHandle(id topology.ConnectionID) (canvas.Handle, error) {
	h, ok := r.connections[id]
	if !ok {
		return 0, errors.New(errors.ErrCodeConnectionNotFound, "no connection %s", id)
	}
	return h, nil
}

// ConnectionColor returns the recorded weight color of id.
func (r *Renderer) ConnectionColor(id topology.ConnectionID) (color.RGBA, bool) {
	c, ok := r.colors[id]
	return c, ok
}

// Connections lists every drawn connection in creation order.
func (r *Renderer) Connections() []topology.ConnectionID { return r.order }

// Bands returns the band rectangle handles in layer order.
func (r *Renderer) Bands() []canvas.Handle { return r.bands }

// Incident lists the connections that touch neuron n.
func (r *Renderer) Incident(n topology.NeuronID) []topology.ConnectionID {
	var out []topology.ConnectionID
	for _, id := range r.order {
		if id.Touches(n) {
			out = append(out, id)
		}
	}
	return out
}
