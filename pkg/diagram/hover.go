package diagram

import (
	"fmt"

	"github.com/matzehuels/netgraph/pkg/canvas"
	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/observability"
	"github.com/matzehuels/netgraph/pkg/topology"
)

// neuronBinding forwards pointer transitions of one neuron shape.
type neuronBinding struct {
	renderer *Renderer
	id       topology.NeuronID
	handle   canvas.Handle
}

func (b *neuronBinding) PointerEnter() error { return b.renderer.Enter(b.handle) }
func (b *neuronBinding) PointerLeave() error { return b.renderer.Leave(b.handle) }

func (r *Renderer) lookupNeuron(h canvas.Handle) (topology.NeuronID, error) {
	id, ok := r.neurons[h]
	if !ok {
		return topology.NeuronID{}, errors.New(errors.ErrCodeNeuronNotFound, "shape %d is not a registered neuron", h)
	}
	return id, nil
}

// Enter highlights neuron h and its incident connections and dims the rest.
func (r *Renderer) Enter(h canvas.Handle) error {
	id, err := r.lookupNeuron(h)
	if err != nil {
		return err
	}
	if err := r.surface.SetFill(h, r.palette.NeuronHover); err != nil {
		return fmt.Errorf("hover neuron %s: %w", id, err)
	}

	emphasized := 0
	for _, c := range r.order {
		ch := r.connections[c]
		if c.Touches(id) {
			if err := r.surface.SetWidth(ch, EmphasizedWidth); err != nil {
				return fmt.Errorf("emphasize %s: %w", c, err)
			}
			emphasized++
			continue
		}
		if err := r.surface.SetFill(ch, r.palette.ConnectionDimmed); err != nil {
			return fmt.Errorf("dim %s: %w", c, err)
		}
		if err := r.surface.Lower(ch); err != nil {
			return fmt.Errorf("lower %s: %w", c, err)
		}
	}

	// Lowering dimmed lines pushed them under the bands.
	for _, bh := range r.bands {
		if err := r.surface.Lower(bh); err != nil {
			return fmt.Errorf("lower band: %w", err)
		}
	}

	r.logger.Debug("Neuron enter", "neuron", id.String(), "emphasized", emphasized)
	observability.Hover().OnEnter(id.String(), emphasized)
	return nil
}

// Leave restores neuron h and every connection to their resting style.
func (r *Renderer) Leave(h canvas.Handle) error {
	id, err := r.lookupNeuron(h)
	if err != nil {
		return err
	}
	if err := r.surface.SetFill(h, r.palette.Neuron); err != nil {
		return fmt.Errorf("restore neuron %s: %w", id, err)
	}

	for _, c := range r.order {
		col, ok := r.colors[c]
		if !ok {
			col = r.palette.Connection
		}
		ch := r.connections[c]
		if err := r.surface.SetFill(ch, col); err != nil {
			return fmt.Errorf("restore %s: %w", c, err)
		}
		if err := r.surface.SetWidth(ch, NormalWidth); err != nil {
			return fmt.Errorf("restore %s: %w", c, err)
		}
	}

	r.logger.Debug("Neuron leave", "neuron", id.String())
	observability.Hover().OnLeave(id.String())
	return nil
}

// EnterNeuron is [Renderer.Enter] addressed by neuron identity.
func (r *Renderer) EnterNeuron(id topology.NeuronID) error {
	h, err := r.NeuronHandle(id)
	if err != nil {
		return err
	}
	return r.Enter(h)
}

// LeaveNeuron is [Renderer.Leave] addressed by neuron identity.
func (r *Renderer) LeaveNeuron(id topology.NeuronID) error {
	h, err := r.NeuronHandle(id)
	if err != nil {
		return err
	}
	return r.Leave(h)
}
