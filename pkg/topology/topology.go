package topology

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/netgraph/pkg/errors"
)

// Topology is an ordered sequence of per-layer neuron counts.
// The zero value has no layers and is not valid; use [New] or [Parse].
type Topology struct {
	counts []int
}

// NeuronID identifies a neuron by its layer and its index within that layer.
type NeuronID struct {
	Layer int `json:"layer"`
	Index int `json:"index"`
}

func (n NeuronID) String() string { return fmt.Sprintf("%d:%d", n.Layer, n.Index) }

// ConnectionID identifies the line from neuron From of Layer to neuron To of Layer+1.
type ConnectionID struct {
	Layer int `json:"layer"`
	From  int `json:"from"`
	To    int `json:"to"`
}

func (c ConnectionID) String() string { return fmt.Sprintf("%d:%d->%d", c.Layer, c.From, c.To) }

// Source returns the neuron the connection starts at.
func (c ConnectionID) Source() NeuronID { return NeuronID{Layer: c.Layer, Index: c.From} }

// Dest returns the neuron the connection ends at.
func (c ConnectionID) Dest() NeuronID { return NeuronID{Layer: c.Layer + 1, Index: c.To} }

// Touches reports whether n is one of the two endpoints of c.
func (c ConnectionID) Touches(n NeuronID) bool {
	return (c.Layer == n.Layer && c.From == n.Index) ||
		(c.Layer == n.Layer-1 && c.To == n.Index)
}

// New validates counts and returns the topology they describe.
func New(counts ...int) (Topology, error) {
	if len(counts) == 0 {
		return Topology{}, errors.New(errors.ErrCodeInvalidTopology, "topology needs at least one layer")
	}
	for i, n := range counts {
		if n < 1 {
			return Topology{}, errors.New(errors.ErrCodeInvalidTopology, "layer %d has %d neurons (must be at least 1)", i, n)
		}
	}
	return Topology{counts: slices.Clone(counts)}, nil
}

// MustNew is like [New] but panics on invalid input. Intended for tests and
// package-level fixtures.
func MustNew(counts ...int) Topology {
	t, err := New(counts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse reads a topology such as "3,6,10", "3-6-10", "784x128x10" or "3 6 10".
func Parse(s string) (Topology, error) {
	if err := errors.ValidateTopologyString(s); err != nil {
		return Topology{}, err
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '-' || r == 'x' || r == ';' || r == ' '
	})
	counts := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Topology{}, errors.Wrap(errors.ErrCodeInvalidTopology, err, "parse layer count %q", f)
		}
		counts = append(counts, n)
	}
	return New(counts...)
}

// FromArgs parses one count per argument, as given on a command line.
func FromArgs(args []string) (Topology, error) {
	return Parse(strings.Join(args, ","))
}

// Len returns the number of layers.
func (t Topology) Len() int { return len(t.counts) }

// Size returns the neuron count of layer i.
func (t Topology) Size(i int) int { return t.counts[i] }

// Counts returns a copy of the per-layer neuron counts.
func (t Topology) Counts() []int { return slices.Clone(t.counts) }

// Max returns the neuron count of the largest layer.
func (t Topology) Max() int {
	if len(t.counts) == 0 {
		return 0
	}
	return slices.Max(t.counts)
}

// Neurons returns the total number of neurons.
func (t Topology) Neurons() int {
	total := 0
	for _, n := range t.counts {
		total += n
	}
	return total
}

// Groups returns the connection count between each adjacent layer pair.
func (t Topology) Groups() []int {
	if len(t.counts) < 2 {
		return nil
	}
	groups := make([]int, len(t.counts)-1)
	for i := range groups {
		groups[i] = t.counts[i] * t.counts[i+1]
	}
	return groups
}

// ConnectionCount returns the total number of connections.
func (t Topology) ConnectionCount() int {
	total := 0
	for _, g := range t.Groups() {
		total += g
	}
	return total
}

// Contains reports whether n names a neuron of t.
func (t Topology) Contains(n NeuronID) bool {
	return n.Layer >= 0 && n.Layer < len(t.counts) && n.Index >= 0 && n.Index < t.counts[n.Layer]
}

// HasConnection reports whether c names a connection of t.
func (t Topology) HasConnection(c ConnectionID) bool {
	return c.Layer >= 0 && c.Layer < len(t.counts)-1 &&
		c.From >= 0 && c.From < t.counts[c.Layer] &&
		c.To >= 0 && c.To < t.counts[c.Layer+1]
}

// Connections enumerates every connection ordered by layer, source, then destination.
func (t Topology) Connections() []ConnectionID {
	out := make([]ConnectionID, 0, t.ConnectionCount())
	for l := 0; l+1 < len(t.counts); l++ {
		for from := 0; from < t.counts[l]; from++ {
			for to := 0; to < t.counts[l+1]; to++ {
				out = append(out, ConnectionID{Layer: l, From: from, To: to})
			}
		}
	}
	return out
}

// String renders the topology in the comma form accepted by [Parse].
func (t Topology) String() string {
	parts := make([]string, len(t.counts))
	for i, n := range t.counts {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
