package weights

import (
	"encoding/json"
	"io"
	"math/rand/v2"
	"os"

	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/topology"
)

// Source yields the weight drawn on a connection.
type Source interface {
	Weight(c topology.ConnectionID) float64
}

// Func adapts a plain function to [Source].
type Func func(c topology.ConnectionID) float64

func (f Func) Weight(c topology.ConnectionID) float64 { return f(c) }

// Constant gives every connection the same weight.
type Constant float64

func (w Constant) Weight(topology.ConnectionID) float64 { return float64(w) }

// Random draws uniform weights in [-1, 1]. Values depend only on the seed and
// the order in which connections are asked for.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a seeded random source.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0xdeadbeef))}
}

func (r *Random) Weight(topology.ConnectionID) float64 {
	return r.rng.Float64()*2 - 1
}

// Table holds explicit per-connection weights.
type Table map[topology.ConnectionID]float64

// Weight returns the stored weight, or 0 for connections the table lacks.
func (t Table) Weight(c topology.ConnectionID) float64 { return t[c] }

// LoadTable reads weights encoded as one matrix per layer pair,
// matrix[from][to], and checks the shape against topo.
//
//	[[[0.1, -0.4], [0.9, 0.0]], [[1.2], [-0.3]]]
func LoadTable(r io.Reader, topo topology.Topology) (Table, error) {
	var matrices [][][]float64
	if err := json.NewDecoder(r).Decode(&matrices); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidWeights, err, "decode weights")
	}
	if want := topo.Len() - 1; len(matrices) != want {
		return nil, errors.New(errors.ErrCodeInvalidWeights, "got %d weight matrices, topology %s needs %d", len(matrices), topo, want)
	}

	t := make(Table, topo.ConnectionCount())
	for l, m := range matrices {
		if len(m) != topo.Size(l) {
			return nil, errors.New(errors.ErrCodeInvalidWeights, "matrix %d has %d rows, layer %d has %d neurons", l, len(m), l, topo.Size(l))
		}
		for from, row := range m {
			if len(row) != topo.Size(l+1) {
				return nil, errors.New(errors.ErrCodeInvalidWeights, "matrix %d row %d has %d columns, layer %d has %d neurons", l, from, len(row), l+1, topo.Size(l+1))
			}
			for to, w := range row {
				t[topology.ConnectionID{Layer: l, From: from, To: to}] = w
			}
		}
	}
	return t, nil
}

// LoadTableFile is [LoadTable] on a file path.
func LoadTableFile(path string, topo topology.Topology) (Table, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "weights file %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadTable(f, topo)
}
