package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/topology"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

func mustCompute(t *testing.T, counts ...int) Layout {
	t.Helper()
	l, err := Compute(topology.MustNew(counts...), DefaultConfig())
	if err != nil {
		t.Fatalf("Compute(%v): %v", counts, err)
	}
	return l
}

func TestComputeReferenceNetwork(t *testing.T) {
	l := mustCompute(t, 3, 6, 10, 8, 4, 2)

	if !approx(l.NeuronSize, 37.5) {
		t.Errorf("NeuronSize = %v, want 37.5", l.NeuronSize)
	}
	if !approx(l.LayerGap, DefaultLayerGap) {
		t.Errorf("LayerGap = %v, want %v", l.LayerGap, DefaultLayerGap)
	}
	if !approx(l.Width, 867.5) {
		t.Errorf("Width = %v, want 867.5", l.Width)
	}
	if l.Height != DefaultCanvasHeight {
		t.Errorf("Height = %v, want %v", l.Height, DefaultCanvasHeight)
	}

	wantSizes := []int{3, 6, 10, 8, 4, 2}
	if len(l.Layers) != len(wantSizes) {
		t.Fatalf("len(Layers) = %d, want %d", len(l.Layers), len(wantSizes))
	}
	for i, n := range wantSizes {
		if len(l.Layers[i]) != n {
			t.Errorf("layer %d has %d neurons, want %d", i, len(l.Layers[i]), n)
		}
	}
	if l.NeuronCount() != 33 {
		t.Errorf("NeuronCount() = %d, want 33", l.NeuronCount())
	}
}

func TestNeuronPositions(t *testing.T) {
	l := mustCompute(t, 3, 6, 10, 8, 4, 2)

	tests := []struct {
		id   topology.NeuronID
		x, y float64
	}{
		// The first neuron of each layer carries the gap*(j-1) = -gap term.
		{topology.NeuronID{Layer: 0, Index: 0}, 40, 183.75},
		{topology.NeuronID{Layer: 0, Index: 1}, 40, 226.25},
		{topology.NeuronID{Layer: 0, Index: 2}, 40, 268.75},
		{topology.NeuronID{Layer: 2, Index: 0}, 340, 35},
		{topology.NeuronID{Layer: 5, Index: 1}, 790, 247.5},
	}

	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			n, err := l.Neuron(tt.id)
			if err != nil {
				t.Fatal(err)
			}
			if !approx(n.X, tt.x) || !approx(n.Y, tt.y) {
				t.Errorf("position = (%v, %v), want (%v, %v)", n.X, n.Y, tt.x, tt.y)
			}
			cx, cy := n.Center()
			if !approx(cx, tt.x+18.75) || !approx(cy, tt.y+18.75) {
				t.Errorf("Center() = (%v, %v)", cx, cy)
			}
		})
	}
}

func TestNeuronsNeverOverlap(t *testing.T) {
	topologies := [][]int{
		{3, 6, 10, 8, 4, 2},
		{1, 1},
		{50, 3},
		{2, 2, 2, 2, 2, 2, 2, 2, 2, 2},
		{7},
	}

	for _, counts := range topologies {
		topo := topology.MustNew(counts...)
		l, err := Compute(topo, DefaultConfig())
		if err != nil {
			t.Fatalf("Compute(%v): %v", counts, err)
		}
		available := l.CanvasHeight - 2*l.PaddingY
		for i, layer := range l.Layers {
			n := float64(len(layer))
			if used := n*l.NeuronSize + (n-1)*l.NeuronGap; used > available+eps {
				t.Errorf("%v layer %d uses %v of %v px", counts, i, used, available)
			}
			for j := 1; j < len(layer); j++ {
				if layer[j].Y < layer[j-1].Y+layer[j-1].Size-eps {
					t.Errorf("%v layer %d: neuron %d overlaps neuron %d", counts, i, j, j-1)
				}
			}
		}
	}
}

func TestWidthRule(t *testing.T) {
	tests := []struct {
		name    string
		counts  []int
		clamped bool
	}{
		{"fits", []int{3, 6, 10, 8, 4, 2}, false},
		{"single layer", []int{4}, false},
		{"too many layers", []int{2, 2, 2, 2, 2, 2, 2, 2, 2, 2}, true},
		{"deep narrow", []int{1, 1, 1, 1, 1, 1, 1, 1}, true},
	}

	cfg := DefaultConfig()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := mustCompute(t, tt.counts...)
			naive := naiveWidth(len(tt.counts), cfg.LayerGap, cfg.PaddingX, l.NeuronSize)
			if tt.clamped {
				if naive <= cfg.MaxCanvasWidth {
					t.Fatalf("naive width %v should exceed %v", naive, cfg.MaxCanvasWidth)
				}
				if l.Width != cfg.MaxCanvasWidth {
					t.Errorf("Width = %v, want %v", l.Width, cfg.MaxCanvasWidth)
				}
				if l.LayerGap >= cfg.LayerGap {
					t.Errorf("LayerGap = %v, want less than %v", l.LayerGap, cfg.LayerGap)
				}
			} else {
				if !approx(l.Width, naive) {
					t.Errorf("Width = %v, want naive %v", l.Width, naive)
				}
				if l.LayerGap != cfg.LayerGap {
					t.Errorf("LayerGap = %v, want %v", l.LayerGap, cfg.LayerGap)
				}
			}
			if math.Abs(l.NaiveWidth()-l.Width) > 1e-6 {
				t.Errorf("NaiveWidth() = %v, want %v", l.NaiveWidth(), l.Width)
			}
		})
	}
}

func TestComputeErrors(t *testing.T) {
	tests := []struct {
		name string
		topo topology.Topology
		cfg  Config
		code errors.Code
	}{
		{"zero topology", topology.Topology{}, DefaultConfig(), errors.ErrCodeInvalidTopology},
		{"too dense", topology.MustNew(3, 100), DefaultConfig(), errors.ErrCodeInvalidLayout},
		{"bad height", topology.MustNew(3, 2), Config{CanvasHeight: 0, MaxCanvasWidth: 1000, LayerGap: 150}, errors.ErrCodeInvalidLayout},
		{"bad gap", topology.MustNew(3, 2), Config{CanvasHeight: 500, MaxCanvasWidth: 1000, LayerGap: 150, NeuronGap: -1}, errors.ErrCodeInvalidLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.topo, tt.cfg)
			if !errors.Is(err, tt.code) {
				t.Errorf("Compute() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestSegment(t *testing.T) {
	l := mustCompute(t, 3, 2)
	x0, y0, x1, y1, err := l.Segment(topology.ConnectionID{Layer: 0, From: 1, To: 0})
	if err != nil {
		t.Fatal(err)
	}
	src, _ := l.Neuron(topology.NeuronID{Layer: 0, Index: 1})
	dst, _ := l.Neuron(topology.NeuronID{Layer: 1, Index: 0})
	sx, sy := src.Center()
	dx, dy := dst.Center()
	if x0 != sx || y0 != sy || x1 != dx || y1 != dy {
		t.Errorf("Segment = (%v,%v)-(%v,%v), want (%v,%v)-(%v,%v)", x0, y0, x1, y1, sx, sy, dx, dy)
	}

	if _, _, _, _, err := l.Segment(topology.ConnectionID{Layer: 1, From: 0, To: 0}); !errors.Is(err, errors.ErrCodeNeuronNotFound) {
		t.Errorf("Segment past last layer error = %v", err)
	}
}
