package weights

import (
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/topology"
)

func TestColor(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		want   color.RGBA
	}{
		{"zero", 0, color.RGBA{0, 0, 0, 255}},
		{"positive saturates at scale", 2, color.RGBA{255, 0, 0, 255}},
		{"negative saturates at scale", -2, color.RGBA{0, 255, 0, 255}},
		{"beyond positive clamps", 50, color.RGBA{255, 0, 0, 255}},
		{"beyond negative clamps", -50, color.RGBA{0, 255, 0, 255}},
		{"infinity clamps", math.Inf(1), color.RGBA{255, 0, 0, 255}},
		{"half", 1, color.RGBA{127, 0, 0, 255}},
		{"negative half", -1, color.RGBA{0, 127, 0, 255}},
		{"truncates toward zero", 0.01, color.RGBA{1, 0, 0, 255}},
		{"tiny negative", -0.001, color.RGBA{0, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Color(tt.weight, DefaultScale); got != tt.want {
				t.Errorf("Color(%v) = %v, want %v", tt.weight, got, tt.want)
			}
		})
	}
}

func TestColorScale(t *testing.T) {
	if got := Color(1, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Color(1, 1) = %v", got)
	}
	if got, want := Color(1, 0), Color(1, DefaultScale); got != want {
		t.Errorf("Color with zero scale = %v, want default %v", got, want)
	}
}

func TestRandom(t *testing.T) {
	conns := topology.MustNew(3, 6, 10, 8, 4, 2).Connections()

	a, b := NewRandom(42), NewRandom(42)
	for _, c := range conns {
		wa, wb := a.Weight(c), b.Weight(c)
		if wa != wb {
			t.Fatalf("same seed diverged at %v: %v != %v", c, wa, wb)
		}
		if wa < -1 || wa > 1 {
			t.Fatalf("weight %v out of [-1, 1]", wa)
		}
	}

	x, y := NewRandom(42), NewRandom(7)
	same := true
	for _, c := range conns {
		if x.Weight(c) != y.Weight(c) {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical weights")
	}
}

func TestConstantAndFunc(t *testing.T) {
	c := topology.ConnectionID{Layer: 0, From: 1, To: 2}
	if got := Constant(0.5).Weight(c); got != 0.5 {
		t.Errorf("Constant.Weight = %v", got)
	}
	f := Func(func(c topology.ConnectionID) float64 { return float64(c.From - c.To) })
	if got := f.Weight(c); got != -1 {
		t.Errorf("Func.Weight = %v", got)
	}
}

func TestLoadTable(t *testing.T) {
	topo := topology.MustNew(2, 2, 1)

	tbl, err := LoadTable(strings.NewReader(`[[[0.1, -0.4], [0.9, 0.0]], [[1.2], [-0.3]]]`), topo)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if len(tbl) != topo.ConnectionCount() {
		t.Errorf("len = %d, want %d", len(tbl), topo.ConnectionCount())
	}
	if got := tbl.Weight(topology.ConnectionID{Layer: 0, From: 1, To: 0}); got != 0.9 {
		t.Errorf("weight 0:1->0 = %v, want 0.9", got)
	}
	if got := tbl.Weight(topology.ConnectionID{Layer: 1, From: 1, To: 0}); got != -0.3 {
		t.Errorf("weight 1:1->0 = %v, want -0.3", got)
	}
}

func TestLoadTableErrors(t *testing.T) {
	topo := topology.MustNew(2, 2, 1)
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `nope`},
		{"too few matrices", `[[[0.1, 0.2], [0.3, 0.4]]]`},
		{"wrong row count", `[[[0.1, 0.2]], [[1.2], [-0.3]]]`},
		{"wrong column count", `[[[0.1, 0.2], [0.3]], [[1.2], [-0.3]]]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTable(strings.NewReader(tt.input), topo)
			if !errors.Is(err, errors.ErrCodeInvalidWeights) {
				t.Errorf("error = %v, want %v", err, errors.ErrCodeInvalidWeights)
			}
		})
	}
}

func TestLoadTableFileMissing(t *testing.T) {
	_, err := LoadTableFile(t.TempDir()+"/missing.json", topology.MustNew(1, 1))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want %v", err, errors.ErrCodeFileNotFound)
	}
}
