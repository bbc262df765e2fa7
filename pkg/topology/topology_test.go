package topology

import (
	"slices"
	"testing"

	"github.com/matzehuels/netgraph/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		counts  []int
		wantErr bool
	}{
		{"two layers", []int{3, 2}, false},
		{"single layer", []int{4}, false},
		{"reference network", []int{3, 6, 10, 8, 4, 2}, false},
		{"empty", nil, true},
		{"zero layer", []int{3, 0, 2}, true},
		{"negative layer", []int{-1, 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.counts...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%v) error = %v, wantErr %v", tt.counts, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidTopology) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidTopology)
			}
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	counts := []int{3, 4}
	topo := MustNew(counts...)
	counts[0] = 99
	if topo.Size(0) != 3 {
		t.Errorf("Size(0) = %d after mutating input, want 3", topo.Size(0))
	}
	got := topo.Counts()
	got[1] = 99
	if topo.Size(1) != 4 {
		t.Errorf("Size(1) = %d after mutating Counts(), want 4", topo.Size(1))
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    []int
		wantErr bool
	}{
		{"3,6,10", []int{3, 6, 10}, false},
		{"3-6-10", []int{3, 6, 10}, false},
		{"784x128x10", []int{784, 128, 10}, false},
		{" 3 , 6 ", []int{3, 6}, false},
		{"3;;6", []int{3, 6}, false},
		{"", nil, true},
		{",,", nil, true},
		{"3,0", nil, true},
		{"3,a", nil, true},
		{"99999999999999999999", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && !slices.Equal(got.Counts(), tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got.Counts(), tt.want)
			}
		})
	}
}

func TestFromArgs(t *testing.T) {
	got, err := FromArgs([]string{"3", "6", "10"})
	if err != nil {
		t.Fatalf("FromArgs: %v", err)
	}
	if got.String() != "3,6,10" {
		t.Errorf("String() = %q, want %q", got.String(), "3,6,10")
	}
}

func TestConnectionCounts(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		groups []int
		total  int
	}{
		{"reference network", []int{3, 6, 10, 8, 4, 2}, []int{18, 60, 80, 32, 8}, 198},
		{"single layer", []int{5}, nil, 0},
		{"one to one", []int{1, 1}, []int{1}, 1},
		{"wide", []int{2, 7, 3}, []int{14, 21}, 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topo := MustNew(tt.counts...)
			if got := topo.Groups(); !slices.Equal(got, tt.groups) {
				t.Errorf("Groups() = %v, want %v", got, tt.groups)
			}
			if got := topo.ConnectionCount(); got != tt.total {
				t.Errorf("ConnectionCount() = %d, want %d", got, tt.total)
			}
			conns := topo.Connections()
			if len(conns) != tt.total {
				t.Fatalf("len(Connections()) = %d, want %d", len(conns), tt.total)
			}
			seen := make(map[ConnectionID]bool, len(conns))
			for _, c := range conns {
				if !topo.HasConnection(c) {
					t.Errorf("connection %v not part of topology", c)
				}
				if seen[c] {
					t.Errorf("connection %v listed twice", c)
				}
				seen[c] = true
			}
		})
	}
}

func TestConnectionsOrder(t *testing.T) {
	conns := MustNew(2, 2).Connections()
	want := []ConnectionID{
		{Layer: 0, From: 0, To: 0},
		{Layer: 0, From: 0, To: 1},
		{Layer: 0, From: 1, To: 0},
		{Layer: 0, From: 1, To: 1},
	}
	if !slices.Equal(conns, want) {
		t.Errorf("Connections() = %v, want %v", conns, want)
	}
}

func TestTouches(t *testing.T) {
	c := ConnectionID{Layer: 1, From: 2, To: 3}
	tests := []struct {
		n    NeuronID
		want bool
	}{
		{NeuronID{Layer: 1, Index: 2}, true},
		{NeuronID{Layer: 2, Index: 3}, true},
		{NeuronID{Layer: 1, Index: 3}, false},
		{NeuronID{Layer: 2, Index: 2}, false},
		{NeuronID{Layer: 0, Index: 2}, false},
	}
	for _, tt := range tests {
		if got := c.Touches(tt.n); got != tt.want {
			t.Errorf("%v.Touches(%v) = %v, want %v", c, tt.n, got, tt.want)
		}
	}
	if c.Source() != (NeuronID{Layer: 1, Index: 2}) || c.Dest() != (NeuronID{Layer: 2, Index: 3}) {
		t.Errorf("Source/Dest = %v/%v", c.Source(), c.Dest())
	}
}

func TestContains(t *testing.T) {
	topo := MustNew(3, 2)
	if !topo.Contains(NeuronID{Layer: 1, Index: 1}) {
		t.Error("expected 1:1 to be contained")
	}
	for _, n := range []NeuronID{{Layer: 1, Index: 2}, {Layer: 2, Index: 0}, {Layer: -1, Index: 0}} {
		if topo.Contains(n) {
			t.Errorf("Contains(%v) = true, want false", n)
		}
	}
	if got := topo.Neurons(); got != 5 {
		t.Errorf("Neurons() = %d, want 5", got)
	}
	if got := topo.Max(); got != 3 {
		t.Errorf("Max() = %d, want 3", got)
	}
}
