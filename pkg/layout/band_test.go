package layout

import (
	"testing"
)

func TestBandsReferenceNetwork(t *testing.T) {
	l := mustCompute(t, 3, 6, 10, 8, 4, 2)

	wantLabels := []string{"Input Layer", "Hidden Layer 1", "Hidden Layer 2", "Hidden Layer 3", "Hidden Layer 4", "Output Layer"}
	wantCaptions := []string{"3 Neurons", "6 Neurons", "10 Neurons", "8 Neurons", "4 Neurons", "2 Neurons"}
	wantRoles := []Role{RoleInput, RoleHidden, RoleHidden, RoleHidden, RoleHidden, RoleOutput}

	if len(l.Bands) != len(wantLabels) {
		t.Fatalf("len(Bands) = %d, want %d", len(l.Bands), len(wantLabels))
	}
	for i, b := range l.Bands {
		if b.Label != wantLabels[i] {
			t.Errorf("band %d label = %q, want %q", i, b.Label, wantLabels[i])
		}
		if b.Caption != wantCaptions[i] {
			t.Errorf("band %d caption = %q, want %q", i, b.Caption, wantCaptions[i])
		}
		if b.Role != wantRoles[i] {
			t.Errorf("band %d role = %v, want %v", i, b.Role, wantRoles[i])
		}
		if b.Parity != i%2 {
			t.Errorf("band %d parity = %d", i, b.Parity)
		}
		if !approx(b.Width(), l.LayerGap) {
			t.Errorf("band %d width = %v, want %v", i, b.Width(), l.LayerGap)
		}
		if b.Top != 0 || b.Bottom != l.Height {
			t.Errorf("band %d spans %v..%v, want full height", i, b.Top, b.Bottom)
		}
	}

	first := l.Bands[0]
	if !approx(first.Right, 133.75) || !approx(first.Left, -16.25) || !approx(first.TextX, 58.75) {
		t.Errorf("band 0 = [%v, %v] text %v", first.Left, first.Right, first.TextX)
	}
	if first.LabelY != LabelOffset || first.CaptionY != l.Height-CaptionOffset {
		t.Errorf("band 0 text rows = %v, %v", first.LabelY, first.CaptionY)
	}
}

func TestBandsAreContiguous(t *testing.T) {
	l := mustCompute(t, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2)
	for i := 1; i < len(l.Bands); i++ {
		if !approx(l.Bands[i].Left, l.Bands[i-1].Right) {
			t.Errorf("band %d starts at %v, previous ends at %v", i, l.Bands[i].Left, l.Bands[i-1].Right)
		}
	}
}

func TestSingleLayerBand(t *testing.T) {
	l := mustCompute(t, 1)
	if len(l.Bands) != 1 {
		t.Fatalf("len(Bands) = %d, want 1", len(l.Bands))
	}
	if l.Bands[0].Label != "Input Layer" || l.Bands[0].Caption != "1 Neuron" {
		t.Errorf("band = %q / %q", l.Bands[0].Label, l.Bands[0].Caption)
	}
}

func TestCaption(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "1 Neuron"},
		{2, "2 Neurons"},
		{10, "10 Neurons"},
	}
	for _, tt := range tests {
		if got := Caption(tt.n); got != tt.want {
			t.Errorf("Caption(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
