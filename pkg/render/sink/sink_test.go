package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/netgraph/pkg/canvas"
	"github.com/matzehuels/netgraph/pkg/diagram"
	"github.com/matzehuels/netgraph/pkg/topology"
	"github.com/matzehuels/netgraph/pkg/weights"
)

func drawn(t testing.TB, counts ...int) (*diagram.Renderer, *canvas.Scene) {
	t.Helper()
	scene := canvas.NewScene(0, 0)
	r, err := diagram.New(topology.MustNew(counts...), scene, diagram.WithWeights(weights.Constant(1)))
	if err != nil {
		t.Fatalf("diagram.New: %v", err)
	}
	if err := r.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	return r, scene
}

func TestRenderSVGCounts(t *testing.T) {
	r, scene := drawn(t, 3, 6, 10, 8, 4, 2)
	svg := string(RenderSVG(scene, WithRenderer(r)))

	tests := []struct {
		needle string
		want   int
	}{
		{"<line ", 198},
		{"<ellipse ", 33},
		{`class="band"`, 6},
		{"<script", 1},
		{`>Input Layer<`, 1},
		{`>Output Layer<`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.needle, func(t *testing.T) {
			if got := strings.Count(svg, tt.needle); got != tt.want {
				t.Errorf("count(%q) = %d, want %d", tt.needle, got, tt.want)
			}
		})
	}
}

func TestRenderSVGDocumentID(t *testing.T) {
	_, scene := drawn(t, 2, 2)

	svg := string(RenderSVG(scene, WithDocumentID("net-1")))
	if !strings.Contains(svg, `<g id="net-1">`) {
		t.Error("missing wrapping group")
	}
	if !strings.Contains(svg, `getElementById("net-1")`) {
		t.Error("script not scoped to document id")
	}

	a := string(RenderSVG(scene))
	b := string(RenderSVG(scene))
	if a == b {
		t.Error("generated document ids should differ")
	}
}

func TestRenderSVGRestingColorWhileHovered(t *testing.T) {
	r, scene := drawn(t, 2, 2, 2)
	if err := r.EnterNeuron(topology.NeuronID{Layer: 0, Index: 0}); err != nil {
		t.Fatal(err)
	}
	svg := string(RenderSVG(scene, WithRenderer(r)))

	want := fmt.Sprintf(`data-color="%s"`, hex(weights.Color(1, weights.DefaultScale)))
	if got := strings.Count(svg, want); got != 8 {
		t.Errorf("lines restoring to weight color = %d, want 8", got)
	}
	if !strings.Contains(svg, `stroke="#d3d3d3"`) {
		t.Error("expected dimmed connections in hovered export")
	}
	if !strings.Contains(svg, `fill="#ffa500"`) {
		t.Error("expected hovered neuron fill")
	}
}

func TestRenderSVGWithoutInteraction(t *testing.T) {
	_, scene := drawn(t, 1, 1)
	svg := string(RenderSVG(scene, WithoutInteraction(), WithTitle("a < b")))
	if strings.Contains(svg, "<script") {
		t.Error("script present")
	}
	if !strings.Contains(svg, "<title>a &lt; b</title>") {
		t.Error("title not escaped")
	}
}

func TestRenderPNG(t *testing.T) {
	r, scene := drawn(t, 3, 6, 10, 8, 4, 2)

	tests := []struct {
		name  string
		scale float64
	}{
		{"native", 1},
		{"double", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := RenderPNG(scene, WithScale(tt.scale))
			if err != nil {
				t.Fatalf("RenderPNG: %v", err)
			}
			cfg, err := png.DecodeConfig(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			wantW := int(r.Layout().Width*tt.scale + 0.999)
			wantH := int(r.Layout().Height * tt.scale)
			if cfg.Width != wantW || cfg.Height != wantH {
				t.Errorf("size = %dx%d, want %dx%d", cfg.Width, cfg.Height, wantW, wantH)
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	r, _ := drawn(t, 3, 6, 10, 8, 4, 2)
	data, err := RenderJSON(r, WithJSONTitle("net"), WithJSONSeed(0))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Neurons) != 33 || len(out.Connections) != 198 || len(out.Bands) != 6 {
		t.Errorf("neurons/connections/bands = %d/%d/%d", len(out.Neurons), len(out.Connections), len(out.Bands))
	}
	if out.Seed == nil || *out.Seed != 0 {
		t.Errorf("seed = %v, want 0", out.Seed)
	}
	if out.Bands[0].Label != "Input Layer" || out.Bands[0].Color != "#deeddc" {
		t.Errorf("band 0 = %+v", out.Bands[0])
	}
	if out.Connections[0].Color != hex(weights.Color(1, weights.DefaultScale)) {
		t.Errorf("connection color = %s", out.Connections[0].Color)
	}
}

func ExampleRenderSVG() {
	scene := canvas.NewScene(0, 0)
	r, _ := diagram.New(topology.MustNew(2, 3), scene)
	_ = r.Draw()

	svg := string(RenderSVG(scene, WithRenderer(r), WithDocumentID("example")))
	fmt.Println(strings.Count(svg, "<ellipse "), strings.Count(svg, "<line "))
	// Output: 5 6
}
