package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/netgraph/pkg/config"
	"github.com/matzehuels/netgraph/pkg/errors"
)

// newTestCLI isolates the CLI from any user config file.
func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return New(io.Discard, LogInfo)
}

// execute runs the root command with args and returns what it wrote to its
// output stream.
func execute(t *testing.T, c *CLI, args ...string) (string, error) {
	t.Helper()
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigPrecedence(t *testing.T) {
	cfgPath := writeConfig(t, "layers = [4, 4]\n[weights]\nseed = 9\n")

	tests := []struct {
		name       string
		args       []string
		wantLayers []int
		wantSeed   uint64
	}{
		{"defaults", []string{"config"}, []int{3, 6, 10, 8, 4, 2}, 42},
		{"file", []string{"config", "--config", cfgPath}, []int{4, 4}, 9},
		{"layers flag beats file", []string{"config", "--config", cfgPath, "--layers", "1-2-3"}, []int{1, 2, 3}, 9},
		{"args beat layers flag", []string{"config", "--layers", "1,2", "5", "6"}, []int{5, 6}, 42},
		{"seed flag beats file", []string{"config", "--config", cfgPath, "--seed", "3"}, []int{4, 4}, 3},
		{"zero seed flag", []string{"config", "--seed", "0"}, []int{3, 6, 10, 8, 4, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, newTestCLI(t), tt.args...)
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			cfg, err := config.Parse([]byte(out))
			if err != nil {
				t.Fatalf("printed config does not parse: %v\n%s", err, out)
			}
			if !slices.Equal(cfg.Layers, tt.wantLayers) {
				t.Errorf("layers = %v, want %v", cfg.Layers, tt.wantLayers)
			}
			if cfg.Weights.Seed != tt.wantSeed {
				t.Errorf("seed = %d, want %d", cfg.Weights.Seed, tt.wantSeed)
			}
		})
	}
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing explicit file", []string{"config", "--config", filepath.Join(t.TempDir(), "nope.toml")}, errors.ErrCodeFileNotFound},
		{"zero layer arg", []string{"config", "3", "0"}, errors.ErrCodeInvalidTopology},
		{"bad layers flag", []string{"config", "--layers", "a,b"}, errors.ErrCodeInvalidTopology},
		{"unknown key", []string{"config", "--config", writeConfig(t, "colour = 1\n")}, errors.ErrCodeInvalidConfig},
		{"empty layers in file", []string{"config", "--config", writeConfig(t, "layers = []\n")}, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, newTestCLI(t), tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	c := newTestCLI(t)
	out, err := execute(t, c, "config", "--path")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "netgraph", "config.toml")
	if strings.TrimSpace(out) != want {
		t.Errorf("path = %q, want %q", strings.TrimSpace(out), want)
	}
}

func TestRenderCommandWritesFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "out", "net")

	_, err := execute(t, newTestCLI(t), "render", "2", "3", "-f", "svg,json,dot", "-o", base, "--hover", "0:1")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, ext := range []string{"svg", "json", "dot"} {
		data, err := os.ReadFile(base + "." + ext)
		if err != nil {
			t.Errorf("missing %s output: %v", ext, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("%s output is empty", ext)
		}
	}

	svg, _ := os.ReadFile(base + ".svg")
	if got := bytes.Count(svg, []byte("<ellipse")); got != 5 {
		t.Errorf("svg ellipses = %d, want 5", got)
	}
}

func TestRenderCommandSingleOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagram.png")
	if _, err := execute(t, newTestCLI(t), "render", "--layers", "1,1", "-f", "png", "-o", path); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad format", []string{"render", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad type", []string{"render", "-t", "tower"}, errors.ErrCodeInvalidVizType},
		{"bad png scale", []string{"render", "--png-scale", "0"}, errors.ErrCodeInvalidInput},
		{"unknown hover neuron", []string{"render", "2", "2", "--hover", "5:0", "-o", filepath.Join(t.TempDir(), "x.svg")}, errors.ErrCodeNeuronNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, newTestCLI(t), tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		output  string
		want    map[string]string
	}{
		{"default single", []string{"svg"}, "", map[string]string{"svg": "netgraph.svg"}},
		{"explicit single", []string{"png"}, "a/b.img", map[string]string{"png": "a/b.img"}},
		{"multiple default", []string{"svg", "png"}, "", map[string]string{"svg": "netgraph.svg", "png": "netgraph.png"}},
		{"multiple strips extension", []string{"svg", "json"}, "out/net.svg", map[string]string{"svg": "out/net.svg", "json": "out/net.json"}},
		{"multiple keeps unknown extension", []string{"svg", "dot"}, "net.v2", map[string]string{"svg": "net.v2.svg", "dot": "net.v2.dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.formats, tt.output)
			if len(got) != len(tt.want) {
				t.Fatalf("outputPaths = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("outputPaths[%s] = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}

func TestInspectCommand(t *testing.T) {
	out, err := execute(t, newTestCLI(t), "inspect", "2", "3")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Network 2,3", "Input Layer", "Output Layer", "2 × 3 = 6", "neuron size"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "squeezed") {
		t.Error("two layers should not squeeze the layer gap")
	}
}

func TestInspectSqueezedGap(t *testing.T) {
	out, err := execute(t, newTestCLI(t), "inspect", "--layers", "2,2,2,2,2,2,2,2,2")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "squeezed from 150") {
		t.Errorf("wide network should report a squeezed gap:\n%s", out)
	}
}

func TestStatsLine(t *testing.T) {
	got := statsLine(5, 6, 0)
	if !strings.Contains(got, "5 neurons") || !strings.Contains(got, "6 connections") {
		t.Errorf("statsLine = %q", got)
	}
	if strings.Contains(got, "shapes") {
		t.Errorf("statsLine should omit zero counts: %q", got)
	}
}
