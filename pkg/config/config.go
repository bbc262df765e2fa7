// Package config loads netgraph settings from a TOML file.
//
// Every key is optional. Keys that are absent keep the values of [Default],
// which reproduce the reference rendering: a 3-6-10-8-4-2 network on a
// 500px tall canvas with random weights seeded with 42.
//
//	title  = "Neural Network Graph"
//	layers = [3, 6, 10, 8, 4, 2]
//
//	[canvas]
//	height = 500
//
//	[colors]
//	neuron_hover = "#ffa500"
//	hidden_layers = ["#ffffff", "#f4f4f4"]
//
//	[weights]
//	source = "random"
//	seed = 42
//
// Unknown keys are rejected so typos do not pass silently.
package config

import (
	"bytes"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/netgraph/pkg/diagram"
	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/layout"
	"github.com/matzehuels/netgraph/pkg/pipeline"
)

const (
	// appName names the directory under the config home.
	appName = "netgraph"

	// fileName is the config file inside that directory.
	fileName = "config.toml"
)

// Config is the decoded configuration file.
type Config struct {
	Title    string        `toml:"title"`
	Layers   []int         `toml:"layers"`
	Captions bool          `toml:"captions"`
	Canvas   layout.Config `toml:"canvas"`
	Colors   Colors        `toml:"colors"`
	Weights  Weights       `toml:"weights"`
}

// Colors holds hex color strings ("#rrggbb").
type Colors struct {
	Neuron           string   `toml:"neuron"`
	NeuronHover      string   `toml:"neuron_hover"`
	Connection       string   `toml:"connection"`
	ConnectionDimmed string   `toml:"connection_dimmed"`
	InputLayer       string   `toml:"input_layer"`
	OutputLayer      string   `toml:"output_layer"`
	HiddenLayers     []string `toml:"hidden_layers"`
}

// Weights selects the weight source.
type Weights struct {
	Source string  `toml:"source"` // random | constant | file
	Seed   uint64  `toml:"seed"`
	Value  float64 `toml:"value"`
	File   string  `toml:"file"`
	Scale  float64 `toml:"scale"`
}

// Default returns the built-in configuration.
func Default() Config {
	p := diagram.DefaultPalette()
	return Config{
		Title:  pipeline.DefaultTitle,
		Layers: slices.Clone(pipeline.DefaultLayers),
		Canvas: layout.DefaultConfig(),
		Colors: Colors{
			Neuron:           hex(p.Neuron),
			NeuronHover:      hex(p.NeuronHover),
			Connection:       hex(p.Connection),
			ConnectionDimmed: hex(p.ConnectionDimmed),
			InputLayer:       hex(p.InputLayer),
			OutputLayer:      hex(p.OutputLayer),
			HiddenLayers:     []string{hex(p.HiddenLayers[0]), hex(p.HiddenLayers[1])},
		},
		Weights: Weights{
			Source: pipeline.WeightsRandom,
			Seed:   pipeline.DefaultSeed,
			Scale:  2,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/netgraph/config.toml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads and validates the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data)
}

// LoadOrDefault is [Load], except that a missing file yields [Default].
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes TOML on top of [Default] and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Canvas.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "canvas")
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	if err := pipeline.ValidateWeightSource(c.Weights.Source); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "weights")
	}
	if c.Weights.Source == pipeline.WeightsFile && c.Weights.File == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "weights.file is required when weights.source = %q", pipeline.WeightsFile)
	}
	if c.Weights.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "weights.scale must be positive, got %g", c.Weights.Scale)
	}
	if len(c.Layers) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layers must name at least one layer")
	}
	for i, n := range c.Layers {
		if n < 1 {
			return errors.New(errors.ErrCodeInvalidConfig, "layers[%d] must be at least 1, got %d", i, n)
		}
	}
	return nil
}

// Palette parses the color section.
func (c Config) Palette() (diagram.Palette, error) {
	p := diagram.DefaultPalette()
	fields := []struct {
		name string
		src  string
		dst  *color.RGBA
	}{
		{"neuron", c.Colors.Neuron, &p.Neuron},
		{"neuron_hover", c.Colors.NeuronHover, &p.NeuronHover},
		{"connection", c.Colors.Connection, &p.Connection},
		{"connection_dimmed", c.Colors.ConnectionDimmed, &p.ConnectionDimmed},
		{"input_layer", c.Colors.InputLayer, &p.InputLayer},
		{"output_layer", c.Colors.OutputLayer, &p.OutputLayer},
	}
	for _, f := range fields {
		if f.src == "" {
			continue
		}
		v, err := parseColor(f.name, f.src)
		if err != nil {
			return diagram.Palette{}, err
		}
		*f.dst = v
	}

	switch len(c.Colors.HiddenLayers) {
	case 0:
	case 1, 2:
		for i := range p.HiddenLayers {
			src := c.Colors.HiddenLayers[min(i, len(c.Colors.HiddenLayers)-1)]
			v, err := parseColor("hidden_layers", src)
			if err != nil {
				return diagram.Palette{}, err
			}
			p.HiddenLayers[i] = v
		}
	default:
		return diagram.Palette{}, errors.New(errors.ErrCodeInvalidConfig, "colors.hidden_layers takes one or two colors, got %d", len(c.Colors.HiddenLayers))
	}
	return p, nil
}

// Options converts the configuration into pipeline options.
func (c Config) Options() (pipeline.Options, error) {
	p, err := c.Palette()
	if err != nil {
		return pipeline.Options{}, err
	}
	seed := c.Weights.Seed
	return pipeline.Options{
		Layers:       slices.Clone(c.Layers),
		Canvas:       c.Canvas,
		WeightSource: c.Weights.Source,
		WeightValue:  c.Weights.Value,
		WeightFile:   c.Weights.File,
		Seed:         &seed,
		Scale:        c.Weights.Scale,
		Captions:     c.Captions,
		Title:        c.Title,
		Palette:      &p,
	}, nil
}

func parseColor(name, s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "colors.%s", name)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func hex(c color.RGBA) string {
	cc, _ := colorful.MakeColor(c)
	return cc.Hex()
}
