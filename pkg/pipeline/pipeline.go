// Package pipeline provides the core visualization pipeline for netgraph.
//
// This package implements the complete topology → layout → draw → render
// pipeline shared by the CLI and the HTTP server. By centralizing this
// logic, every entry point produces identical diagrams for identical options.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Layout: Compute neuron, connection and band geometry for a topology
//  2. Draw: Paint the diagram into an in-memory [canvas.Scene] and assign weights
//  3. Render: Export the scene in various formats (SVG, PNG, PDF, JSON, DOT)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Layers:  []int{3, 6, 10, 8, 4, 2},
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout and draw only
//	drawn, err := runner.Draw(ctx, opts)
//
//	// Render an existing drawing
//	artifacts, err := runner.Render(ctx, drawn, opts)
//
// [canvas.Scene]: github.com/matzehuels/netgraph/pkg/canvas.Scene
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netgraph/pkg/canvas"
	"github.com/matzehuels/netgraph/pkg/diagram"
	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/layout"
	"github.com/matzehuels/netgraph/pkg/topology"
	"github.com/matzehuels/netgraph/pkg/weights"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and HTTP
// =============================================================================

// DefaultSeed is the default random seed for reproducible weights.
const DefaultSeed = uint64(42)

// DefaultTitle is the window and document title.
const DefaultTitle = "Neural Network Graph"

// DefaultLayers is the topology drawn when none is given.
var DefaultLayers = []int{3, 6, 10, 8, 4, 2}

// Visualization types.
const (
	VizTypeDiagram  = "diagram"
	VizTypeNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeDiagram

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// Weight source names.
const (
	WeightsRandom   = "random"
	WeightsConstant = "constant"
	WeightsFile     = "file"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeDiagram:  true,
	VizTypeNodelink: true,
}

// ValidWeightSources is the set of supported weight sources.
var ValidWeightSources = map[string]bool{
	WeightsRandom:   true,
	WeightsConstant: true,
	WeightsFile:     true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for HTTP requests.
type Options struct {
	// Topology options
	Layers []int `json:"layers,omitempty"`

	// Layout options
	Canvas layout.Config `json:"canvas"`

	// Weight options
	WeightSource string  `json:"weight_source,omitempty"`
	WeightValue  float64 `json:"weight_value,omitempty"`
	WeightFile   string  `json:"weight_file,omitempty"`
	Seed         *uint64 `json:"seed,omitempty"` // nil selects DefaultSeed; 0 is a valid seed
	Scale        float64 `json:"scale,omitempty"`

	// Draw options
	Captions bool   `json:"captions,omitempty"`
	Hover    string `json:"hover,omitempty"` // "layer:index" of a neuron to highlight in exports

	// Render options
	VizType  string   `json:"viz_type,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Title    string   `json:"title,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`

	// Runtime options (not serialized)
	Palette *diagram.Palette `json:"-"`
	Weights weights.Source   `json:"-"` // overrides WeightSource when set
	Logger  *log.Logger      `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Drawn

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Drawn is a topology painted into a scene.
type Drawn struct {
	Topology topology.Topology
	Renderer *diagram.Renderer
	Scene    *canvas.Scene
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Neurons     int
	Connections int
	Shapes      int
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: diagram, nodelink)", vizType)
	}
	return nil
}

// ValidateWeightSource checks that a weight source name is valid.
func ValidateWeightSource(source string) error {
	if !ValidWeightSources[source] {
		return errors.New(errors.ErrCodeInvalidWeights, "invalid weight source: %q (must be one of: random, constant, file)", source)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForDraw(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SeedOrDefault returns the random weight seed, or DefaultSeed when unset.
func (o Options) SeedOrDefault() uint64 {
	if o.Seed == nil {
		return DefaultSeed
	}
	return *o.Seed
}

// SetDrawDefaults sets default values for layout and drawing. Only nil
// Layers are defaulted; an empty non-nil slice fails validation.
func (o *Options) SetDrawDefaults() {
	if o.Layers == nil {
		o.Layers = slices.Clone(DefaultLayers)
	}
	if o.Canvas == (layout.Config{}) {
		o.Canvas = layout.DefaultConfig()
	}
	if o.WeightSource == "" {
		o.WeightSource = WeightsRandom
	}
	if o.Seed == nil {
		seed := DefaultSeed
		o.Seed = &seed
	}
	if o.Scale == 0 {
		o.Scale = weights.DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForDraw validates and sets defaults for layout and drawing.
func (o *Options) ValidateForDraw() error {
	o.SetDrawDefaults()
	if _, err := o.Topology(); err != nil {
		return err
	}
	if err := o.Canvas.Validate(); err != nil {
		return err
	}
	if o.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidWeights, "weight scale must be positive, got %g", o.Scale)
	}
	if o.Weights == nil {
		if err := ValidateWeightSource(o.WeightSource); err != nil {
			return err
		}
		if o.WeightSource == WeightsFile && o.WeightFile == "" {
			return errors.New(errors.ErrCodeInvalidWeights, "weight source %q needs a file", WeightsFile)
		}
	}
	if o.Hover != "" {
		if _, err := ParseNeuronID(o.Hover); err != nil {
			return err
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.PNGScale == 0 {
		o.PNGScale = 1
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if o.PNGScale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", o.PNGScale)
	}
	return ValidateFormats(o.Formats)
}

// Topology builds the validated topology from Layers.
func (o *Options) Topology() (topology.Topology, error) {
	return topology.New(o.Layers...)
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// FormatList returns the formats joined for log output.
func (o *Options) FormatList() string {
	return strings.Join(o.Formats, ",")
}
