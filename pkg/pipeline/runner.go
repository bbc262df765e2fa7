package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netgraph/pkg/canvas"
	"github.com/matzehuels/netgraph/pkg/diagram"
	"github.com/matzehuels/netgraph/pkg/observability"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the logger. Every call draws into a
// fresh scene, so multiple goroutines can safely share one Runner.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete layout → draw → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1+2: Layout and draw
	layoutStart := time.Now()
	drawn, err := r.Draw(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("draw: %w", err)
	}
	result.Drawn = *drawn
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Neurons = drawn.Topology.Neurons()
	result.Stats.Connections = drawn.Topology.ConnectionCount()
	result.Stats.Shapes = drawn.Scene.Len()

	r.Logger.Info("computed layout",
		"topology", drawn.Topology.String(),
		"neurons", result.Stats.Neurons,
		"connections", result.Stats.Connections,
		"duration", result.Stats.LayoutTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, drawn, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Draw computes the layout of opts' topology and paints it into a new scene.
// If opts.Hover names a neuron, it is left highlighted.
func (r *Runner) Draw(ctx context.Context, opts Options) (*Drawn, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForDraw(); err != nil {
		return nil, err
	}

	topo, err := opts.Topology()
	if err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, topo.String(), topo.Neurons())

	start := time.Now()
	src, err := BuildWeights(topo, opts)
	if err != nil {
		hooks.OnLayoutComplete(ctx, topo.String(), time.Since(start), err)
		return nil, err
	}

	scene := canvas.NewScene(0, 0)
	ropts := []diagram.Option{
		diagram.WithLayoutConfig(opts.Canvas),
		diagram.WithWeights(src),
		diagram.WithScale(opts.Scale),
		diagram.WithLogger(opts.Logger),
	}
	if opts.Palette != nil {
		ropts = append(ropts, diagram.WithPalette(*opts.Palette))
	}
	if opts.Captions {
		ropts = append(ropts, diagram.WithCaptions())
	}
	renderer, err := diagram.New(topo, scene, ropts...)
	hooks.OnLayoutComplete(ctx, topo.String(), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	drawStart := time.Now()
	err = renderer.Draw()
	if err == nil && opts.Hover != "" {
		err = hoverNeuron(renderer, opts.Hover)
	}
	hooks.OnDrawComplete(ctx, scene.Len(), time.Since(drawStart), err)
	if err != nil {
		return nil, err
	}

	return &Drawn{Topology: topo, Renderer: renderer, Scene: scene}, nil
}

func hoverNeuron(r *diagram.Renderer, s string) error {
	id, err := ParseNeuronID(s)
	if err != nil {
		return err
	}
	return r.EnterNeuron(id)
}

// Render exports a drawn scene in every requested format.
func (r *Runner) Render(ctx context.Context, drawn *Drawn, opts Options) (map[string][]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, err := Render(ctx, drawn, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
