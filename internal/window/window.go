// Package window shows a drawn scene in a desktop window.
//
// ebiten's game loop is the only event loop: each tick polls the cursor and
// feeds it to [canvas.Scene.Pointer], which dispatches neuron enter and
// leave synchronously. The scene is rasterized again only when its version
// changes.
package window

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/matzehuels/netgraph/pkg/canvas"
	"github.com/matzehuels/netgraph/pkg/render/raster"
)

// DefaultTitle is the window title when none is given.
const DefaultTitle = "Neural Network Graph"

// Options configures the window.
type Options struct {
	Title  string
	Logger *log.Logger
}

// Run opens a non-resizable window sized to the scene and blocks until the
// window is closed, Escape is pressed, ctx is canceled, or a pointer
// listener fails.
func Run(ctx context.Context, scene *canvas.Scene, opts Options) error {
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	rz, err := raster.New()
	if err != nil {
		return err
	}
	g := &game{ctx: ctx, scene: scene, frame: raster.NewFrame(rz, scene), logger: opts.Logger}

	w, h := g.frame.Size()
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetTPS(60)

	opts.Logger.Debug("Opening window", "width", w, "height", h)
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	return ctx.Err()
}

type game struct {
	ctx    context.Context
	scene  *canvas.Scene
	frame  *raster.Frame
	screen *ebiten.Image
	logger *log.Logger
}

func (g *game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	w, h := g.frame.Size()
	if x < 0 || y < 0 || x >= w || y >= h || !ebiten.IsFocused() {
		return g.scene.PointerExit()
	}
	return g.scene.Pointer(float64(x), float64(y))
}

func (g *game) Draw(screen *ebiten.Image) {
	img, repainted := g.frame.Image()
	b := img.Bounds()
	if g.screen == nil || g.screen.Bounds().Dx() != b.Dx() || g.screen.Bounds().Dy() != b.Dy() {
		if g.screen != nil {
			g.screen.Deallocate()
		}
		g.screen = ebiten.NewImage(b.Dx(), b.Dy())
		repainted = true
	}
	if repainted {
		g.screen.WritePixels(img.Pix)
	}
	screen.DrawImage(g.screen, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.frame.Size()
}
