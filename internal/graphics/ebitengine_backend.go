//go:build !headless
// +build !headless

package graphics

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"nescore/internal/ppu"
)

// nesPalette is the fixed 64-entry NTSC NES master palette (palette RAM
// stores indices into this table, not direct RGB).
var nesPalette = [64]color.RGBA{
	{84, 84, 84, 255}, {0, 30, 116, 255}, {8, 16, 144, 255}, {48, 0, 136, 255},
	{68, 0, 100, 255}, {92, 0, 48, 255}, {84, 4, 0, 255}, {60, 24, 0, 255},
	{32, 42, 0, 255}, {8, 58, 0, 255}, {0, 64, 0, 255}, {0, 60, 0, 255},
	{0, 50, 60, 255}, {0, 0, 0, 255}, {0, 0, 0, 255}, {0, 0, 0, 255},
	{152, 150, 152, 255}, {8, 76, 196, 255}, {48, 50, 236, 255}, {92, 30, 228, 255},
	{136, 20, 176, 255}, {160, 20, 100, 255}, {152, 34, 32, 255}, {120, 60, 0, 255},
	{84, 90, 0, 255}, {40, 114, 0, 255}, {8, 124, 0, 255}, {0, 118, 40, 255},
	{0, 102, 120, 255}, {0, 0, 0, 255}, {0, 0, 0, 255}, {0, 0, 0, 255},
	{236, 238, 236, 255}, {76, 154, 236, 255}, {120, 124, 236, 255}, {176, 98, 236, 255},
	{228, 84, 236, 255}, {236, 88, 180, 255}, {236, 106, 100, 255}, {212, 136, 32, 255},
	{160, 170, 0, 255}, {116, 196, 0, 255}, {76, 208, 32, 255}, {56, 204, 108, 255},
	{56, 180, 204, 255}, {60, 60, 60, 255}, {0, 0, 0, 255}, {0, 0, 0, 255},
	{236, 238, 236, 255}, {168, 204, 236, 255}, {188, 188, 236, 255}, {212, 178, 236, 255},
	{236, 174, 236, 255}, {236, 174, 212, 255}, {236, 180, 176, 255}, {228, 196, 144, 255},
	{204, 210, 120, 255}, {180, 222, 120, 255}, {168, 226, 144, 255}, {152, 226, 180, 255},
	{160, 214, 228, 255}, {160, 162, 160, 255}, {0, 0, 0, 255}, {0, 0, 0, 255},
}

// EbitengineBackend implements Backend using Ebitengine.
type EbitengineBackend struct {
	initialized bool
	config      Config
}

// EbitengineWindow implements Window for Ebitengine.
type EbitengineWindow struct {
	title   string
	width   int
	height  int
	running bool
	game    *EbitengineGame
}

// EbitengineGame implements ebiten.Game, drawing a background color field
// plus a status strip summarizing the current PPU view.
type EbitengineGame struct {
	window     *EbitengineWindow
	view       ppu.FrameView
	updateFunc func() error
}

// NewEbitengineBackend creates a new Ebitengine graphics backend.
func NewEbitengineBackend() Backend {
	return &EbitengineBackend{}
}

// Initialize initializes the Ebitengine backend.
func (b *EbitengineBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("ebitengine backend already initialized")
	}
	b.config = config
	b.initialized = true
	return nil
}

// CreateWindow creates an Ebitengine window.
func (b *EbitengineBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}
	if b.config.Headless {
		return nil, fmt.Errorf("cannot create window in headless mode")
	}

	game := &EbitengineGame{}
	window := &EbitengineWindow{title: title, width: width, height: height, running: true, game: game}
	game.window = window

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return window, nil
}

// Cleanup releases all Ebitengine resources.
func (b *EbitengineBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// IsHeadless returns true if running in headless mode.
func (b *EbitengineBackend) IsHeadless() bool { return b.config.Headless }

// Name returns the backend name.
func (b *EbitengineBackend) Name() string { return "Ebitengine" }

// SetTitle sets the window title.
func (w *EbitengineWindow) SetTitle(title string) {
	w.title = title
	ebiten.SetWindowTitle(title)
}

// GetSize returns window dimensions.
func (w *EbitengineWindow) GetSize() (width, height int) { return w.width, w.height }

// ShouldClose returns true if the window should close.
func (w *EbitengineWindow) ShouldClose() bool { return !w.running }

// Present stores the latest frame view for the next Draw call.
func (w *EbitengineWindow) Present(view ppu.FrameView) error {
	if w.game == nil {
		return fmt.Errorf("game not initialized")
	}
	w.game.view = view
	return nil
}

// Cleanup releases window resources.
func (w *EbitengineWindow) Cleanup() error {
	w.running = false
	return nil
}

// Run starts the Ebitengine game loop. The caller's emulator update runs
// from Update via updateFunc.
func (w *EbitengineWindow) Run(updateFunc func() error) error {
	if w.game == nil {
		return fmt.Errorf("game not initialized")
	}
	w.game.updateFunc = updateFunc
	return ebiten.RunGame(w.game)
}

func (g *EbitengineGame) Update() error {
	if g.updateFunc == nil {
		return nil
	}
	return g.updateFunc()
}

// Draw fills the screen with the color at palette entry 0 (the backdrop
// color) and overlays a status strip, white when the view's VBlank flag is
// set and black otherwise. Views come from the frame-complete callback,
// which runs after vblank is cleared, so the flag is false in them.
func (g *EbitengineGame) Draw(screen *ebiten.Image) {
	if len(g.view.Palette) == 0 {
		// No frame has completed yet (Ebitengine calls Draw before the
		// first Update produces one): fall back to black.
		screen.Fill(color.RGBA{0, 0, 0, 255})
		return
	}

	backdropIndex := g.view.Palette[0] & 0x3f
	screen.Fill(nesPalette[backdropIndex])

	statusColor := color.RGBA{0, 0, 0, 255}
	if g.view.VBlank {
		statusColor = color.RGBA{255, 255, 255, 255}
	}
	w, _ := screen.Bounds().Dx(), screen.Bounds().Dy()
	stripHeight := 4
	for y := 0; y < stripHeight; y++ {
		for x := 0; x < w; x++ {
			screen.Set(x, y, statusColor)
		}
	}
}

func (g *EbitengineGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
