package graphics

import (
	"fmt"

	"nescore/internal/ppu"
)

// HeadlessBackend implements Backend for headless operation (tests, CI,
// frame-accuracy runs with no display).
type HeadlessBackend struct {
	initialized bool
	config      Config
}

// HeadlessWindow implements Window for headless operation.
type HeadlessWindow struct {
	title      string
	width      int
	height     int
	running    bool
	frameCount int
	lastView   ppu.FrameView
}

// NewHeadlessBackend creates a new headless graphics backend.
func NewHeadlessBackend() Backend {
	return &HeadlessBackend{}
}

func (b *HeadlessBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("headless backend already initialized")
	}
	b.config = config
	b.initialized = true
	return nil
}

func (b *HeadlessBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}
	return &HeadlessWindow{title: title, width: width, height: height, running: true}, nil
}

func (b *HeadlessBackend) Cleanup() error  { b.initialized = false; return nil }
func (b *HeadlessBackend) IsHeadless() bool { return true }
func (b *HeadlessBackend) Name() string     { return "Headless" }

func (w *HeadlessWindow) SetTitle(title string) { w.title = title }
func (w *HeadlessWindow) GetSize() (int, int)   { return w.width, w.height }
func (w *HeadlessWindow) ShouldClose() bool     { return !w.running }

// Present just records the latest view; headless runs don't draw anything.
func (w *HeadlessWindow) Present(view ppu.FrameView) error {
	w.frameCount++
	w.lastView = view
	return nil
}

func (w *HeadlessWindow) Cleanup() error {
	w.running = false
	return nil
}

// FrameCount returns the number of frames presented, for tests.
func (w *HeadlessWindow) FrameCount() int { return w.frameCount }

// LastView returns the most recently presented frame view, for tests.
func (w *HeadlessWindow) LastView() ppu.FrameView { return w.lastView }
