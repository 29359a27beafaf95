//go:build headless
// +build headless

package graphics

import (
	"fmt"

	"nescore/internal/ppu"
)

// EbitengineBackend stub for headless builds (no ebiten import, so a
// -tags headless build doesn't need a display/GL stack available).
type EbitengineBackend struct{}

// EbitengineWindow stub for headless builds.
type EbitengineWindow struct{}

// NewEbitengineBackend creates a stub backend for headless builds.
func NewEbitengineBackend() Backend {
	return &EbitengineBackend{}
}

func (b *EbitengineBackend) Initialize(config Config) error {
	return fmt.Errorf("ebitengine backend not available in headless build")
}

func (b *EbitengineBackend) CreateWindow(title string, width, height int) (Window, error) {
	return nil, fmt.Errorf("ebitengine backend not available in headless build")
}

func (b *EbitengineBackend) Cleanup() error { return nil }
func (b *EbitengineBackend) IsHeadless() bool { return true }
func (b *EbitengineBackend) Name() string     { return "Ebitengine-Stub" }

func (w *EbitengineWindow) SetTitle(title string)         {}
func (w *EbitengineWindow) GetSize() (int, int)           { return 0, 0 }
func (w *EbitengineWindow) ShouldClose() bool             { return true }
func (w *EbitengineWindow) Present(view ppu.FrameView) error {
	return fmt.Errorf("ebitengine backend not available in headless build")
}
func (w *EbitengineWindow) Cleanup() error { return nil }
