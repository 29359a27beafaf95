// Package graphics renders the PPU's vblank/palette state to a window. Full
// tile and sprite compositing is out of scope (spec.md Non-goals); what's
// rendered is a palette-index-0 background field plus a status strip drawn
// from the presented view's VBlank flag. Views are captured when a frame
// completes, after the PPU has cleared vblank, so the strip is drawn black.
package graphics

import (
	"fmt"

	"nescore/internal/ppu"
)

// Backend represents a graphics rendering backend (Ebitengine, headless).
type Backend interface {
	// Initialize initializes the graphics backend.
	Initialize(config Config) error

	// CreateWindow creates a window for rendering (returns a no-op Window
	// for headless backends).
	CreateWindow(title string, width, height int) (Window, error)

	// Cleanup releases all resources.
	Cleanup() error

	// IsHeadless returns true if running in headless mode.
	IsHeadless() bool

	// Name returns the backend name for identification.
	Name() string
}

// Window represents a rendering surface.
type Window interface {
	// SetTitle sets the window title.
	SetTitle(title string)

	// GetSize returns window dimensions.
	GetSize() (width, height int)

	// ShouldClose returns true if the window should close.
	ShouldClose() bool

	// Present renders one PPU frame to the window.
	Present(view ppu.FrameView) error

	// Cleanup releases window resources.
	Cleanup() error
}

// Config contains configuration for graphics backends.
type Config struct {
	WindowTitle  string
	WindowWidth  int
	WindowHeight int
	Headless     bool
}

// BackendType identifies a graphics backend.
type BackendType string

const (
	BackendEbitengine BackendType = "ebitengine"
	BackendHeadless   BackendType = "headless"
)

// CreateBackend creates a graphics backend of the specified type.
func CreateBackend(backendType BackendType) (Backend, error) {
	switch backendType {
	case BackendEbitengine:
		return NewEbitengineBackend(), nil
	case BackendHeadless:
		return NewHeadlessBackend(), nil
	default:
		return nil, fmt.Errorf("graphics: unrecognized backend type %q", backendType)
	}
}
