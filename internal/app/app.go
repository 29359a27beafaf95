package app

import (
	"fmt"
	"log"
	"time"

	"nescore/internal/bus"
	"nescore/internal/cartridge"
	"nescore/internal/cpu"
	"nescore/internal/graphics"
	"nescore/internal/ppu"
)

// cyclesPerFrame approximates one NTSC frame's worth of CPU cycles
// (29780.5, rounded down) for the headless frame-stepping loop.
const cyclesPerFrame = 29780

// Application wires together the cartridge, bus, CPU, and a graphics
// backend, and drives the main emulation loop.
type Application struct {
	config *Config

	cartridge *cartridge.Cartridge
	ppu       *ppu.PPU
	bus       *bus.Bus
	cpu       *cpu.CPU

	graphicsBackend graphics.Backend
	window          graphics.Window

	headless bool
	running  bool

	frameCount uint64
	startTime  time.Time

	// onFramePresented is invoked from the PPU frame callback after
	// tracing; Run/RunHeadless set it instead of replacing the frame
	// callback outright, so PPU tracing installed by LoadROM always stays
	// wired regardless of which run mode follows.
	onFramePresented func(ppu.FrameView)
}

// NewApplicationWithMode creates an Application, loading config from
// configPath (writing defaults if absent) and forcing the headless backend
// when nogui is true.
func NewApplicationWithMode(configPath string, nogui bool) (*Application, error) {
	config := NewConfig()
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("app: load config: %w", err)
	}
	if nogui {
		config.Video.Backend = "headless"
	}

	backend, err := graphics.CreateBackend(graphics.BackendType(config.Video.Backend))
	if err != nil {
		return nil, fmt.Errorf("app: create graphics backend: %w", err)
	}

	width, height := config.GetWindowResolution()
	if err := backend.Initialize(graphics.Config{
		WindowTitle:  "nescore",
		WindowWidth:  width,
		WindowHeight: height,
		Headless:     nogui,
	}); err != nil {
		return nil, fmt.Errorf("app: initialize graphics backend: %w", err)
	}

	return &Application{
		config:          config,
		graphicsBackend: backend,
		headless:        nogui,
		startTime:       time.Now(),
	}, nil
}

// GetConfig returns the application's configuration.
func (a *Application) GetConfig() *Config { return a.config }

// ApplyDebugSettings wires up CPU/PPU tracing per the current config, using
// the instrumentation hook the cpu package exposes (spec.md §6).
func (a *Application) ApplyDebugSettings() {
	if a.cpu == nil {
		return
	}
	if a.config.Debug.CPUTracing {
		a.cpu.SetInstrumentation(func(c *cpu.CPU) {
			log.Printf("[CPU] PC=%04X A=%02X X=%02X Y=%02X SP=%02X P=%02X",
				c.PC, c.A, c.X, c.Y, c.SP, c.StatusByte())
		})
	} else {
		a.cpu.SetInstrumentation(nil)
	}
}

// LoadROM loads a cartridge from path and (re)builds the PPU/Bus/CPU around
// it.
func (a *Application) LoadROM(path string) error {
	cart, err := cartridge.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("app: load rom: %w", err)
	}

	a.cartridge = cart
	a.ppu = ppu.New(cart, cart.Mirroring())
	a.bus = bus.New(cart, a.ppu)
	a.cpu = cpu.New(a.bus)

	a.ppu.SetFrameCallback(func(view ppu.FrameView) {
		if a.config.Debug.PPUTracing {
			log.Printf("[PPU] frame complete, vblank=%v", view.VBlank)
		}
		if a.onFramePresented != nil {
			a.onFramePresented(view)
		}
	})

	return nil
}

// GetBus exposes the bus for direct stepping (used by headless runs and
// tests).
func (a *Application) GetBus() *bus.Bus { return a.bus }

// GetFrameCount returns the number of frames presented (GUI) or stepped
// (headless) so far.
func (a *Application) GetFrameCount() uint64 { return a.frameCount }

// GetUptime returns time elapsed since the Application was created.
func (a *Application) GetUptime() time.Duration { return time.Since(a.startTime) }

// GetFPS returns the average frames-per-second over the application's
// lifetime so far.
func (a *Application) GetFPS() float64 {
	uptime := a.GetUptime().Seconds()
	if uptime <= 0 {
		return 0
	}
	return float64(a.frameCount) / uptime
}

// Run starts the GUI application loop. It requires a ROM already loaded via
// LoadROM.
func (a *Application) Run() error {
	if a.cpu == nil {
		return fmt.Errorf("app: no ROM loaded")
	}

	width, height := a.config.GetWindowResolution()
	window, err := a.graphicsBackend.CreateWindow("nescore", width, height)
	if err != nil {
		return fmt.Errorf("app: create window: %w", err)
	}
	a.window = window
	a.running = true

	a.onFramePresented = func(view ppu.FrameView) {
		a.frameCount++
		if err := a.window.Present(view); err != nil {
			log.Printf("[app] present error: %v", err)
		}
	}

	runner, ok := window.(interface{ Run(func() error) error })
	if !ok {
		return fmt.Errorf("app: backend window does not support a run loop")
	}

	return runner.Run(func() error {
		startCycles := a.bus.Cycles()
		for a.bus.Cycles()-startCycles < cyclesPerFrame {
			if a.cpu.Halted() {
				return a.cpu.Err()
			}
			if err := a.cpu.Step(); err != nil {
				return err
			}
		}
		return nil
	})
}

// RunHeadless steps the CPU for the given number of frames with no window,
// for automated testing and CI.
func (a *Application) RunHeadless(frames int) error {
	if a.cpu == nil {
		return fmt.Errorf("app: no ROM loaded")
	}

	a.onFramePresented = func(ppu.FrameView) {
		a.frameCount++
	}

	for f := 0; f < frames; f++ {
		startCycles := a.bus.Cycles()
		for a.bus.Cycles()-startCycles < cyclesPerFrame {
			if a.cpu.Halted() {
				return a.cpu.Err()
			}
			if err := a.cpu.Step(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Cleanup releases graphics resources.
func (a *Application) Cleanup() error {
	a.running = false
	if a.window != nil {
		if err := a.window.Cleanup(); err != nil {
			return err
		}
	}
	return a.graphicsBackend.Cleanup()
}
