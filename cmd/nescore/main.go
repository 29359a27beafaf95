// Package main implements the nescore NES emulator executable.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"nescore/internal/app"
	"nescore/internal/version"
)

func main() {
	var (
		romFile    = flag.String("rom", "", "Path to NES ROM file")
		configFile = flag.String("config", "", "Path to configuration file")
		debug      = flag.Bool("debug", false, "Enable CPU/PPU tracing")
		nogui      = flag.Bool("nogui", false, "Run without a window (headless mode)")
		frames     = flag.Int("frames", 120, "Frames to run in headless mode")
		help       = flag.Bool("help", false, "Show help message")
		showVer    = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	if *showVer {
		version.PrintBuildInfo()
		os.Exit(0)
	}

	setupGracefulShutdown()

	fmt.Println("nescore starting...")

	configPath := *configFile
	if configPath == "" {
		configPath = app.GetDefaultConfigPath()
	}

	application, err := app.NewApplicationWithMode(configPath, *nogui)
	if err != nil {
		log.Fatalf("failed to create application: %v", err)
	}
	defer func() {
		if err := application.Cleanup(); err != nil {
			log.Printf("cleanup error: %v", err)
		}
	}()

	if *debug {
		application.GetConfig().Debug.CPUTracing = true
		application.GetConfig().Debug.PPUTracing = true
		fmt.Println("debug tracing enabled")
	}

	if *romFile == "" {
		log.Fatal("a ROM file is required: -rom <file>")
	}

	fmt.Printf("loading ROM: %s\n", *romFile)
	if err := application.LoadROM(*romFile); err != nil {
		log.Fatalf("failed to load ROM: %v", err)
	}
	application.ApplyDebugSettings()

	if *nogui {
		fmt.Printf("running headless for %d frames...\n", *frames)
		if err := application.RunHeadless(*frames); err != nil {
			log.Fatalf("headless run failed: %v", err)
		}
		fmt.Printf("completed %d frames\n", application.GetFrameCount())
	} else {
		fmt.Println("starting GUI mode...")
		if err := application.Run(); err != nil {
			log.Fatalf("GUI mode failed: %v", err)
		}
		fmt.Printf("session time: %v, average FPS: %.1f\n", application.GetUptime(), application.GetFPS())
	}

	fmt.Println("nescore shutting down")
}

func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Println("\ninterrupt received, shutting down")
		os.Exit(0)
	}()
}

func printUsage() {
	fmt.Println("nescore - a Go NES emulator core")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  nescore -rom <file> [options]        # GUI mode")
	fmt.Println("  nescore -rom <file> -nogui [options] # headless mode")
	fmt.Println()
	fmt.Println("OPTIONS:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("SUPPORTED FORMATS:")
	fmt.Println("  - iNES (.nes), NROM (mapper 0) only")
	fmt.Println()
	fmt.Println("CONFIGURATION:")
	fmt.Println("  Config file: ./config/nescore.json")
	fmt.Println("  ROMs:        ./roms/")
}
