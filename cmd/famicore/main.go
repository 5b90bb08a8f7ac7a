package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/famicore/pkg/gui"
	"github.com/famicore/pkg/logger"
	"github.com/famicore/pkg/nes"
)

func main() {
	var (
		logLevel   = flag.String("log-level", "info", "Log level (off, error, warn, info, debug, trace)")
		logFile    = flag.String("log-file", "", "Log file path (empty for stdout)")
		cpuLog     = flag.Bool("cpu-log", false, "Enable CPU logging")
		ppuLog     = flag.Bool("ppu-log", false, "Enable PPU logging")
		apuLog     = flag.Bool("apu-log", false, "Enable APU logging")
		mapperLog  = flag.Bool("mapper-log", false, "Enable mapper logging")
		busLog     = flag.Bool("bus-log", false, "Enable bus logging")
		headless   = flag.Bool("headless", false, "Run without a window")
		testFrames = flag.Int("test-frames", 600, "Number of frames to run in headless mode")
	)

	flag.Usage = func() {
		fmt.Printf("Usage: %s [options] <rom_file>\n\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println("\nControls:")
		fmt.Println("  Z - A button")
		fmt.Println("  X - B button")
		fmt.Println("  A - Select")
		fmt.Println("  S - Start")
		fmt.Println("  Arrow keys - D-pad")
		fmt.Println("  ESC - Quit")
	}

	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	romFile := flag.Arg(0)

	if err := logger.Initialize(logger.LevelFromString(*logLevel), *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.SetSubsystem(logger.SubCPU, *cpuLog)
	logger.SetSubsystem(logger.SubPPU, *ppuLog)
	logger.SetSubsystem(logger.SubAPU, *apuLog)
	logger.SetSubsystem(logger.SubMapper, *mapperLog)
	logger.SetSubsystem(logger.SubBus, *busLog)

	raw, err := os.ReadFile(romFile)
	if err != nil {
		logger.LogError("failed to read ROM file: %v", err)
		os.Exit(1)
	}

	console := nes.New()
	if err := console.LoadROM(raw); err != nil {
		logger.LogError("failed to load ROM: %v", err)
		os.Exit(1)
	}
	logger.LogInfo("loaded %s (%d bytes)", romFile, len(raw))

	if *headless {
		runHeadless(console, *testFrames)
		return
	}

	g, err := gui.New(console)
	if err != nil {
		logger.LogError("failed to initialize GUI: %v", err)
		os.Exit(1)
	}
	defer g.Destroy()

	g.Run()
}

// runHeadless steps frames without a window; useful for smoke tests and
// timing measurements.
func runHeadless(console *nes.Console, frames int) {
	logger.LogInfo("headless run: %d frames", frames)
	for i := 0; i < frames; i++ {
		console.StepFrame()
		console.AudioSamples()
	}
	logger.LogInfo("headless run complete: %d CPU cycles", console.Bus.Cycles)
}
