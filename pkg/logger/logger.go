package logger

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Level controls how much the emulator logs
type Level int

const (
	LevelOff Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

// Subsystem identifies which emulator component a message belongs to.
// Per-subsystem switches let you trace one unit without drowning in the rest.
type Subsystem int

const (
	SubCPU Subsystem = iota
	SubPPU
	SubAPU
	SubMapper
	SubBus
	subsystemCount
)

var subsystemNames = [subsystemCount]string{"CPU", "PPU", "APU", "MAPPER", "BUS"}

// Logger handles all logging for the emulator
type Logger struct {
	level   Level
	writer  io.Writer
	enabled [subsystemCount]bool
}

var global *Logger

// Initialize sets up the global logger. An empty filename logs to stdout.
func Initialize(level Level, filename string) error {
	var writer io.Writer = os.Stdout

	if filename != "" {
		file, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		writer = file
	}

	global = &Logger{
		level:  level,
		writer: writer,
	}

	return nil
}

// SetSubsystem enables or disables logging for one emulator component
func SetSubsystem(s Subsystem, enabled bool) {
	if global != nil {
		global.enabled[s] = enabled
	}
}

func logSubsystem(s Subsystem, min Level, format string, args ...interface{}) {
	if global == nil || !global.enabled[s] || global.level < min {
		return
	}
	timestamp := time.Now().Format("15:04:05.000")
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(global.writer, "[%s] %s: %s\n", timestamp, subsystemNames[s], message)
}

// LogCPU logs CPU activity (interrupts, vector fetches)
func LogCPU(format string, args ...interface{}) {
	logSubsystem(SubCPU, LevelDebug, format, args...)
}

// LogPPU logs PPU register and renderer activity
func LogPPU(format string, args ...interface{}) {
	logSubsystem(SubPPU, LevelTrace, format, args...)
}

// LogAPU logs APU register writes and frame counter events
func LogAPU(format string, args ...interface{}) {
	logSubsystem(SubAPU, LevelDebug, format, args...)
}

// LogMapper logs mapper bank switches and IRQ activity
func LogMapper(format string, args ...interface{}) {
	logSubsystem(SubMapper, LevelDebug, format, args...)
}

// LogBus logs bus-level events (DMA, interrupt scheduling)
func LogBus(format string, args ...interface{}) {
	logSubsystem(SubBus, LevelDebug, format, args...)
}

// LogInfo logs general information
func LogInfo(format string, args ...interface{}) {
	logGeneral(LevelInfo, "INFO", format, args...)
}

// LogError logs errors
func LogError(format string, args ...interface{}) {
	logGeneral(LevelError, "ERROR", format, args...)
}

// LogDebug logs debug information
func LogDebug(format string, args ...interface{}) {
	logGeneral(LevelDebug, "DEBUG", format, args...)
}

func logGeneral(min Level, tag, format string, args ...interface{}) {
	if global == nil || global.level < min {
		return
	}
	timestamp := time.Now().Format("15:04:05.000")
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(global.writer, "[%s] %s: %s\n", timestamp, tag, message)
}

// LevelFromString converts a flag value to a Level
func LevelFromString(level string) Level {
	switch level {
	case "off":
		return LevelOff
	case "error":
		return LevelError
	case "warn":
		return LevelWarn
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	case "trace":
		return LevelTrace
	default:
		return LevelInfo
	}
}

// Close closes the logger and any associated files
func Close() {
	if global != nil {
		if file, ok := global.writer.(*os.File); ok && file != os.Stdout && file != os.Stderr {
			file.Close()
		}
	}
}
