// Package nes wires the CPU, bus and cartridge into a console and exposes
// the frame-oriented API the front end drives.
package nes

import (
	"github.com/famicore/pkg/bus"
	"github.com/famicore/pkg/cartridge"
	"github.com/famicore/pkg/cpu"
	"github.com/famicore/pkg/input"
	"github.com/famicore/pkg/logger"
	"github.com/famicore/pkg/ppu"
)

// samplesPerFrame is what a 60 fps host expects from a 44.1 kHz stereo
// stream; short frames are padded up to it.
const samplesPerFrame = 1470

// Console is a complete NES: the CPU plus the bus it clocks
type Console struct {
	CPU *cpu.CPU
	Bus *bus.Bus
}

// New creates a console with no cartridge loaded
func New() *Console {
	b := bus.New()
	return &Console{
		CPU: cpu.New(b),
		Bus: b,
	}
}

// LoadROM parses an iNES image, inserts the cartridge and resets. On error
// the console stays in its previous state.
func (c *Console) LoadROM(raw []byte) error {
	cart, err := cartridge.New(raw)
	if err != nil {
		return err
	}

	c.Bus.LoadCartridge(cart)
	c.Reset()
	logger.LogInfo("loaded ROM: mirroring=%v", cart.Mirroring())
	return nil
}

// Reset runs the reset sequence on every subsystem
func (c *Console) Reset() {
	cart := c.Bus.Cartridge
	c.Bus.PPU.Reset()
	if cart != nil {
		// A PPU reset clears VRAM's cartridge binding; restore it
		c.Bus.PPU.Registers.VRAM.SetCartridge(cart)
	}
	c.Bus.Reset()
	c.CPU.Reset()
}

// SetButton presses or releases a button on one of the two controller ports
func (c *Console) SetButton(port int, button input.Button, pressed bool) {
	switch port {
	case 0:
		c.Bus.Controller0.SetButton(button, pressed)
	case 1:
		c.Bus.Controller1.SetButton(button, pressed)
	}
}

// StepFrame runs instructions until the PPU finishes a frame, draining any
// DMA/DMC stall cycles after each instruction so they land between
// instructions, not inside them.
func (c *Console) StepFrame() {
	for !c.Bus.FrameReady {
		c.CPU.ExecuteNextInstruction()
		for i := c.Bus.ResetCPUStallCycles(); i > 0; i-- {
			c.Bus.Tick()
		}
	}
	c.Bus.FrameReady = false
}

// FramePixels returns the last completed frame as RGBA bytes, 256x240x4
func (c *Console) FramePixels() []byte {
	pixels := &c.Bus.PPU.Renderer.Pixels
	frame := make([]byte, 0, len(pixels)*4)
	for _, p := range pixels {
		frame = append(frame, byte(p>>24), byte(p>>16), byte(p>>8), byte(p))
	}
	return frame
}

// AudioSamples drains the APU's sample buffer, padding short frames with
// silence so the host always gets a full frame of audio.
func (c *Console) AudioSamples() []int16 {
	samples := c.Bus.APU.Buffer
	c.Bus.APU.Buffer = nil

	for len(samples) < samplesPerFrame {
		samples = append(samples, 0)
	}
	return samples
}

// FrameWidth and FrameHeight are the output dimensions in pixels
const (
	FrameWidth  = ppu.FrameWidth
	FrameHeight = ppu.FrameHeight
)
