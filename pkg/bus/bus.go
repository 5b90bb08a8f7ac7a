// Package bus implements the CPU-visible address decode and the master
// clock: every CPU memory access ticks the bus once, and each tick advances
// the PPU three dots and the APU one cycle.
package bus

import (
	"github.com/famicore/pkg/apu"
	"github.com/famicore/pkg/cartridge"
	"github.com/famicore/pkg/input"
	"github.com/famicore/pkg/logger"
	"github.com/famicore/pkg/ppu"
)

// decayInterval is how often, in CPU cycles, the PPU open-bus latch decays.
// Roughly three times per frame.
const decayInterval = 10000

// Interrupt is the one-slot NMI delay line: the PPU schedules an NMI and
// the CPU takes it one tick later, giving the instruction in flight time to
// finish first.
type Interrupt struct {
	scheduled bool
	countdown uint8
}

// Schedule arms the interrupt to become ready after n ticks
func (i *Interrupt) Schedule(n uint8) {
	i.scheduled = true
	i.countdown = n
}

// Tick counts the armed interrupt down
func (i *Interrupt) Tick() {
	if i.scheduled && i.countdown > 0 {
		i.countdown--
	}
}

// Acknowledge disarms the interrupt
func (i *Interrupt) Acknowledge() {
	i.scheduled = false
}

// Ready reports whether the interrupt should be taken now
func (i *Interrupt) Ready() bool {
	return i.scheduled && i.countdown == 0
}

// Bus owns RAM, the PPU, APU, controllers and the cartridge, and decodes
// every CPU address onto them.
type Bus struct {
	RAM [2048]uint8

	PPU         *ppu.PPU
	APU         *apu.APU
	Cartridge   *cartridge.Cartridge
	Controller0 *input.Controller
	Controller1 *input.Controller

	Cycles uint64
	NMI    Interrupt

	// FrameReady is raised by the PPU's draw event once per frame
	FrameReady bool

	cpuStallCycles int
}

// New creates a bus with no cartridge inserted
func New() *Bus {
	return &Bus{
		PPU:         ppu.New(),
		APU:         apu.New(),
		Controller0: input.New(),
		Controller1: input.New(),
	}
}

// LoadCartridge inserts a cartridge and wires it to the PPU's VRAM and the
// APU's DMC, the two other components that read it.
func (b *Bus) LoadCartridge(cart *cartridge.Cartridge) {
	b.Cartridge = cart
	b.PPU.Registers.VRAM.SetCartridge(cart)
	b.APU.SetCartridge(cart)
}

// Reset resets the APU side of the bus
func (b *Bus) Reset() {
	b.APU.Reset()
}

// ResetCPUStallCycles drains the stall cycles accumulated by OAM DMA and
// DMC fetches since the last call.
func (b *Bus) ResetCPUStallCycles() int {
	c := b.cpuStallCycles + b.APU.ResetCPUStallCycles()
	b.cpuStallCycles = 0
	return c
}

// UnclockedReadByte decodes a read without ticking the clock. The CPU uses
// ReadByte; DMA and debugging go through here.
func (b *Bus) UnclockedReadByte(addr uint16) uint8 {
	switch {
	case addr <= 0x1FFF:
		return b.RAM[addr%0x0800]
	case addr <= 0x3FFF:
		return b.PPU.ReadRegister(addr)
	case addr == 0x4015:
		return b.APU.ReadRegister()
	case addr == 0x4016:
		return b.Controller0.ReadRegister()
	case addr == 0x4017:
		return b.Controller1.ReadRegister()
	case addr >= 0x4018:
		if b.Cartridge != nil {
			return b.Cartridge.ReadPRG(addr)
		}
		return uint8(addr >> 8)
	default:
		// Unmapped APU range reads float the address high byte
		return uint8(addr >> 8)
	}
}

func (b *Bus) unclockedWriteByte(addr uint16, value uint8) {
	switch {
	case addr <= 0x1FFF:
		b.RAM[addr%0x0800] = value
	case addr <= 0x3FFF:
		b.PPU.WriteRegister(addr, value)
	case addr <= 0x4013 || addr == 0x4015 || addr == 0x4017:
		b.APU.WriteRegister(addr, value, b.Cycles)
	case addr == 0x4014:
		b.oamDMA(uint16(value))
	case addr == 0x4016:
		b.Controller0.WriteRegister(value)
		b.Controller1.WriteRegister(value)
	case addr >= 0x4018:
		if b.Cartridge != nil {
			b.Cartridge.WritePRG(addr, value)
		}
	}
}

// oamDMA copies one page into OAM. The CPU is held for 513 cycles, 514 when
// the transfer starts on an odd cycle.
func (b *Bus) oamDMA(page uint16) {
	b.cpuStallCycles += 513 + int(b.Cycles%2)
	logger.LogBus("OAM DMA from page %02X at cycle %d", page, b.Cycles)
	for i := uint16(0); i < 256; i++ {
		v := b.UnclockedReadByte(page*0x100 + i)
		b.PPU.Registers.WriteOAMData(v)
	}
}

// ReadByte ticks the clock and reads
func (b *Bus) ReadByte(addr uint16) uint8 {
	b.Tick()
	return b.UnclockedReadByte(addr)
}

// WriteByte ticks the clock and writes
func (b *Bus) WriteByte(addr uint16, value uint8) {
	b.Tick()
	b.unclockedWriteByte(addr, value)
}

// ReadNoncontinuousWord reads a 16-bit value from two explicit addresses,
// which is how the 6502's page-wrap bugs are expressed.
func (b *Bus) ReadNoncontinuousWord(lo, hi uint16) uint16 {
	return uint16(b.ReadByte(lo)) | uint16(b.ReadByte(hi))<<8
}

// ReadWord reads a little-endian word
func (b *Bus) ReadWord(addr uint16) uint16 {
	return b.ReadNoncontinuousWord(addr, addr+1)
}

// Tick advances the master clock one CPU cycle: one APU cycle, the NMI
// delay line, and three PPU dots.
func (b *Bus) Tick() {
	b.Cycles++

	b.APU.Tick(b.Cycles)
	b.NMI.Tick()

	if b.Cycles%decayInterval == 0 {
		b.PPU.TickDecay()
	}

	for i := 0; i < 3; i++ {
		b.handlePPUResult(b.PPU.Tick())
	}
}

// IRQ is the CPU's IRQ line: the OR of the APU and cartridge sources
func (b *Bus) IRQ() bool {
	cartIRQ := b.Cartridge != nil && b.Cartridge.IRQFlag()
	return cartIRQ || b.APU.IRQFlag()
}

func (b *Bus) handlePPUResult(result ppu.Result) {
	switch result {
	case ppu.ResultNmi:
		b.NMI.Schedule(1)
	case ppu.ResultScanline:
		if b.Cartridge != nil {
			b.Cartridge.SignalScanline()
		}
	case ppu.ResultDraw:
		b.FrameReady = true
	}
}
