package ppu

import (
	"fmt"
	"math/rand"

	"github.com/famicore/pkg/logger"
)

// Registers is the memory-mapped PPU register file plus the internal scroll
// state driving it: the v/t address pair, fine X, the shared write latch and
// the floating-bus byte.
type Registers struct {
	VRAM     *VRAM
	VAddress Address
	TAddress Address
	FineX    uint8

	OAM        [0x100]uint8
	oamAddress uint8

	Control Control
	Mask    Mask
	Status  Status

	latch   bool
	openBus uint8

	// ForceNMI fires a one-shot NMI when the NMI enable bit rises during
	// vblank. VBlankSuppress cancels the vblank flag and NMI when PPUSTATUS
	// was read in the same tick window. Both are consumed every dot.
	ForceNMI       bool
	VBlankSuppress bool
}

// NewRegisters creates a register file over fresh VRAM
func NewRegisters() *Registers {
	r := &Registers{VRAM: NewVRAM()}
	r.Reset()
	return r
}

// Reset returns the registers to power-on state
func (r *Registers) Reset() {
	r.Control = 0
	r.Mask = 0
	r.Status = 0
	r.OAM = [0x100]uint8{}
	r.oamAddress = 0
	r.latch = false
	r.openBus = 0
	r.ForceNMI = false
	r.VBlankSuppress = false
	r.VRAM.Reset()
}

// WriteRegister handles a CPU write to $2000-$3FFF
func (r *Registers) WriteRegister(addr uint16, value uint8) {
	r.openBus = value
	switch addr % 8 {
	case 0:
		r.writeControl(value)
	case 1:
		r.Mask = Mask(value)
	case 2:
		// PPUSTATUS is read-only
	case 3:
		r.oamAddress = value
	case 4:
		r.WriteOAMData(value)
	case 5:
		r.writeScroll(value)
	case 6:
		r.writeAddress(value)
	case 7:
		r.writeData(value)
	default:
		panic(fmt.Sprintf("ppu: invalid register %04X", addr))
	}
}

// ReadRegister handles a CPU read from $2000-$3FFF. Write-only registers
// return the floating bus byte.
func (r *Registers) ReadRegister(addr uint16) uint8 {
	var result uint8
	switch addr % 8 {
	case 2:
		result = r.readStatus() | (r.openBus & 0x1F)
	case 4:
		result = r.readOAMData()
	case 7:
		palette := r.VAddress.VRAMAddress() >= 0x3F00
		result = r.readData()
		if palette {
			result |= r.openBus & 0xC0
		}
	default:
		result = r.openBus
	}
	r.openBus = result
	return result
}

// TickDecay simulates the floating bus draining: each bit has a 1-in-4
// chance of dropping. Called by the bus roughly every 10,000 CPU cycles.
func (r *Registers) TickDecay() {
	for i := 0; i < 8; i++ {
		if rand.Intn(4) == 0 {
			r.openBus &^= 1 << i
		}
	}
}

func (r *Registers) writeControl(value uint8) {
	control := Control(value)
	if !r.Control.NMIOnVBlank() && control.NMIOnVBlank() && r.Status.VBlank() {
		r.ForceNMI = true
	}
	r.Control = control
	r.TAddress.SetNametable(control.Nametable())
}

// WriteOAMData stores a byte at the OAM pointer and advances it. OAM DMA
// funnels through here as well.
func (r *Registers) WriteOAMData(value uint8) {
	r.OAM[r.oamAddress] = value
	r.oamAddress++
}

func (r *Registers) readOAMData() uint8 {
	v := r.OAM[r.oamAddress]
	if r.oamAddress%4 == 2 {
		// Attribute bytes have no storage for bits 2-4
		v &= 0xE3
	}
	return v
}

func (r *Registers) writeScroll(value uint8) {
	if r.latch {
		r.TAddress.SetFineY(value)
		r.TAddress.SetCoarseY(value >> 3)
	} else {
		r.FineX = value & 0x7
		r.TAddress.SetCoarseX(value >> 3)
	}
	r.latch = !r.latch
}

func (r *Registers) writeAddress(value uint8) {
	if r.latch {
		r.TAddress.SetLowByte(value)
		r.VAddress = r.TAddress
	} else {
		r.TAddress.SetHighByte(value)
	}
	r.latch = !r.latch
}

func (r *Registers) writeData(value uint8) {
	r.VRAM.WriteByte(r.VAddress.VRAMAddress(), value)
	r.VAddress.Increment(r.Control.IncrementAmount())
}

func (r *Registers) readStatus() uint8 {
	result := uint8(r.Status)
	r.Status.SetVBlank(false)
	r.latch = false
	r.VBlankSuppress = true
	logger.LogPPU("status read: %02X", result)
	return result
}

func (r *Registers) readData() uint8 {
	addr := r.VAddress.VRAMAddress()
	r.VAddress.Increment(r.Control.IncrementAmount())
	return r.VRAM.BufferedReadByte(addr)
}
