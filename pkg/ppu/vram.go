package ppu

import (
	"github.com/famicore/pkg/cartridge"
)

const (
	nametableSize = 0x400
	paletteSize   = 0x20
)

// VRAM is the PPU-side address space: two physical nametables mirrored per
// the cartridge, the palette table, and the PPUDATA read-delay buffer.
// Pattern-table accesses ($0000-$1FFF) go to the cartridge mapper.
type VRAM struct {
	Nametables [2 * nametableSize]uint8
	Palettes   [paletteSize]uint8
	readBuffer uint8
	cart       *cartridge.Cartridge
}

// NewVRAM creates VRAM with no cartridge attached
func NewVRAM() *VRAM {
	return &VRAM{}
}

// Reset fills the nametables with $FF, zeroes the palettes and read buffer,
// and detaches the cartridge
func (v *VRAM) Reset() {
	for i := range v.Nametables {
		v.Nametables[i] = 0xFF
	}
	v.Palettes = [paletteSize]uint8{}
	v.readBuffer = 0
	v.cart = nil
}

// SetCartridge attaches the cartridge whose CHR space backs $0000-$1FFF
func (v *VRAM) SetCartridge(cart *cartridge.Cartridge) {
	v.cart = cart
}

// Mirroring returns the nametable arrangement currently selected
func (v *VRAM) Mirroring() cartridge.Mirroring {
	if v.cart == nil {
		return cartridge.MirrorNone
	}
	return v.cart.Mirroring()
}

// ReadByte reads from the PPU address space
func (v *VRAM) ReadByte(addr uint16) uint8 {
	switch {
	case addr <= 0x1FFF:
		if v.cart == nil {
			panic("vram: pattern table read with no cartridge attached")
		}
		return v.cart.ReadCHR(addr)
	case addr <= 0x3EFF:
		return v.Nametables[mirrorNametable(v.Mirroring(), addr)]
	case addr <= 0x3FFF:
		return v.Palettes[mirrorPalette(addr)]
	default:
		return 0
	}
}

// WriteByte writes to the PPU address space
func (v *VRAM) WriteByte(addr uint16, value uint8) {
	switch {
	case addr <= 0x1FFF:
		if v.cart == nil {
			panic("vram: pattern table write with no cartridge attached")
		}
		v.cart.WriteCHR(addr, value)
	case addr <= 0x3EFF:
		v.Nametables[mirrorNametable(v.Mirroring(), addr)] = value
	case addr <= 0x3FFF:
		v.Palettes[mirrorPalette(addr)] = value
	}
}

// BufferedReadByte implements the PPUDATA one-read delay. Reads below the
// palette return the previous buffer and refill it; palette reads return
// immediately while the buffer captures the nametable byte underneath.
func (v *VRAM) BufferedReadByte(addr uint16) uint8 {
	if addr < 0x3F00 {
		result := v.readBuffer
		v.readBuffer = v.ReadByte(addr)
		return result
	}

	v.readBuffer = v.Nametables[mirrorNametable(v.Mirroring(), addr)]
	return v.ReadByte(addr)
}

func mirrorNametable(m cartridge.Mirroring, addr uint16) int {
	a := int(addr)
	switch m {
	case cartridge.MirrorHorizontal:
		// $2000/$2400 share table 0, $2800/$2C00 share table 1
		return ((a / 2) & nametableSize) + (a % nametableSize)
	case cartridge.MirrorVertical:
		return a % (2 * nametableSize)
	default:
		return a - 0x2000
	}
}

// mirrorPalette folds the sprite-palette aliases $3F10/$3F14/$3F18/$3F1C
// onto their background entries.
func mirrorPalette(addr uint16) int {
	a := int(addr) % paletteSize
	switch a {
	case 0x10, 0x14, 0x18, 0x1C:
		return a - 0x10
	}
	return a
}
