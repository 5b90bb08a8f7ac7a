// Package ppu emulates the picture processing unit: the memory-mapped
// register file, VRAM, and the dot-clocked renderer that produces a 256x240
// RGBA framebuffer.
package ppu

// PPU couples the register file with the renderer
type PPU struct {
	Registers *Registers
	Renderer  *Renderer
}

// New creates a PPU in power-on state
func New() *PPU {
	return &PPU{
		Registers: NewRegisters(),
		Renderer:  NewRenderer(),
	}
}

// Reset returns the PPU to power-on state
func (p *PPU) Reset() {
	p.Registers.Reset()
	p.Renderer.Reset()
}

// Tick runs one dot and advances the dot counter
func (p *PPU) Tick() Result {
	r := p.Renderer.Tick(p.Registers)
	p.Renderer.Step()
	return r
}

// TickDecay drains the open-bus latch; the bus calls this periodically
func (p *PPU) TickDecay() {
	p.Registers.TickDecay()
}

// WriteRegister handles a CPU write to the $2000-$3FFF window
func (p *PPU) WriteRegister(addr uint16, value uint8) {
	p.Registers.WriteRegister(addr, value)
}

// ReadRegister handles a CPU read from the $2000-$3FFF window
func (p *PPU) ReadRegister(addr uint16) uint8 {
	return p.Registers.ReadRegister(addr)
}
