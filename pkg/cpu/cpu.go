// Package cpu implements the 6502 core. The CPU keeps no cycle counter of
// its own: every memory access and every internal dead cycle clocks the bus
// exactly once, so timing falls out of the access pattern.
package cpu

import (
	"github.com/famicore/pkg/bus"
	"github.com/famicore/pkg/logger"
)

// Status flag bits. Break and Push exist only in copies of P pushed to the
// stack, never in the live register.
const (
	FlagCarry      uint8 = 1 << 0
	FlagZero       uint8 = 1 << 1
	FlagIRQDisable uint8 = 1 << 2
	FlagDecimal    uint8 = 1 << 3
	FlagBreak      uint8 = 1 << 4
	FlagPush       uint8 = 1 << 5
	FlagOverflow   uint8 = 1 << 6
	FlagNegative   uint8 = 1 << 7
)

type interruptKind int

const (
	interruptNMI interruptKind = iota
	interruptReset
	interruptIRQ
	interruptBreak
)

// CPU is the 6502 state: registers plus the bus it clocks
type CPU struct {
	Bus *bus.Bus

	PC uint16
	SP uint8
	A  uint8
	X  uint8
	Y  uint8
	P  uint8
}

// New creates a CPU attached to the given bus
func New(b *bus.Bus) *CPU {
	return &CPU{Bus: b}
}

// Reset runs the reset sequence: five dead cycles, set IRQ disable, and a
// vector fetch from $FFFC. Nothing is pushed.
func (c *CPU) Reset() {
	c.SP = 0xFF
	c.P = FlagIRQDisable
	c.interrupt(interruptReset)
}

// ExecuteNextInstruction services pending interrupts, then fetches and runs
// one instruction.
func (c *CPU) ExecuteNextInstruction() {
	if c.Bus.NMI.Ready() {
		c.Bus.NMI.Acknowledge()
		c.interrupt(interruptNMI)
	} else if c.Bus.IRQ() && !c.getFlag(FlagIRQDisable) {
		c.interrupt(interruptIRQ)
	}

	opcode := c.nextByte()
	c.executeInstruction(opcode)
}

func (c *CPU) interrupt(kind interruptKind) {
	var ticks int
	var push bool
	var vector uint16

	switch kind {
	case interruptNMI:
		ticks, push, vector = 2, true, 0xFFFA
	case interruptReset:
		ticks, push, vector = 5, false, 0xFFFC
	case interruptIRQ:
		ticks, push, vector = 2, true, 0xFFFE
	case interruptBreak:
		ticks, push, vector = 1, true, 0xFFFE
	}

	for i := 0; i < ticks; i++ {
		c.Bus.Tick()
	}

	if push {
		p := c.P | FlagPush
		if kind == interruptBreak {
			p |= FlagBreak
		}
		c.pushWord(c.PC)
		c.pushByte(p)
	}

	c.setFlag(FlagIRQDisable, true)

	c.PC = c.Bus.ReadWord(vector)
	logger.LogCPU("interrupt %d vectored to %04X", kind, c.PC)
}

// Stack helpers

func (c *CPU) popByte() uint8 {
	c.SP++
	return c.Bus.ReadByte(0x100 + uint16(c.SP))
}

func (c *CPU) pushByte(value uint8) {
	c.Bus.WriteByte(0x100+uint16(c.SP), value)
	c.SP--
}

func (c *CPU) pushWord(value uint16) {
	c.pushByte(uint8(value >> 8))
	c.pushByte(uint8(value))
}

func (c *CPU) popWord() uint16 {
	return uint16(c.popByte()) | uint16(c.popByte())<<8
}

// Fetch helpers

func (c *CPU) nextByte() uint8 {
	pc := c.PC
	c.PC++
	return c.Bus.ReadByte(pc)
}

func (c *CPU) nextWord() uint16 {
	pc := c.PC
	c.PC += 2
	return c.Bus.ReadWord(pc)
}

// Flag helpers

func (c *CPU) getFlag(flag uint8) bool {
	return c.P&flag != 0
}

func (c *CPU) setFlag(flag uint8, value bool) {
	if value {
		c.P |= flag
	} else {
		c.P &^= flag
	}
}

func (c *CPU) setFlagsZeroNegative(value uint8) {
	c.setFlag(FlagZero, value == 0)
	c.setFlag(FlagNegative, value&0x80 != 0)
}

// setFlagsCarryOverflow derives C from the 9-bit result and V from the sign
// rule (m^r)&(n^r)&0x80.
func (c *CPU) setFlagsCarryOverflow(m, n uint8, result uint16) {
	c.setFlag(FlagCarry, result > 0xFF)
	r := uint8(result)
	c.setFlag(FlagOverflow, (m^r)&(n^r)&0x80 != 0)
}

func (c *CPU) carry() uint8 {
	return c.P & FlagCarry
}

// Address arithmetic helpers

func cross(base uint16, offset uint8) bool {
	return highByte(base+uint16(offset)) != highByte(base)
}

func offsetAddr(base uint16, offset uint8) uint16 {
	return base + uint16(offset)
}

func lowByte(value uint16) uint16 {
	return value & 0xFF
}

func highByte(value uint16) uint16 {
	return value & 0xFF00
}
