package cpu

import "fmt"

// executeInstruction dispatches one opcode. Unknown opcodes are emulator
// bugs, not game behavior, and abort.
func (c *CPU) executeInstruction(opcode uint8) {
	switch opcode {
	// Loads
	case 0xA1:
		c.lda(IndirectX)
	case 0xA5:
		c.lda(ZeroPage)
	case 0xA9:
		c.lda(Immediate)
	case 0xAD:
		c.lda(Absolute)
	case 0xB1:
		c.lda(IndirectY)
	case 0xB5:
		c.lda(ZeroPageX)
	case 0xB9:
		c.lda(AbsoluteY)
	case 0xBD:
		c.lda(AbsoluteX)

	case 0xA2:
		c.ldx(Immediate)
	case 0xA6:
		c.ldx(ZeroPage)
	case 0xB6:
		c.ldx(ZeroPageY)
	case 0xAE:
		c.ldx(Absolute)
	case 0xBE:
		c.ldx(AbsoluteY)

	case 0xA0:
		c.ldy(Immediate)
	case 0xA4:
		c.ldy(ZeroPage)
	case 0xB4:
		c.ldy(ZeroPageX)
	case 0xAC:
		c.ldy(Absolute)
	case 0xBC:
		c.ldy(AbsoluteX)

	// Stores
	case 0x85:
		c.sta(ZeroPage)
	case 0x95:
		c.sta(ZeroPageX)
	case 0x8D:
		c.sta(Absolute)
	case 0x9D:
		c.sta(AbsoluteXForceTick)
	case 0x99:
		c.sta(AbsoluteYForceTick)
	case 0x81:
		c.sta(IndirectX)
	case 0x91:
		c.sta(IndirectYForceTick)

	case 0x86:
		c.stx(ZeroPage)
	case 0x96:
		c.stx(ZeroPageY)
	case 0x8E:
		c.stx(Absolute)

	case 0x84:
		c.sty(ZeroPage)
	case 0x94:
		c.sty(ZeroPageX)
	case 0x8C:
		c.sty(Absolute)

	// Arithmetic
	case 0x69:
		c.adc(Immediate)
	case 0x65:
		c.adc(ZeroPage)
	case 0x75:
		c.adc(ZeroPageX)
	case 0x6D:
		c.adc(Absolute)
	case 0x7D:
		c.adc(AbsoluteX)
	case 0x79:
		c.adc(AbsoluteY)
	case 0x61:
		c.adc(IndirectX)
	case 0x71:
		c.adc(IndirectY)

	case 0xE9:
		c.sbc(Immediate)
	case 0xE5:
		c.sbc(ZeroPage)
	case 0xF5:
		c.sbc(ZeroPageX)
	case 0xED:
		c.sbc(Absolute)
	case 0xFD:
		c.sbc(AbsoluteX)
	case 0xF9:
		c.sbc(AbsoluteY)
	case 0xE1:
		c.sbc(IndirectX)
	case 0xF1:
		c.sbc(IndirectY)

	// Comparisons
	case 0xC9:
		c.cmp(Immediate)
	case 0xC5:
		c.cmp(ZeroPage)
	case 0xD5:
		c.cmp(ZeroPageX)
	case 0xCD:
		c.cmp(Absolute)
	case 0xDD:
		c.cmp(AbsoluteX)
	case 0xD9:
		c.cmp(AbsoluteY)
	case 0xC1:
		c.cmp(IndirectX)
	case 0xD1:
		c.cmp(IndirectY)

	case 0xE0:
		c.cpx(Immediate)
	case 0xE4:
		c.cpx(ZeroPage)
	case 0xEC:
		c.cpx(Absolute)

	case 0xC0:
		c.cpy(Immediate)
	case 0xC4:
		c.cpy(ZeroPage)
	case 0xCC:
		c.cpy(Absolute)

	// Bitwise
	case 0x29:
		c.and(Immediate)
	case 0x25:
		c.and(ZeroPage)
	case 0x35:
		c.and(ZeroPageX)
	case 0x2D:
		c.and(Absolute)
	case 0x3D:
		c.and(AbsoluteX)
	case 0x39:
		c.and(AbsoluteY)
	case 0x21:
		c.and(IndirectX)
	case 0x31:
		c.and(IndirectY)

	case 0x09:
		c.ora(Immediate)
	case 0x05:
		c.ora(ZeroPage)
	case 0x15:
		c.ora(ZeroPageX)
	case 0x0D:
		c.ora(Absolute)
	case 0x1D:
		c.ora(AbsoluteX)
	case 0x19:
		c.ora(AbsoluteY)
	case 0x01:
		c.ora(IndirectX)
	case 0x11:
		c.ora(IndirectY)

	case 0x49:
		c.eor(Immediate)
	case 0x45:
		c.eor(ZeroPage)
	case 0x55:
		c.eor(ZeroPageX)
	case 0x4D:
		c.eor(Absolute)
	case 0x5D:
		c.eor(AbsoluteX)
	case 0x59:
		c.eor(AbsoluteY)
	case 0x41:
		c.eor(IndirectX)
	case 0x51:
		c.eor(IndirectY)

	case 0x24:
		c.bit(ZeroPage)
	case 0x2C:
		c.bit(Absolute)

	// Shifts and rotates
	case 0x2A:
		c.rolA()
	case 0x26:
		c.rol(ZeroPage)
	case 0x36:
		c.rol(ZeroPageX)
	case 0x2E:
		c.rol(Absolute)
	case 0x3E:
		c.rol(AbsoluteXForceTick)

	case 0x6A:
		c.rorA()
	case 0x66:
		c.ror(ZeroPage)
	case 0x76:
		c.ror(ZeroPageX)
	case 0x6E:
		c.ror(Absolute)
	case 0x7E:
		c.ror(AbsoluteXForceTick)

	case 0x0A:
		c.aslA()
	case 0x06:
		c.asl(ZeroPage)
	case 0x16:
		c.asl(ZeroPageX)
	case 0x0E:
		c.asl(Absolute)
	case 0x1E:
		c.asl(AbsoluteXForceTick)

	case 0x4A:
		c.lsrA()
	case 0x46:
		c.lsr(ZeroPage)
	case 0x56:
		c.lsr(ZeroPageX)
	case 0x4E:
		c.lsr(Absolute)
	case 0x5E:
		c.lsr(AbsoluteXForceTick)

	// Increments and decrements
	case 0xE6:
		c.inc(ZeroPage)
	case 0xF6:
		c.inc(ZeroPageX)
	case 0xEE:
		c.inc(Absolute)
	case 0xFE:
		c.inc(AbsoluteXForceTick)

	case 0xC6:
		c.dec(ZeroPage)
	case 0xD6:
		c.dec(ZeroPageX)
	case 0xCE:
		c.dec(Absolute)
	case 0xDE:
		c.dec(AbsoluteXForceTick)

	case 0xE8:
		c.inx()
	case 0xCA:
		c.dex()
	case 0xC8:
		c.iny()
	case 0x88:
		c.dey()

	// Register moves
	case 0xAA:
		c.tax()
	case 0xA8:
		c.tay()
	case 0x8A:
		c.txa()
	case 0x98:
		c.tya()
	case 0x9A:
		c.txs()
	case 0xBA:
		c.tsx()

	// Flag operations
	case 0x18:
		c.clearFlag(FlagCarry)
	case 0x38:
		c.raiseFlag(FlagCarry)
	case 0x58:
		c.clearFlag(FlagIRQDisable)
	case 0x78:
		c.raiseFlag(FlagIRQDisable)
	case 0xB8:
		c.clearFlag(FlagOverflow)
	case 0xD8:
		c.clearFlag(FlagDecimal)
	case 0xF8:
		c.raiseFlag(FlagDecimal)

	// Branches
	case 0x10:
		c.branch(!c.getFlag(FlagNegative))
	case 0x30:
		c.branch(c.getFlag(FlagNegative))
	case 0x50:
		c.branch(!c.getFlag(FlagOverflow))
	case 0x70:
		c.branch(c.getFlag(FlagOverflow))
	case 0x90:
		c.branch(!c.getFlag(FlagCarry))
	case 0xB0:
		c.branch(c.getFlag(FlagCarry))
	case 0xD0:
		c.branch(!c.getFlag(FlagZero))
	case 0xF0:
		c.branch(c.getFlag(FlagZero))

	// Jumps and calls
	case 0x4C:
		c.jmp(Absolute)
	case 0x6C:
		c.jmp(Indirect)
	case 0x20:
		c.jsr()
	case 0x60:
		c.rts()
	case 0x00:
		c.brk()
	case 0x40:
		c.rti()

	// Stack operations
	case 0x48:
		c.pha()
	case 0x68:
		c.pla()
	case 0x08:
		c.php()
	case 0x28:
		c.plp()

	// No operation, documented and otherwise
	case 0xEA, 0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA:
		c.nop()

	case 0x0C:
		c.nopRead(Absolute)
	case 0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC:
		c.nopRead(AbsoluteX)
	case 0x04, 0x44, 0x64:
		c.nopRead(ZeroPage)
	case 0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4:
		c.nopRead(ZeroPageX)
	case 0x80, 0x82, 0x89, 0xC2, 0xE2:
		c.nopRead(Immediate)

	// Undocumented read-modify-write combinations
	case 0x07:
		c.slo(ZeroPage)
	case 0x17:
		c.slo(ZeroPageX)
	case 0x03:
		c.slo(IndirectX)
	case 0x13:
		c.slo(IndirectY)
	case 0x0F:
		c.slo(Absolute)
	case 0x1F:
		c.slo(AbsoluteX)
	case 0x1B:
		c.slo(AbsoluteY)

	case 0x27:
		c.rla(ZeroPage)
	case 0x37:
		c.rla(ZeroPageX)
	case 0x23:
		c.rla(IndirectX)
	case 0x33:
		c.rla(IndirectY)
	case 0x2F:
		c.rla(Absolute)
	case 0x3F:
		c.rla(AbsoluteX)
	case 0x3B:
		c.rla(AbsoluteY)

	case 0x47:
		c.sre(ZeroPage)
	case 0x57:
		c.sre(ZeroPageX)
	case 0x43:
		c.sre(IndirectX)
	case 0x53:
		c.sre(IndirectY)
	case 0x4F:
		c.sre(Absolute)
	case 0x5F:
		c.sre(AbsoluteX)
	case 0x5B:
		c.sre(AbsoluteY)

	case 0x67:
		c.rra(ZeroPage)
	case 0x77:
		c.rra(ZeroPageX)
	case 0x63:
		c.rra(IndirectX)
	case 0x73:
		c.rra(IndirectY)
	case 0x6F:
		c.rra(Absolute)
	case 0x7F:
		c.rra(AbsoluteX)
	case 0x7B:
		c.rra(AbsoluteY)

	case 0x87:
		c.sax(ZeroPage)
	case 0x97:
		c.sax(ZeroPageY)
	case 0x83:
		c.sax(IndirectX)
	case 0x8F:
		c.sax(Absolute)

	case 0xA7:
		c.lax(ZeroPage)
	case 0xB7:
		c.lax(ZeroPageY)
	case 0xA3:
		c.lax(IndirectX)
	case 0xB3:
		c.lax(IndirectY)
	case 0xAF:
		c.lax(Absolute)
	case 0xBF:
		c.lax(AbsoluteY)

	case 0xC7:
		c.dcp(ZeroPage)
	case 0xD7:
		c.dcp(ZeroPageX)
	case 0xC3:
		c.dcp(IndirectX)
	case 0xD3:
		c.dcp(IndirectY)
	case 0xCF:
		c.dcp(Absolute)
	case 0xDF:
		c.dcp(AbsoluteX)
	case 0xDB:
		c.dcp(AbsoluteY)

	case 0xE7:
		c.isc(ZeroPage)
	case 0xF7:
		c.isc(ZeroPageX)
	case 0xE3:
		c.isc(IndirectX)
	case 0xF3:
		c.isc(IndirectY)
	case 0xEF:
		c.isc(Absolute)
	case 0xFF:
		c.isc(AbsoluteX)
	case 0xFB:
		c.isc(AbsoluteY)

	case 0x0B, 0x2B:
		c.anc()
	case 0x4B:
		c.alr()
	case 0x6B:
		c.arr()
	case 0x8B:
		c.xaa()
	case 0xAB:
		c.lxa()
	case 0xCB:
		c.axs()
	case 0xEB:
		c.sbcNop()
	case 0x93:
		c.ahx(IndirectY)
	case 0x9F:
		c.ahx(AbsoluteY)
	case 0x9C:
		c.shy()
	case 0x9E:
		c.shx()
	case 0x9B:
		c.tas(AbsoluteY)
	case 0xBB:
		c.las(AbsoluteY)

	default:
		panic(fmt.Sprintf("cpu: unimplemented or illegal instruction 0x%02X", opcode))
	}
}

// Loads

func (c *CPU) lda(mode Mode) {
	operand := c.readOperand(mode)
	c.setFlagsZeroNegative(operand)
	c.A = operand
}

func (c *CPU) ldx(mode Mode) {
	operand := c.readOperand(mode)
	c.setFlagsZeroNegative(operand)
	c.X = operand
}

func (c *CPU) ldy(mode Mode) {
	operand := c.readOperand(mode)
	c.setFlagsZeroNegative(operand)
	c.Y = operand
}

// Stores

func (c *CPU) sta(mode Mode) {
	c.Bus.WriteByte(c.operandAddress(mode), c.A)
}

func (c *CPU) stx(mode Mode) {
	c.Bus.WriteByte(c.operandAddress(mode), c.X)
}

func (c *CPU) sty(mode Mode) {
	c.Bus.WriteByte(c.operandAddress(mode), c.Y)
}

// Arithmetic

func (c *CPU) adc(mode Mode) {
	a := c.A
	operand := c.readOperand(mode)
	result := uint16(a) + uint16(operand) + uint16(c.carry())
	c.setFlagsCarryOverflow(a, operand, result)
	c.setFlagsZeroNegative(uint8(result))
	c.A = uint8(result)
}

// sbc is adc of the operand's complement
func (c *CPU) sbc(mode Mode) {
	a := c.A
	operand := ^c.readOperand(mode)
	result := uint16(a) + uint16(operand) + uint16(c.carry())
	c.setFlagsCarryOverflow(a, operand, result)
	c.setFlagsZeroNegative(uint8(result))
	c.A = uint8(result)
}

func (c *CPU) compare(register uint8, mode Mode) {
	operand := c.readOperand(mode)
	c.setFlagsZeroNegative(register - operand)
	c.setFlag(FlagCarry, register >= operand)
}

func (c *CPU) cmp(mode Mode) { c.compare(c.A, mode) }
func (c *CPU) cpx(mode Mode) { c.compare(c.X, mode) }
func (c *CPU) cpy(mode Mode) { c.compare(c.Y, mode) }

// Bitwise

func (c *CPU) and(mode Mode) {
	result := c.A & c.readOperand(mode)
	c.setFlagsZeroNegative(result)
	c.A = result
}

func (c *CPU) ora(mode Mode) {
	result := c.A | c.readOperand(mode)
	c.setFlagsZeroNegative(result)
	c.A = result
}

func (c *CPU) eor(mode Mode) {
	result := c.A ^ c.readOperand(mode)
	c.setFlagsZeroNegative(result)
	c.A = result
}

func (c *CPU) bit(mode Mode) {
	operand := c.readOperand(mode)
	c.setFlag(FlagZero, c.A&operand == 0)
	c.setFlag(FlagOverflow, operand&0x40 != 0)
	c.setFlag(FlagNegative, operand&0x80 != 0)
}

// Shifts and rotates. The memory forms read, spend a modify cycle, then
// write back; doRol and friends return the result for the undocumented
// combined opcodes.

func (c *CPU) rol(mode Mode) { c.doRol(mode) }

func (c *CPU) doRol(mode Mode) uint8 {
	address := c.operandAddress(mode)
	operand := c.Bus.ReadByte(address)
	result := operand<<1 | c.carry()
	c.setFlag(FlagCarry, operand&0x80 != 0)
	c.Bus.Tick()
	c.setFlagsZeroNegative(result)
	c.Bus.WriteByte(address, result)
	return result
}

func (c *CPU) rolA() {
	operand := c.A
	result := operand<<1 | c.carry()
	c.setFlag(FlagCarry, operand&0x80 != 0)
	c.setFlagsZeroNegative(result)
	c.A = result
	c.Bus.Tick()
}

func (c *CPU) ror(mode Mode) { c.doRor(mode) }

func (c *CPU) doRor(mode Mode) uint8 {
	address := c.operandAddress(mode)
	operand := c.Bus.ReadByte(address)
	result := operand>>1 | c.carry()<<7
	c.setFlag(FlagCarry, operand&1 != 0)
	c.Bus.Tick()
	c.setFlagsZeroNegative(result)
	c.Bus.WriteByte(address, result)
	return result
}

func (c *CPU) rorA() {
	operand := c.A
	result := operand>>1 | c.carry()<<7
	c.setFlag(FlagCarry, operand&1 != 0)
	c.setFlagsZeroNegative(result)
	c.A = result
	c.Bus.Tick()
}

func (c *CPU) asl(mode Mode) { c.doAsl(mode) }

func (c *CPU) doAsl(mode Mode) uint8 {
	address := c.operandAddress(mode)
	operand := c.Bus.ReadByte(address)
	result := operand << 1
	c.setFlag(FlagCarry, operand&0x80 != 0)
	c.Bus.Tick()
	c.setFlagsZeroNegative(result)
	c.Bus.WriteByte(address, result)
	return result
}

func (c *CPU) aslA() {
	operand := c.A
	result := operand << 1
	c.setFlag(FlagCarry, operand&0x80 != 0)
	c.setFlagsZeroNegative(result)
	c.A = result
	c.Bus.Tick()
}

func (c *CPU) lsr(mode Mode) { c.doLsr(mode) }

func (c *CPU) doLsr(mode Mode) uint8 {
	address := c.operandAddress(mode)
	operand := c.Bus.ReadByte(address)
	result := operand >> 1
	c.setFlag(FlagCarry, operand&1 != 0)
	c.Bus.Tick()
	c.setFlagsZeroNegative(result)
	c.Bus.WriteByte(address, result)
	return result
}

func (c *CPU) lsrA() {
	operand := c.A
	result := operand >> 1
	c.setFlag(FlagCarry, operand&1 != 0)
	c.setFlagsZeroNegative(result)
	c.A = result
	c.Bus.Tick()
}

// Increments and decrements

func (c *CPU) inc(mode Mode) { c.doInc(mode) }

func (c *CPU) doInc(mode Mode) uint8 {
	address := c.operandAddress(mode)
	result := c.Bus.ReadByte(address) + 1
	c.Bus.Tick()
	c.setFlagsZeroNegative(result)
	c.Bus.WriteByte(address, result)
	return result
}

func (c *CPU) dec(mode Mode) { c.doDec(mode) }

func (c *CPU) doDec(mode Mode) uint8 {
	address := c.operandAddress(mode)
	result := c.Bus.ReadByte(address) - 1
	c.Bus.Tick()
	c.setFlagsZeroNegative(result)
	c.Bus.WriteByte(address, result)
	return result
}

func (c *CPU) inx() {
	c.X++
	c.Bus.Tick()
	c.setFlagsZeroNegative(c.X)
}

func (c *CPU) dex() {
	c.X--
	c.Bus.Tick()
	c.setFlagsZeroNegative(c.X)
}

func (c *CPU) iny() {
	c.Y++
	c.Bus.Tick()
	c.setFlagsZeroNegative(c.Y)
}

func (c *CPU) dey() {
	c.Y--
	c.Bus.Tick()
	c.setFlagsZeroNegative(c.Y)
}

// Register moves

func (c *CPU) tax() {
	c.Bus.Tick()
	c.setFlagsZeroNegative(c.A)
	c.X = c.A
}

func (c *CPU) tay() {
	c.Bus.Tick()
	c.setFlagsZeroNegative(c.A)
	c.Y = c.A
}

func (c *CPU) txa() {
	c.Bus.Tick()
	c.setFlagsZeroNegative(c.X)
	c.A = c.X
}

func (c *CPU) tya() {
	c.Bus.Tick()
	c.setFlagsZeroNegative(c.Y)
	c.A = c.Y
}

func (c *CPU) txs() {
	c.Bus.Tick()
	c.SP = c.X
}

func (c *CPU) tsx() {
	c.Bus.Tick()
	c.setFlagsZeroNegative(c.SP)
	c.X = c.SP
}

// Flag operations

func (c *CPU) clearFlag(flag uint8) {
	c.setFlag(flag, false)
	c.Bus.Tick()
}

func (c *CPU) raiseFlag(flag uint8) {
	c.setFlag(flag, true)
	c.Bus.Tick()
}

// branch takes a signed 8-bit displacement. Taken branches cost one extra
// cycle, two when the target is on a different page.
func (c *CPU) branch(condition bool) {
	offset := uint16(int8(c.readOperand(Immediate)))

	if !condition {
		return
	}

	c.Bus.Tick()
	newPC := c.PC + offset
	if highByte(c.PC) != highByte(newPC) {
		c.Bus.Tick()
	}
	c.PC = newPC
}

// Jumps and calls

func (c *CPU) jmp(mode Mode) {
	c.PC = c.operandAddress(mode)
}

func (c *CPU) jsr() {
	target := c.operandAddress(Absolute)
	returnAddress := c.PC - 1
	c.Bus.Tick()
	c.pushWord(returnAddress)
	c.PC = target
}

func (c *CPU) rts() {
	c.Bus.Tick()
	c.Bus.Tick()
	c.PC = c.popWord() + 1
	c.Bus.Tick()
}

func (c *CPU) brk() {
	c.PC++
	c.interrupt(interruptBreak)
}

func (c *CPU) rti() {
	c.Bus.Tick()
	c.Bus.Tick()
	c.P = c.popByte() &^ (FlagPush | FlagBreak)
	c.PC = c.popWord()
}

// Stack operations

func (c *CPU) pha() {
	c.Bus.Tick()
	c.pushByte(c.A)
}

func (c *CPU) pla() {
	c.Bus.Tick()
	c.Bus.Tick()
	result := c.popByte()
	c.setFlagsZeroNegative(result)
	c.A = result
}

func (c *CPU) php() {
	c.Bus.Tick()
	// Pushed copies carry the Push and Break flags
	c.pushByte(c.P | FlagPush | FlagBreak)
}

func (c *CPU) plp() {
	c.Bus.Tick()
	c.Bus.Tick()
	c.P = c.popByte() &^ (FlagPush | FlagBreak)
}

func (c *CPU) nop() {
	c.Bus.Tick()
}

func (c *CPU) nopRead(mode Mode) {
	c.readOperand(mode)
}

// Undocumented instructions

func (c *CPU) slo(mode Mode) {
	result := c.A | c.doAsl(mode)
	c.setFlagsZeroNegative(result)
	c.A = result
}

func (c *CPU) rla(mode Mode) {
	result := c.A & c.doRol(mode)
	c.setFlagsZeroNegative(result)
	c.A = result
}

func (c *CPU) sre(mode Mode) {
	result := c.A ^ c.doLsr(mode)
	c.setFlagsZeroNegative(result)
	c.A = result
}

func (c *CPU) rra(mode Mode) {
	a := c.A
	operand := c.doRor(mode)
	result := uint16(a) + uint16(operand) + uint16(c.carry())
	c.setFlagsCarryOverflow(a, operand, result)
	c.setFlagsZeroNegative(uint8(result))
	c.A = uint8(result)
}

func (c *CPU) sax(mode Mode) {
	c.Bus.WriteByte(c.operandAddress(mode), c.A&c.X)
}

func (c *CPU) lax(mode Mode) {
	c.lda(mode)
	c.X = c.A
}

func (c *CPU) dcp(mode Mode) {
	result := c.doDec(mode)
	c.setFlagsZeroNegative(c.A - result)
	c.setFlag(FlagCarry, c.A >= result)
}

func (c *CPU) isc(mode Mode) {
	a := c.A
	operand := ^c.doInc(mode)
	result := uint16(a) + uint16(operand) + uint16(c.carry())
	c.setFlagsCarryOverflow(a, operand, result)
	c.setFlagsZeroNegative(uint8(result))
	c.A = uint8(result)
}

func (c *CPU) anc() {
	result := c.A & c.readOperand(Immediate)
	c.setFlagsZeroNegative(result)
	c.setFlag(FlagCarry, result&0x80 != 0)
	c.A = result
}

func (c *CPU) alr() {
	result := c.A & c.readOperand(Immediate)
	c.setFlag(FlagCarry, result&1 == 1)
	result >>= 1
	c.setFlagsZeroNegative(result)
	c.A = result
}

func (c *CPU) arr() {
	operand := c.readOperand(Immediate)
	result := (c.A&operand)>>1 | c.carry()<<7

	bit6 := result >> 6 & 1
	bit5 := result >> 5 & 1
	c.setFlag(FlagCarry, bit6 == 1)
	c.setFlag(FlagOverflow, bit6^bit5 == 1)
	c.setFlagsZeroNegative(result)
	c.A = result
}

func (c *CPU) xaa() {
	c.txa()
	c.and(Immediate)
}

func (c *CPU) lxa() {
	c.lda(Immediate)
	c.tax()
}

func (c *CPU) axs() {
	operand := c.readOperand(Immediate)
	anded := c.A & c.X
	result := anded - operand
	c.setFlag(FlagCarry, anded >= operand)
	c.setFlagsZeroNegative(result)
	c.X = result
}

func (c *CPU) sbcNop() {
	c.sbc(Immediate)
	c.nop()
}

func (c *CPU) ahx(mode Mode) {
	address := c.operandAddress(mode)
	c.Bus.WriteByte(address, c.A&c.X&uint8(address>>8))
}

func (c *CPU) shx() {
	address := c.operandAddress(AbsoluteY)
	if cross(address-uint16(c.Y), c.Y) {
		address &= uint16(c.X) << 8
	}
	result := c.X & (uint8(address>>8) + 1)
	c.Bus.WriteByte(address, result)
}

func (c *CPU) shy() {
	address := c.operandAddress(AbsoluteX)
	if cross(address-uint16(c.X), c.X) {
		address &= uint16(c.Y) << 8
	}
	result := c.Y & (uint8(address>>8) + 1)
	c.Bus.WriteByte(address, result)
}

func (c *CPU) tas(mode Mode) {
	address := c.operandAddress(mode)
	c.SP = c.X & c.A
	c.Bus.WriteByte(address, c.SP&(uint8(address>>8)+1))
}

func (c *CPU) las(mode Mode) {
	result := c.readOperand(mode) & c.SP
	c.A = result
	c.X = result
	c.SP = result
	c.setFlagsZeroNegative(result)
}
