package cpu

import "fmt"

// Mode is a 6502 addressing mode. The ForceTick variants always spend the
// index-correction cycle; the plain indexed variants spend it only when the
// effective address crosses a page. Writes and read-modify-writes use the
// ForceTick variants.
type Mode int

const (
	Immediate Mode = iota
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteXForceTick
	AbsoluteY
	AbsoluteYForceTick
	Indirect
	IndirectX
	IndirectY
	IndirectYForceTick
)

// operandAddress resolves the operand address for the mode, consuming
// operand bytes and clocking the bus per the real access pattern. The PC
// must be on the first byte after the opcode.
func (c *CPU) operandAddress(mode Mode) uint16 {
	switch mode {
	case Immediate:
		pc := c.PC
		c.PC++
		return pc

	case ZeroPage:
		return uint16(c.nextByte())

	case ZeroPageX:
		c.Bus.Tick()
		return lowByte(offsetAddr(uint16(c.nextByte()), c.X))

	case ZeroPageY:
		c.Bus.Tick()
		return lowByte(offsetAddr(uint16(c.nextByte()), c.Y))

	case Absolute:
		return c.nextWord()

	case AbsoluteX:
		base := c.nextWord()
		if cross(base, c.X) {
			c.Bus.Tick()
		}
		return offsetAddr(base, c.X)

	case AbsoluteXForceTick:
		c.Bus.Tick()
		return offsetAddr(c.nextWord(), c.X)

	case AbsoluteY:
		base := c.nextWord()
		if cross(base, c.Y) {
			c.Bus.Tick()
		}
		return offsetAddr(base, c.Y)

	case AbsoluteYForceTick:
		c.Bus.Tick()
		return offsetAddr(c.nextWord(), c.Y)

	case Indirect:
		// The pointer's high byte is fetched without carrying into the next
		// page: JMP ($xxFF) wraps within the page.
		i := c.nextWord()
		return c.Bus.ReadNoncontinuousWord(i, highByte(i)|lowByte(i+1))

	case IndirectX:
		c.Bus.Tick()
		i := offsetAddr(uint16(c.nextByte()), c.X)
		return c.Bus.ReadNoncontinuousWord(lowByte(i), lowByte(i+1))

	case IndirectY:
		i := uint16(c.nextByte())
		base := c.Bus.ReadNoncontinuousWord(i, lowByte(i+1))
		if cross(base, c.Y) {
			c.Bus.Tick()
		}
		return offsetAddr(base, c.Y)

	case IndirectYForceTick:
		i := uint16(c.nextByte())
		base := c.Bus.ReadNoncontinuousWord(i, lowByte(i+1))
		c.Bus.Tick()
		return offsetAddr(base, c.Y)

	default:
		panic(fmt.Sprintf("cpu: invalid addressing mode %d", mode))
	}
}

func (c *CPU) readOperand(mode Mode) uint8 {
	return c.Bus.ReadByte(c.operandAddress(mode))
}
