package cartridge

import (
	"fmt"

	"github.com/famicore/pkg/logger"
)

// Mapper4 implements iNES mapper 4 (MMC3)
// https://wiki.nesdev.com/w/index.php/MMC3
type Mapper4 struct {
	data      *Data
	registers [8]int
	index     int
	prgMode   bool
	chrMode   bool
	mirroring Mirroring

	irqCounter uint8
	irqPeriod  uint8
	irqEnabled bool
	irqReload  bool
	irqFlag    bool
}

// NewMapper4 creates an MMC3 mapper over the given cartridge data
func NewMapper4(data *Data) *Mapper4 {
	return &Mapper4{
		data:      data,
		mirroring: MirrorHorizontal,
	}
}

func (m *Mapper4) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr <= 0x7FFF:
		return m.data.PRGRAM.Read(First(PageSize8KB), addr-0x6000)
	case addr >= 0x8000 && addr <= 0x9FFF:
		if m.prgMode {
			return m.data.PRGROM.Read(FromEnd(1, PageSize8KB), addr-0x8000)
		}
		return m.data.PRGROM.Read(Number(m.registers[6], PageSize8KB), addr-0x8000)
	case addr >= 0xA000 && addr <= 0xBFFF:
		return m.data.PRGROM.Read(Number(m.registers[7], PageSize8KB), addr-0xA000)
	case addr >= 0xC000 && addr <= 0xDFFF:
		if m.prgMode {
			return m.data.PRGROM.Read(Number(m.registers[6], PageSize8KB), addr-0xC000)
		}
		return m.data.PRGROM.Read(FromEnd(1, PageSize8KB), addr-0xC000)
	case addr >= 0xE000:
		return m.data.PRGROM.Read(FromEnd(0, PageSize8KB), addr-0xE000)
	default:
		panic(fmt.Sprintf("mmc3: bad PRG address %04X", addr))
	}
}

func (m *Mapper4) WritePRG(addr uint16, value uint8) {
	even := addr%2 == 0

	switch {
	case addr >= 0x6000 && addr <= 0x7FFF:
		m.data.PRGRAM.Write(First(PageSize8KB), addr-0x6000, value)

	case addr >= 0x8000 && addr <= 0x9FFF && even:
		m.index = int(value & 0b111)
		m.prgMode = value&0x40 != 0
		m.chrMode = value&0x80 != 0
	case addr >= 0x8000 && addr <= 0x9FFF:
		m.registers[m.index] = int(value)

	case addr >= 0xA000 && addr <= 0xBFFF && even:
		if value&1 == 0 {
			m.mirroring = MirrorVertical
		} else {
			m.mirroring = MirrorHorizontal
		}

	case addr >= 0xC000 && addr <= 0xDFFF && even:
		m.irqPeriod = value
	case addr >= 0xC000 && addr <= 0xDFFF:
		m.irqReload = true

	case addr >= 0xE000 && even:
		m.irqEnabled = false
		m.irqFlag = false
	case addr >= 0xE000:
		m.irqEnabled = true
	}
}

// CHR banking: in 2KB/1KB mode R0 and R1 cover the low pattern
// table in 2 KiB pairs and R2-R5 cover the high table; chrMode swaps the
// halves.
//
//	$0000-$07FF  R0&$FE,R0|1   R2,R3
//	$0800-$0FFF  R1&$FE,R1|1   R4,R5
//	$1000-$17FF  R2,R3         R0&$FE,R0|1
//	$1800-$1FFF  R4,R5         R1&$FE,R1|1
func (m *Mapper4) chrBank(addr uint16) int {
	slot := int(addr / 0x400)
	if m.chrMode {
		slot ^= 4
	}

	switch slot {
	case 0:
		return m.registers[0] &^ 1
	case 1:
		return m.registers[0] | 1
	case 2:
		return m.registers[1] &^ 1
	case 3:
		return m.registers[1] | 1
	default:
		return m.registers[slot-2]
	}
}

func (m *Mapper4) ReadCHR(addr uint16) uint8 {
	return m.data.chr().Read(Number(m.chrBank(addr), PageSize1KB), addr%0x400)
}

func (m *Mapper4) WriteCHR(addr uint16, value uint8) {
	if m.data.Header.CHRROMPages == 0 {
		m.data.CHRRAM.Write(Number(m.chrBank(addr), PageSize1KB), addr%0x400, value)
	}
}

func (m *Mapper4) Mirroring() Mirroring {
	return m.mirroring
}

func (m *Mapper4) IRQFlag() bool {
	return m.irqFlag
}

// SignalScanline clocks the scanline IRQ counter. A zero counter or a
// pending reload reloads from the period and raises the IRQ when enabled.
func (m *Mapper4) SignalScanline() {
	if m.irqCounter == 0 || m.irqReload {
		if m.irqEnabled {
			m.irqFlag = true
			logger.LogMapper("mmc3 scanline IRQ raised (period=%d)", m.irqPeriod)
		}
		m.irqCounter = m.irqPeriod
		m.irqReload = false
	} else {
		m.irqCounter--
	}
}
