package cartridge

import "fmt"

// Mapper0 implements iNES mapper 0 (NROM)
// http://wiki.nesdev.com/w/index.php/NROM
type Mapper0 struct {
	noIRQ
	data *Data
}

// NewMapper0 creates an NROM mapper over the given cartridge data
func NewMapper0(data *Data) *Mapper0 {
	return &Mapper0{data: data}
}

func (m *Mapper0) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr <= 0x7FFF:
		return m.data.PRGRAM.Read(First(PageSize8KB), addr-0x6000)
	case addr >= 0x8000 && addr <= 0xBFFF:
		return m.data.PRGROM.Read(First(PageSize16KB), addr-0x8000)
	case addr >= 0xC000:
		return m.data.PRGROM.Read(Last(PageSize16KB), addr-0xC000)
	default:
		panic(fmt.Sprintf("mapper0: bad PRG address %04X", addr))
	}
}

func (m *Mapper0) WritePRG(addr uint16, value uint8) {
	switch {
	case addr >= 0x6000 && addr <= 0x7FFF:
		m.data.PRGRAM.Write(First(PageSize8KB), addr-0x6000, value)
	default:
		// ROM writes have no bank-switching side effects on NROM
	}
}

func (m *Mapper0) ReadCHR(addr uint16) uint8 {
	return m.data.chr().Read(First(PageSize8KB), addr)
}

func (m *Mapper0) WriteCHR(addr uint16, value uint8) {
	if m.data.Header.CHRROMPages == 0 {
		m.data.CHRRAM.Write(First(PageSize8KB), addr, value)
	}
}

func (m *Mapper0) Mirroring() Mirroring {
	return m.data.Header.Mirroring
}
