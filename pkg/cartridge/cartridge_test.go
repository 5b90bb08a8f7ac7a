package cartridge

import (
	"errors"
	"testing"
)

func TestParseHeader(t *testing.T) {
	raw := []uint8{
		0x4E, 0x45, 0x53, 0x1A,
		0x10, // 16 PRG pages
		0x12, // 18 CHR pages
		0x11, // vertical mirroring, mapper low nibble 1
		0x00,
		0x13, // 19 PRG-RAM pages
		0, 0, 0, 0, 0, 0, 0,
	}

	h, err := ParseHeader(raw)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}

	if h.Mirroring != MirrorVertical {
		t.Errorf("Mirroring = %v, want vertical", h.Mirroring)
	}
	if h.PRGROMPages != 0x10 || h.PRGROMBytes() != 0x10*0x4000 {
		t.Errorf("PRG pages = %d (%d bytes)", h.PRGROMPages, h.PRGROMBytes())
	}
	if h.CHRROMPages != 0x12 || h.CHRROMBytes() != 0x12*0x2000 {
		t.Errorf("CHR pages = %d (%d bytes)", h.CHRROMPages, h.CHRROMBytes())
	}
	if h.PRGRAMPages != 0x13 || h.PRGRAMBytes() != 0x13*0x2000 {
		t.Errorf("PRG-RAM pages = %d (%d bytes)", h.PRGRAMPages, h.PRGRAMBytes())
	}
	if h.MapperNumber != 1 {
		t.Errorf("MapperNumber = %d, want 1", h.MapperNumber)
	}
	if h.CHRRAMBytes() != 0 {
		t.Errorf("CHRRAMBytes = %d, want 0 when CHR-ROM present", h.CHRRAMBytes())
	}
}

func TestParseHeaderDefaults(t *testing.T) {
	raw := buildROM(romSpec{prgPages: 1, chrPages: 0, prgRAM: 0})

	h, err := ParseHeader(raw)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.PRGRAMPages != 1 {
		t.Errorf("PRGRAMPages = %d, want 1 when header says zero", h.PRGRAMPages)
	}
	if h.CHRRAMBytes() != 0x2000 {
		t.Errorf("CHRRAMBytes = %d, want one 8 KiB page", h.CHRRAMBytes())
	}
}

func TestNewErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  []uint8
		want error
	}{
		{"bad magic", append([]uint8{0xDE, 0xAD, 0xBE, 0xEF}, make([]uint8, 12)...), ErrBadMagic},
		{"short header", []uint8{0x4E, 0x45}, ErrTruncated},
		{"truncated prg", buildROM(romSpec{prgPages: 2})[:0x4000], ErrTruncated},
		{"unsupported mapper", buildROM(romSpec{prgPages: 1, chrPages: 1, mapperNum: 7}), ErrUnsupportedMapper},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := New(c.raw)
			if !errors.Is(err, c.want) {
				t.Errorf("New: err = %v, want %v", err, c.want)
			}
		})
	}
}

func TestCartridgeReadPRGROM(t *testing.T) {
	cart, err := New(buildROM(romSpec{prgPages: 2, chrPages: 1, prgRAM: 1}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for _, addr := range []uint16{0x8000, 0x8001, 0x9234, 0xC000, 0xFFFF} {
		want := uint8(addr - 0x8000)
		if got := cart.ReadPRG(addr); got != want {
			t.Errorf("ReadPRG(%04X) = %#x, want %#x", addr, got, want)
		}
	}
}

func TestCartridgePRGRAMRoundTrip(t *testing.T) {
	cart, err := New(buildROM(romSpec{prgPages: 2, chrPages: 1, prgRAM: 1}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for addr := uint16(0x6000); addr < 0x7000; addr++ {
		cart.WritePRG(addr, uint8(addr))
		if got := cart.ReadPRG(addr); got != uint8(addr) {
			t.Fatalf("PRG-RAM round trip at %04X = %#x, want %#x", addr, got, uint8(addr))
		}
	}
}

func TestCartridgeReadCHRROM(t *testing.T) {
	cart, err := New(buildROM(romSpec{prgPages: 2, chrPages: 1, prgRAM: 1}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for addr := uint16(0); addr < 0x2000; addr += 7 {
		if got := cart.ReadCHR(addr); got != uint8(addr) {
			t.Errorf("ReadCHR(%04X) = %#x, want %#x", addr, got, uint8(addr))
		}
	}

	// CHR-ROM writes are ignored
	cart.WriteCHR(0x0100, 0xEE)
	if got := cart.ReadCHR(0x0100); got != 0x00 {
		t.Errorf("CHR-ROM write stuck: got %#x", got)
	}
}

func TestCartridgeCHRRAMRoundTrip(t *testing.T) {
	cart, err := New(buildROM(romSpec{prgPages: 2, chrPages: 0, prgRAM: 1}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for addr := uint16(0); addr < 0x2000; addr += 11 {
		cart.WriteCHR(addr, uint8(addr)^0xA5)
		if got := cart.ReadCHR(addr); got != uint8(addr)^0xA5 {
			t.Fatalf("CHR-RAM round trip at %04X = %#x", addr, got)
		}
	}
}
