package ppu

import "testing"

func TestWriteControl(t *testing.T) {
	reg := NewRegisters()
	reg.WriteRegister(0x2000, 0b1010_1010)
	if reg.Control != 0b1010_1010 {
		t.Errorf("control = %08b", uint8(reg.Control))
	}
	if reg.TAddress.Nametable() != 0b10 {
		t.Errorf("t nametable = %02b, want control bits copied", reg.TAddress.Nametable())
	}
}

func TestWriteControlForceNMI(t *testing.T) {
	reg := NewRegisters()
	reg.Status.SetVBlank(true)
	reg.WriteRegister(0x2000, 0x80)
	if !reg.ForceNMI {
		t.Error("NMI enable rising during vblank should set ForceNMI")
	}

	// Already enabled: no second one-shot
	reg.ForceNMI = false
	reg.WriteRegister(0x2000, 0x80)
	if reg.ForceNMI {
		t.Error("ForceNMI set without a rising edge")
	}
}

func TestWriteMask(t *testing.T) {
	reg := NewRegisters()
	reg.WriteRegister(0x2001, 0b1010_1010)
	if reg.Mask != 0b1010_1010 {
		t.Errorf("mask = %08b", uint8(reg.Mask))
	}
}

func TestOAMAddressData(t *testing.T) {
	reg := NewRegisters()
	reg.WriteRegister(0x2003, 5)
	reg.WriteRegister(0x2004, 0xF0)
	if reg.OAM[5] != 0xF0 {
		t.Errorf("OAM[5] = %#x", reg.OAM[5])
	}

	// Write advanced the pointer; read does not advance it
	reg.WriteRegister(0x2003, 5)
	if got := reg.ReadRegister(0x2004); got != 0xF0 {
		t.Errorf("read OAM = %#x", got)
	}
	if got := reg.ReadRegister(0x2004); got != 0xF0 {
		t.Errorf("second read OAM = %#x", got)
	}
}

func TestReadOAMAttributeMasked(t *testing.T) {
	reg := NewRegisters()
	reg.OAM[6] = 0xFF // entry 1, byte 2: the attribute byte
	reg.WriteRegister(0x2003, 6)
	if got := reg.ReadRegister(0x2004); got != 0xE3 {
		t.Errorf("attribute read = %#x, want bits 2-4 masked (0xE3)", got)
	}
}

func TestWriteScroll(t *testing.T) {
	reg := NewRegisters()
	reg.WriteRegister(0x2005, 0b10101_010)
	if reg.FineX != 0b010 {
		t.Errorf("fine x = %03b", reg.FineX)
	}
	if reg.TAddress.CoarseX() != 0b10101 {
		t.Errorf("coarse x = %05b", reg.TAddress.CoarseX())
	}

	reg.WriteRegister(0x2005, 0b01010_101)
	if reg.TAddress.FineY() != 0b101 {
		t.Errorf("fine y = %03b", reg.TAddress.FineY())
	}
	if reg.TAddress.CoarseY() != 0b01010 {
		t.Errorf("coarse y = %05b", reg.TAddress.CoarseY())
	}
}

func TestWriteAddress(t *testing.T) {
	reg := NewRegisters()
	reg.WriteRegister(0x2006, 0b11_101010)
	if hb := uint8(reg.TAddress >> 8); hb != 0b00_101010 {
		t.Errorf("high byte = %08b, want bit 14 cleared", hb)
	}
	if reg.VAddress == reg.TAddress {
		t.Error("v copied before second write")
	}

	reg.WriteRegister(0x2006, 0b1010_1010)
	if reg.TAddress != 0b0010_1010_1010_1010 {
		t.Errorf("t = %016b", uint16(reg.TAddress))
	}
	if reg.VAddress != reg.TAddress {
		t.Error("v != t after second write")
	}
}

func TestWriteData(t *testing.T) {
	reg := NewRegisters()
	reg.VAddress = 0x2000
	reg.WriteRegister(0x2007, 0xF0)
	if got := reg.VRAM.ReadByte(0x2000); got != 0xF0 {
		t.Errorf("vram byte = %#x", got)
	}
	if reg.VAddress != 0x2001 {
		t.Errorf("v = %04X, want post-increment by 1", uint16(reg.VAddress))
	}

	reg.Control = 0x04 // vertical increment
	reg.WriteRegister(0x2007, 0x0F)
	if got := reg.VRAM.ReadByte(0x2001); got != 0x0F {
		t.Errorf("vram byte = %#x", got)
	}
	if reg.VAddress != 0x2001+32 {
		t.Errorf("v = %04X, want post-increment by 32", uint16(reg.VAddress))
	}
}

func TestReadStatus(t *testing.T) {
	reg := NewRegisters()
	reg.latch = true
	reg.Status = 0b1110_0000

	if got := reg.ReadRegister(0x2002); got != 0b1110_0000 {
		t.Errorf("status read = %08b", got)
	}
	if reg.latch {
		t.Error("write latch not cleared")
	}
	if reg.Status.VBlank() {
		t.Error("vblank not cleared")
	}
	if !reg.VBlankSuppress {
		t.Error("vblank suppress not set")
	}
}

func TestOpenBusGhostBits(t *testing.T) {
	reg := NewRegisters()
	reg.WriteRegister(0x2002, 0xFF) // only charges the bus latch
	reg.Status = 0

	if got := reg.ReadRegister(0x2002); got != 0x1F {
		t.Errorf("status with charged bus = %#x, want 0x1F", got)
	}
	for _, addr := range []uint16{0x2000, 0x2001, 0x2003, 0x2005, 0x2006} {
		if got := reg.ReadRegister(addr); got != 0x1F {
			t.Errorf("write-only register %04X = %#x, want open bus 0x1F", addr, got)
		}
	}
}

func TestReadDataDelayed(t *testing.T) {
	reg := NewRegisters()
	reg.VRAM.WriteByte(0x2001, 1)
	reg.VRAM.WriteByte(0x2002, 2)
	reg.VRAM.WriteByte(0x2003, 3)
	reg.VAddress = 0x2001

	reg.ReadRegister(0x2007) // prime the buffer
	for i, want := range []uint8{1, 2, 3} {
		if got := reg.ReadRegister(0x2007); got != want {
			t.Errorf("read %d = %#x, want %#x", i, got, want)
		}
	}
}

func TestOpenBusDecayClearsBits(t *testing.T) {
	reg := NewRegisters()
	reg.openBus = 0xFF
	// 1-in-4 per bit per call: after many calls every bit has decayed
	for i := 0; i < 1000; i++ {
		reg.TickDecay()
	}
	if reg.openBus != 0 {
		t.Errorf("open bus = %#x after decay, want 0", reg.openBus)
	}
}
