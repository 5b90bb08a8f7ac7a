package bus

import (
	"testing"

	"github.com/famicore/pkg/cartridge"
)

// testCartridge builds a mapper-0 image with recognizable PRG bytes
func testCartridge(t *testing.T) *cartridge.Cartridge {
	t.Helper()
	raw := []uint8{
		0x4E, 0x45, 0x53, 0x1A,
		0x02, 0x01, 0x00, 0x00,
		0x01, 0, 0, 0, 0, 0, 0, 0,
	}
	for i := 0; i < 2*0x4000; i++ {
		raw = append(raw, uint8(i))
	}
	raw = append(raw, make([]uint8, 0x2000)...)

	cart, err := cartridge.New(raw)
	if err != nil {
		t.Fatalf("cartridge.New: %v", err)
	}
	return cart
}

func TestRAMMirroring(t *testing.T) {
	b := New()
	b.unclockedWriteByte(0x0000, 0x11)
	for _, addr := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
		if got := b.UnclockedReadByte(addr); got != 0x11 {
			t.Errorf("read %04X = %#x, want mirror of 0000", addr, got)
		}
	}

	b.unclockedWriteByte(0x1FFF, 0x22)
	if got := b.UnclockedReadByte(0x07FF); got != 0x22 {
		t.Errorf("read 07FF = %#x, want mirror of 1FFF", got)
	}
}

func TestRAMRoundTrip(t *testing.T) {
	b := New()
	for addr := uint16(0); addr < 0x800; addr += 13 {
		b.unclockedWriteByte(addr, uint8(addr))
		if got := b.UnclockedReadByte(addr); got != uint8(addr) {
			t.Fatalf("RAM round trip at %04X = %#x", addr, got)
		}
	}
}

func TestCartridgeDecodeAndOpenBus(t *testing.T) {
	b := New()

	// No cartridge: reads float the address high byte
	if got := b.UnclockedReadByte(0x8123); got != 0x81 {
		t.Errorf("open bus read = %#x, want 0x81", got)
	}

	b.LoadCartridge(testCartridge(t))
	if got := b.UnclockedReadByte(0x8000); got != 0 {
		t.Errorf("PRG read = %#x, want 0", got)
	}
	if got := b.UnclockedReadByte(0x8005); got != 5 {
		t.Errorf("PRG read = %#x, want 5", got)
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	b := New()
	b.LoadCartridge(testCartridge(t))

	// $2006/$2007 mirrored at $3FFE/$3FFF
	b.unclockedWriteByte(0x3FFE, 0x20)
	b.unclockedWriteByte(0x3FFE, 0x00)
	b.unclockedWriteByte(0x3FFF, 0x42)

	b.unclockedWriteByte(0x2006, 0x20)
	b.unclockedWriteByte(0x2006, 0x00)
	b.UnclockedReadByte(0x2007) // buffer prime
	if got := b.UnclockedReadByte(0x2007); got != 0x42 {
		t.Errorf("nametable byte via mirrored registers = %#x, want 0x42", got)
	}
}

func TestTickRatios(t *testing.T) {
	b := New()
	b.LoadCartridge(testCartridge(t))

	start := b.PPU.Renderer.Dot + b.PPU.Renderer.Scanline*341
	for i := 0; i < 100; i++ {
		b.Tick()
	}
	if b.Cycles != 100 {
		t.Errorf("cycles = %d, want 100", b.Cycles)
	}
	end := b.PPU.Renderer.Dot + b.PPU.Renderer.Scanline*341
	if end-start != 300 {
		t.Errorf("PPU advanced %d dots over 100 CPU cycles, want 300", end-start)
	}
}

func TestClockedAccessTicks(t *testing.T) {
	b := New()
	b.LoadCartridge(testCartridge(t))

	b.ReadByte(0x0000)
	if b.Cycles != 1 {
		t.Errorf("cycles after read = %d, want 1", b.Cycles)
	}
	b.WriteByte(0x0000, 1)
	if b.Cycles != 2 {
		t.Errorf("cycles after write = %d, want 2", b.Cycles)
	}
	b.ReadWord(0x0000)
	if b.Cycles != 4 {
		t.Errorf("cycles after word read = %d, want 4", b.Cycles)
	}
}

func TestNMIDelaySlot(t *testing.T) {
	b := New()

	b.NMI.Schedule(1)
	if b.NMI.Ready() {
		t.Error("NMI ready immediately, want one-tick delay")
	}
	b.NMI.Tick()
	if !b.NMI.Ready() {
		t.Error("NMI not ready after its delay elapsed")
	}
	b.NMI.Acknowledge()
	if b.NMI.Ready() {
		t.Error("NMI still ready after acknowledge")
	}
}

func TestOAMDMA(t *testing.T) {
	b := New()
	b.LoadCartridge(testCartridge(t))

	for i := uint16(0); i < 256; i++ {
		b.unclockedWriteByte(0x0200+i, uint8(i)^0x5A)
	}
	b.unclockedWriteByte(0x2003, 0) // OAM pointer to 0
	b.unclockedWriteByte(0x4014, 0x02)

	for i := 0; i < 256; i++ {
		if got := b.PPU.Registers.OAM[i]; got != uint8(i)^0x5A {
			t.Fatalf("OAM[%d] = %#x, want %#x", i, got, uint8(i)^0x5A)
		}
	}
	if got := b.ResetCPUStallCycles(); got != 513 {
		t.Errorf("stall cycles = %d, want 513 on even start", got)
	}

	// Odd-cycle start charges one extra
	b.Tick()
	b.unclockedWriteByte(0x2003, 0)
	b.unclockedWriteByte(0x4014, 0x02)
	if got := b.ResetCPUStallCycles(); got != 514 {
		t.Errorf("stall cycles = %d, want 514 on odd start", got)
	}
}

func TestControllerPorts(t *testing.T) {
	b := New()
	b.Controller0.SetButton(0, true) // A on port 0

	b.unclockedWriteByte(0x4016, 1)
	b.unclockedWriteByte(0x4016, 0)

	if got := b.UnclockedReadByte(0x4016); got != 0x41 {
		t.Errorf("port 0 read = %#x, want 0x41", got)
	}
	if got := b.UnclockedReadByte(0x4017); got != 0x40 {
		t.Errorf("port 1 read = %#x, want 0x40", got)
	}
}

func TestIRQAggregation(t *testing.T) {
	b := New()
	if b.IRQ() {
		t.Error("IRQ with no sources")
	}

	// Drive the APU frame counter to its IRQ
	for i := 0; i < 29833; i++ {
		b.APU.Tick(uint64(i))
	}
	if !b.IRQ() {
		t.Error("APU frame IRQ not visible on the bus IRQ line")
	}
}

func TestFrameReadyFromDraw(t *testing.T) {
	b := New()
	b.LoadCartridge(testCartridge(t))

	// One full frame of CPU cycles is ample to cross line 240 dot 0
	for i := 0; i < 89342/3+10; i++ {
		b.Tick()
		if b.FrameReady {
			return
		}
	}
	t.Error("no draw event within a frame of ticks")
}
