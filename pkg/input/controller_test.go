package input

import "testing"

func TestStrobeReturnsButtonA(t *testing.T) {
	c := New()
	c.SetButton(ButtonA, true)
	c.WriteRegister(1)

	for i := 0; i < 3; i++ {
		if got := c.ReadRegister(); got != 0x41 {
			t.Errorf("read %d = %#x, want 0x41 while strobed", i, got)
		}
	}
}

func TestShiftOutSequence(t *testing.T) {
	c := New()
	c.SetButton(ButtonA, true)
	c.SetButton(ButtonStart, true)
	c.SetButton(ButtonRight, true)

	c.WriteRegister(1)
	c.WriteRegister(0)

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 1} // A B Select Start Up Down Left Right
	for i, bit := range want {
		if got := c.ReadRegister(); got != 0x40|bit {
			t.Errorf("bit %d = %#x, want %#x", i, got, 0x40|bit)
		}
	}

	// Exhausted: reads return 1
	for i := 0; i < 3; i++ {
		if got := c.ReadRegister(); got != 0x41 {
			t.Errorf("exhausted read = %#x, want 0x41", got)
		}
	}
}

func TestRestrobeResets(t *testing.T) {
	c := New()
	c.SetButton(ButtonB, true)
	c.WriteRegister(1)
	c.WriteRegister(0)

	c.ReadRegister() // A
	c.ReadRegister() // B

	c.WriteRegister(1)
	c.WriteRegister(0)
	c.ReadRegister() // A again
	if got := c.ReadRegister(); got != 0x41 {
		t.Errorf("B after restrobe = %#x, want 0x41", got)
	}
}

func TestButtonRelease(t *testing.T) {
	c := New()
	c.SetButton(ButtonA, true)
	c.SetButton(ButtonA, false)
	c.WriteRegister(1)
	if got := c.ReadRegister(); got != 0x40 {
		t.Errorf("released A = %#x, want 0x40", got)
	}
}
