package apu

import "testing"

func TestLengthCounterPendingWrite(t *testing.T) {
	var l LengthCounter
	l.SetEnabled(true)
	l.WriteRegister(0x08) // index 1 -> 0xFE

	if l.Active() {
		t.Error("counter active before the pending write applied")
	}
	l.UpdatePending()
	if !l.Active() {
		t.Error("counter inactive after the pending write applied")
	}
}

func TestLengthCounterDisabledWriteIgnored(t *testing.T) {
	var l LengthCounter
	l.WriteRegister(0x08)
	l.UpdatePending()
	if l.Active() || l.Playing() {
		t.Error("counter loaded while disabled")
	}
}

func TestLengthCounterDisableClears(t *testing.T) {
	var l LengthCounter
	l.SetEnabled(true)
	l.WriteRegister(3 << 3) // index 3 -> length 2
	l.UpdatePending()
	l.SetEnabled(false)
	if l.Playing() {
		t.Error("counter survived disable")
	}
}

func TestLengthCounterCountdown(t *testing.T) {
	var l LengthCounter
	l.SetEnabled(true)
	l.WriteRegister(3 << 3) // length 2
	l.UpdatePending()

	l.Tick()
	if !l.Active() {
		t.Error("counter expired early")
	}
	l.Tick()
	if l.Active() {
		t.Error("counter still active after running out")
	}
}

func TestLengthCounterHalt(t *testing.T) {
	var l LengthCounter
	l.SetEnabled(true)
	l.WriteRegister(3 << 3)
	l.SetHalted(true)
	l.UpdatePending()

	for i := 0; i < 10; i++ {
		l.Tick()
	}
	if !l.Active() {
		t.Error("halted counter decremented")
	}
}

func TestEnvelopeDecay(t *testing.T) {
	var e Envelope
	e.WriteRegister(0x00) // period 0, not constant
	e.Start()
	e.Tick()
	if e.Volume() != 0x0F {
		t.Fatalf("volume after start = %d, want 15", e.Volume())
	}

	for want := uint8(14); want > 0; want-- {
		e.Tick()
		if e.Volume() != want {
			t.Fatalf("volume = %d, want %d", e.Volume(), want)
		}
	}
}

func TestEnvelopeConstant(t *testing.T) {
	var e Envelope
	e.WriteRegister(0x17) // constant volume 7
	e.Start()
	e.Tick()
	for i := 0; i < 5; i++ {
		e.Tick()
		if e.Volume() != 7 {
			t.Fatalf("constant volume = %d, want 7", e.Volume())
		}
	}
}

func TestEnvelopeLoop(t *testing.T) {
	var e Envelope
	e.WriteRegister(0x20) // looping, period 0
	e.Start()
	e.Tick()
	for i := 0; i < 15; i++ {
		e.Tick()
	}
	if e.Volume() != 0 {
		t.Fatalf("volume = %d, want 0 at loop bottom", e.Volume())
	}
	e.Tick()
	if e.Volume() != 0x0F {
		t.Fatalf("volume = %d, want loop reload to 15", e.Volume())
	}
}

func TestSequencerStepAndReload(t *testing.T) {
	s := NewSequencer(8)
	s.Period = 2
	steps := 0
	for i := 0; i < 9; i++ {
		if s.Tick(true) {
			steps++
		}
	}
	// Expires every period+1 ticks
	if steps != 3 {
		t.Errorf("expired %d times in 9 ticks with period 2, want 3", steps)
	}
	if s.CurrentStep != 3%8 {
		t.Errorf("step = %d", s.CurrentStep)
	}
}

func TestSweepTargetPeriod(t *testing.T) {
	seq := NewSequencer(8)
	seq.Period = 0x100

	up := NewSweep(TwosComplement)
	up.WriteRegister(0x81) // enabled, shift 1
	if got := up.TargetPeriod(seq); got != 0x100+0x80 {
		t.Errorf("additive target = %#x", got)
	}

	ones := NewSweep(OnesComplement)
	ones.WriteRegister(0x89) // negate, shift 1
	if got := ones.TargetPeriod(seq); got != 0x100-0x80-1 {
		t.Errorf("ones-complement target = %#x", got)
	}

	twos := NewSweep(TwosComplement)
	twos.WriteRegister(0x89)
	if got := twos.TargetPeriod(seq); got != 0x100-0x80 {
		t.Errorf("twos-complement target = %#x", got)
	}
}

func TestSweepUpdatesPeriod(t *testing.T) {
	seq := NewSequencer(8)
	seq.Period = 0x100

	s := NewSweep(TwosComplement)
	s.WriteRegister(0x81) // enabled, period 0, shift 1

	s.Tick(seq)
	if seq.Period != 0x180 {
		t.Errorf("period = %#x, want swept to 0x180", seq.Period)
	}
}

func TestSweepMutesAboveTarget(t *testing.T) {
	seq := NewSequencer(8)
	seq.Period = 0x600

	s := NewSweep(TwosComplement)
	s.WriteRegister(0x81)

	s.Tick(seq)
	if seq.Period != 0x600 {
		t.Errorf("period = %#x, want unchanged when target >= 0x800", seq.Period)
	}
}

func TestNoiseLFSR(t *testing.T) {
	n := NewNoiseChannel()
	n.WriteRegister(0x400E, 0) // period table entry 0 = 4

	// Seeded with 1: first expiry computes feedback (1^0)=1 into bit 14
	n.TickSequencer()
	if n.shift != 1<<14 {
		t.Errorf("shift = %015b, want bit 14 set", n.shift)
	}
}
