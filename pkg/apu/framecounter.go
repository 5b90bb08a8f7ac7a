package apu

import "github.com/famicore/pkg/logger"

// FrameEvent is what one frame-counter tick asks the channels to do
type FrameEvent int

const (
	FrameNone FrameEvent = iota
	FrameQuarter
	FrameHalf
)

// FrameCounter divides the CPU cycle stream into the quarter- and half-frame
// events that clock envelopes, length counters and sweeps. Mode 0 is the
// 4-step sequence with the frame IRQ; mode 1 is the 5-step sequence.
//
// The IRQ latches privately across the three trigger cycles and is published
// to the CPU on the last two, which matches the hardware's one-cycle lag.
type FrameCounter struct {
	counter    int64
	irqEnabled bool

	PublicIRQ  bool
	PrivateIRQ bool

	modeOne bool
}

// NewFrameCounter starts in mode 0 with the IRQ enabled
func NewFrameCounter() *FrameCounter {
	return &FrameCounter{irqEnabled: true}
}

// WriteRegister handles $4017: MI-- ----. The counter pre-positions on CPU
// cycle parity, and selecting mode 1 clocks an immediate half-frame.
func (f *FrameCounter) WriteRegister(value uint8, cycles uint64) FrameEvent {
	f.irqEnabled = value&0x40 == 0
	if !f.irqEnabled {
		f.PublicIRQ = false
		f.PrivateIRQ = false
	}

	f.modeOne = value&0x80 != 0

	if cycles&1 == 0 {
		f.counter = 0
	} else {
		f.counter = -1
	}

	if f.modeOne {
		return FrameHalf
	}
	return FrameNone
}

// Tick advances the counter one CPU cycle and reports the event due
func (f *FrameCounter) Tick() FrameEvent {
	var result FrameEvent
	if f.modeOne {
		result = f.tickModeOne()
	} else {
		result = f.tickModeZero()
	}
	f.counter++
	return result
}

func (f *FrameCounter) tickModeZero() FrameEvent {
	switch f.counter {
	case 7459, 22373:
		return FrameQuarter
	case 14915:
		return FrameHalf
	case 29830:
		f.triggerIRQ()
	case 29831:
		f.triggerIRQ()
		f.publishIRQ()
		return FrameHalf
	case 29832:
		f.triggerIRQ()
		f.publishIRQ()
		// The hardware counter rolls over at 29830; the 29831/29832 actions
		// happen after the rollover. Skip the counter ahead as if it had
		// been reset there.
		f.counter = 2
	}
	return FrameNone
}

func (f *FrameCounter) tickModeOne() FrameEvent {
	switch f.counter {
	case 7459, 22373:
		return FrameQuarter
	case 14915:
		return FrameHalf
	case 37283:
		// Rollover is at 37282 with the half-frame signal one tick later
		f.counter = 1
		return FrameHalf
	}
	return FrameNone
}

func (f *FrameCounter) triggerIRQ() {
	if f.irqEnabled {
		f.PrivateIRQ = true
		logger.LogAPU("frame IRQ triggered at counter %d", f.counter)
	}
}

func (f *FrameCounter) publishIRQ() {
	f.PublicIRQ = f.PrivateIRQ
}
