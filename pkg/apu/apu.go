// Package apu emulates the audio processing unit: two pulse channels, the
// triangle, noise and DMC channels, the frame counter that clocks their
// helper units, and the mixer/filter chain producing 44.1 kHz PCM.
package apu

import "github.com/famicore/pkg/cartridge"

// sampleInterval is how many CPU cycles pass between output samples. A frame
// is at least 29,779 CPU cycles and needs ~735 stereo pairs at 44.1 kHz.
const sampleInterval = 40

// APU is the audio processing unit
type APU struct {
	// Buffer holds interleaved stereo i16 samples; the frontend drains it
	// once per frame.
	Buffer []int16

	frameCounter *FrameCounter
	pulse0       *PulseChannel
	pulse1       *PulseChannel
	triangle     *TriangleChannel
	noise        *NoiseChannel
	DMC          *DMCChannel
	filters      [3]*firstOrderFilter
}

// New creates an APU in power-on state
func New() *APU {
	return &APU{
		frameCounter: NewFrameCounter(),
		pulse0:       NewPulseChannel(OnesComplement),
		pulse1:       NewPulseChannel(TwosComplement),
		triangle:     NewTriangleChannel(),
		noise:        NewNoiseChannel(),
		DMC:          NewDMCChannel(),
		filters: [3]*firstOrderFilter{
			highPassFilter(44100, 90),
			highPassFilter(44100, 440),
			lowPassFilter(44100, 14000),
		},
	}
}

// Reset re-arms the frame counter and settles the units, as the hardware
// does over the first handful of cycles after reset.
func (a *APU) Reset() {
	a.WriteRegister(0x4017, 0, 0)
	for i := uint64(0); i < 11; i++ {
		a.Tick(i)
	}
}

// ReadRegister handles the $4015 status read: channel activity and the two
// IRQ flags. Reading clears the frame IRQ.
func (a *APU) ReadRegister() uint8 {
	var result uint8
	if a.DMC.IRQFlag {
		result |= 0x80
	}
	if a.frameCounter.PrivateIRQ {
		result |= 0x40
	}
	if a.DMC.Playing() {
		result |= 0x10
	}
	if a.noise.Playing() {
		result |= 0x08
	}
	if a.triangle.Playing() {
		result |= 0x04
	}
	if a.pulse1.Playing() {
		result |= 0x02
	}
	if a.pulse0.Playing() {
		result |= 0x01
	}

	a.frameCounter.PrivateIRQ = false
	a.frameCounter.PublicIRQ = false
	return result
}

// WriteRegister dispatches a CPU write to $4000-$4013, $4015 or $4017.
// Writes into reserved holes are no-ops, not errors.
func (a *APU) WriteRegister(addr uint16, value uint8, cycles uint64) {
	switch {
	case addr <= 0x4003:
		a.pulse0.WriteRegister(addr, value)
	case addr <= 0x4007:
		a.pulse1.WriteRegister(addr, value)
	case addr <= 0x400B:
		a.triangle.WriteRegister(addr, value)
	case addr <= 0x400F:
		a.noise.WriteRegister(addr, value)
	case addr <= 0x4013:
		a.DMC.WriteRegister(addr, value)
	case addr == 0x4015:
		a.pulse0.SetEnabled(value&0x01 != 0)
		a.pulse1.SetEnabled(value&0x02 != 0)
		a.triangle.SetEnabled(value&0x04 != 0)
		a.noise.SetEnabled(value&0x08 != 0)
		a.DMC.SetEnabled(value&0x10 != 0)
	case addr == 0x4017:
		a.handleFrameEvent(a.frameCounter.WriteRegister(value, cycles))
	}
}

// SetCartridge attaches the cartridge the DMC streams samples from
func (a *APU) SetCartridge(cart *cartridge.Cartridge) {
	a.DMC.SetCartridge(cart)
}

// ResetCPUStallCycles drains the DMC's accumulated stall cycles
func (a *APU) ResetCPUStallCycles() int {
	return a.DMC.ResetCPUStallCycles()
}

// Tick advances the APU one CPU cycle
func (a *APU) Tick(cpuCycles uint64) {
	// The triangle clocks at CPU rate, everything else at half rate
	a.triangle.TickSequencer()
	if cpuCycles%2 == 1 {
		a.pulse0.TickSequencer()
		a.pulse1.TickSequencer()
		a.noise.TickSequencer()
		a.DMC.TickSequencer()
	}

	a.handleFrameEvent(a.frameCounter.Tick())

	a.pulse0.UpdatePendingLengthCounter()
	a.pulse1.UpdatePendingLengthCounter()
	a.triangle.UpdatePendingLengthCounter()
	a.noise.UpdatePendingLengthCounter()

	if cpuCycles%sampleInterval == 0 {
		s := a.sample()
		a.Buffer = append(a.Buffer, s, s)
	}
}

func (a *APU) handleFrameEvent(event FrameEvent) {
	switch event {
	case FrameQuarter:
		a.pulse0.TickQuarterFrame()
		a.pulse1.TickQuarterFrame()
		a.triangle.TickQuarterFrame()
		a.noise.TickQuarterFrame()
	case FrameHalf:
		a.pulse0.TickQuarterFrame()
		a.pulse0.TickHalfFrame()
		a.pulse1.TickQuarterFrame()
		a.pulse1.TickHalfFrame()
		a.triangle.TickQuarterFrame()
		a.triangle.TickHalfFrame()
		a.noise.TickQuarterFrame()
		a.noise.TickHalfFrame()
	}
}

// IRQFlag is the APU's contribution to the CPU IRQ line
func (a *APU) IRQFlag() bool {
	return a.frameCounter.PublicIRQ || a.DMC.IRQFlag
}

// sample mixes the five channels with the standard nonlinear DAC formula
// and runs the result through the filter chain.
// http://wiki.nesdev.com/w/index.php/APU_Mixer
func (a *APU) sample() int16 {
	p0 := float64(a.pulse0.Sample())
	p1 := float64(a.pulse1.Sample())
	t := float64(a.triangle.Sample())
	n := float64(a.noise.Sample())
	d := float64(a.DMC.Sample())

	pulseOut := 95.88 / (8128/(p0+p1) + 100)
	tndOut := 159.79 / (1/(t/8227+n/12241+d/22638) + 100)

	output := (pulseOut + tndOut) * 65535
	for _, f := range a.filters {
		output = f.tick(output)
	}

	return int16(clamp(output, -32767, 32767))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
