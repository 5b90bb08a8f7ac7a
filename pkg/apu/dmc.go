package apu

import (
	"github.com/famicore/pkg/cartridge"
	"github.com/famicore/pkg/logger"
)

// dmcPeriods indexes the output-shift clock divider
var dmcPeriods = [16]uint8{
	214, 190, 170, 160, 143, 127, 113, 107, 95, 80, 71, 64, 53, 42, 36, 27,
}

// DMCChannel plays delta-modulated samples streamed from PRG space. Sample
// fetches go through the cartridge and charge CPU stall cycles that the
// console drains after the current instruction.
type DMCChannel struct {
	cart *cartridge.Cartridge

	IRQEnabled bool
	IRQFlag    bool

	enabled bool
	output  uint8

	sampleAddress  uint16
	sampleLength   uint16
	currentAddress uint16
	currentLength  uint16

	shiftRegister uint8
	bitCount      uint8
	period        uint8
	counter       uint8
	looping       bool

	cpuStallCycles int
}

// NewDMCChannel creates a silent DMC channel
func NewDMCChannel() *DMCChannel {
	return &DMCChannel{}
}

// SetCartridge attaches the cartridge sample fetches read from
func (d *DMCChannel) SetCartridge(cart *cartridge.Cartridge) {
	d.cart = cart
}

// ResetCPUStallCycles drains and clears the accumulated stall cycles
func (d *DMCChannel) ResetCPUStallCycles() int {
	c := d.cpuStallCycles
	d.cpuStallCycles = 0
	return c
}

// Sample is the current 7-bit DAC level
func (d *DMCChannel) Sample() uint8 {
	return d.output
}

// WriteRegister handles $4010-$4013
func (d *DMCChannel) WriteRegister(addr uint16, value uint8) {
	switch addr {
	case 0x4010:
		d.IRQEnabled = value&0x80 != 0
		if !d.IRQEnabled {
			d.IRQFlag = false
		}
		d.looping = value&0x40 != 0
		d.period = dmcPeriods[value&0x0F]
	case 0x4011:
		d.output = value & 0x7F
	case 0x4012:
		d.sampleAddress = 0xC000 + uint16(value)*64
	case 0x4013:
		d.sampleLength = 1 + uint16(value)*16
	}
}

// SetEnabled starts or stops playback via $4015
func (d *DMCChannel) SetEnabled(v bool) {
	d.IRQFlag = false
	d.enabled = v

	if !v {
		d.currentLength = 0
	} else if d.currentLength == 0 {
		d.restart()
	}
}

func (d *DMCChannel) restart() {
	d.currentAddress = d.sampleAddress
	d.currentLength = d.sampleLength
}

// TickSequencer runs the fetch and output units; called every other CPU cycle
func (d *DMCChannel) TickSequencer() {
	if !d.enabled {
		return
	}
	d.tickRead()
	d.tickShift()
}

// tickRead refills the shift register from PRG space. Each fetch steals four
// CPU cycles. The address wraps $FFFF back to $8000.
func (d *DMCChannel) tickRead() {
	if d.currentLength == 0 || d.bitCount != 0 {
		return
	}

	d.cpuStallCycles += 4
	if d.cart != nil {
		d.shiftRegister = d.cart.ReadPRG(d.currentAddress)
	} else {
		d.shiftRegister = 0
	}
	d.bitCount = 8

	d.currentAddress++
	if d.currentAddress == 0 {
		d.currentAddress = 0x8000
	}

	d.currentLength--
	if d.currentLength == 0 {
		if d.looping {
			d.restart()
		} else if d.IRQEnabled {
			d.IRQFlag = true
			logger.LogAPU("dmc sample finished, IRQ raised")
		}
	}
}

// tickShift steps the DAC +-2, saturating at 0 and 127
func (d *DMCChannel) tickShift() {
	if d.counter > 0 {
		d.counter--
		return
	}
	d.counter = d.period - 1

	if d.bitCount == 0 {
		return
	}
	if d.shiftRegister&1 == 1 {
		if d.output <= 125 {
			d.output += 2
		}
	} else if d.output >= 2 {
		d.output -= 2
	}
	d.shiftRegister >>= 1
	d.bitCount--
}

// Playing reports whether sample bytes remain, for $4015 reads
func (d *DMCChannel) Playing() bool {
	return d.currentLength > 0
}
