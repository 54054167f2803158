// This file is part of Tilt.
//
// Tilt is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Tilt is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Tilt.  If not, see <https://www.gnu.org/licenses/>.

// Package bsmt implements the register bridge between a sound CPU and the
// BSMT2000 sample playback chip, as found on the Data East and Stern
// pinball sound boards.
//
// The chip sits behind three register groups in the CPU's address space: a
// reset control register with an edge-detected reset bit; a data port that
// latches the high byte of the next 16-bit register value; and a register
// window where a write of the low byte commits the combined value to the
// chip. The register number is the window offset with all bits inverted.
package bsmt

import (
	"github.com/shiyutian/tilt/hardware/edge"
	"github.com/shiyutian/tilt/hardware/irq"
	"github.com/shiyutian/tilt/hardware/latch"
)

// Synth is the sample playback chip attached to the bridge. The real chip
// is a masked TMS32015 DSP; for the purposes of the board plumbing it only
// needs to accept register writes and report readiness.
type Synth interface {
	WriteReg(reg uint8, data uint16)
	Reset()
	Ready() bool
}

// Bridge connects a sound CPU to a Synth.
type Bridge struct {
	label string
	synth Synth

	// interrupt inputs of the CPU hosting the bridge
	lines *irq.Lines

	// previous value of the reset control register. the chip is reset on
	// the falling edge of bit 7. the register powers up at zero so the
	// first write with the bit low is not an edge
	resetReg edge.Register

	// high byte of the next 16-bit register write
	dataLatch uint8

	// Comms is the mailbox the host machine writes sound commands to
	Comms *latch.Latch
}

// NewBridge is the preferred method of initialisation for the Bridge type.
// The lines argument is the interrupt inputs of the CPU the bridge
// interrupts.
func NewBridge(label string, synth Synth, lines *irq.Lines) *Bridge {
	b := &Bridge{
		label:    label,
		synth:    synth,
		lines:    lines,
		resetReg: edge.NewRegister(0x00),
	}

	b.Comms = latch.NewLatch(label + " comms")

	return b
}

// Label returns the name given to the bridge on creation.
func (b *Bridge) Label() string {
	return b.label
}

// SignalReady is the chip's ready callback. The CPU's IRQ line is asserted
// until the next register write.
func (b *Bridge) SignalReady() {
	b.lines.Set(irq.IRQ, irq.Assert)
}

// ResetWrite is the handler for the reset control register. The chip is
// reset exactly once on the falling edge of bit 7. Further writes with the
// bit low are not edges and are ignored.
func (b *Bridge) ResetWrite(_ uint16, data uint8) error {
	b.resetReg.Tick(data)

	if b.resetReg.Bit(7).Falling() {
		b.synth.Reset()
	}

	return nil
}

// DataWrite is the handler for the data port. The value is latched as the
// high byte of the next register write.
func (b *Bridge) DataWrite(_ uint16, data uint8) error {
	b.dataLatch = data
	return nil
}

// RegWrite is the handler for the register window. The window offset gives
// the register number with all bits inverted. The write commits the latched
// high byte and this low byte to the chip. The chip is busy until it
// signals ready again, so the CPU's IRQ line is cleared.
func (b *Bridge) RegWrite(offset uint16, data uint8) error {
	b.synth.WriteReg(uint8(offset)^0xff, uint16(b.dataLatch)<<8|uint16(data))
	b.lines.Set(irq.IRQ, irq.Clear)
	return nil
}

// StatusRead is the handler for the status register. The chip's readiness
// appears in bit 7; the remaining bits are unused and read as zero.
func (b *Bridge) StatusRead(_ uint16) (uint8, error) {
	if b.synth.Ready() {
		return 0x80, nil
	}
	return 0x00, nil
}

// CommsRead is the handler for the sound command register.
func (b *Bridge) CommsRead(_ uint16) (uint8, error) {
	return b.Comms.Read(), nil
}

// CommsWrite is called by the host machine to deliver a sound command.
func (b *Bridge) CommsWrite(data uint8) {
	b.Comms.Write(data)
}

// Reset returns the bridge to its power-on state. The attached chip is not
// reset; only the board reset line or the reset control register do that.
func (b *Bridge) Reset() {
	b.resetReg = edge.NewRegister(0x00)
	b.dataLatch = 0
	b.Comms.Reset()
}

// Snapshot creates a copy of the Bridge instance.
func (b *Bridge) Snapshot() *Bridge {
	cp := *b
	cp.resetReg = b.resetReg.Snapshot()
	cp.Comms = b.Comms.Snapshot()
	return &cp
}

// Plumb a previously snapshotted Bridge back into the emulation.
func (b *Bridge) Plumb(s *Bridge, synth Synth, lines *irq.Lines) {
	b.synth = synth
	b.lines = lines
	b.resetReg = s.resetReg
	b.dataLatch = s.dataLatch
	b.Comms.Plumb(s.Comms, nil)
}
