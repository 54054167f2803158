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

package bsmt_test

import (
	"testing"

	"github.com/shiyutian/tilt/hardware/irq"
	"github.com/shiyutian/tilt/hardware/peripherals/bsmt"
	"github.com/shiyutian/tilt/test"
)

func TestResetEdge(t *testing.T) {
	rec := bsmt.NewRecorder()
	lines := irq.NewLines("sound")
	b := bsmt.NewBridge("bsmt", rec, lines)

	// the register powers up at zero. a first write with bit 7 low is not
	// an edge and must not reset the chip
	test.ExpectedSuccess(t, b.ResetWrite(0, 0x00))
	test.Equate(t, rec.Resets, 0)

	// raising and then dropping bit 7 is a falling edge and produces
	// exactly one reset
	test.ExpectedSuccess(t, b.ResetWrite(0, 0x80))
	test.Equate(t, rec.Resets, 0)

	test.ExpectedSuccess(t, b.ResetWrite(0, 0x00))
	test.Equate(t, rec.Resets, 1)

	// repeated writes with the bit low do not reset again
	test.ExpectedSuccess(t, b.ResetWrite(0, 0x00))
	test.ExpectedSuccess(t, b.ResetWrite(0, 0x7f))
	test.Equate(t, rec.Resets, 1)

	// releasing and dropping the bit again is a second edge
	test.ExpectedSuccess(t, b.ResetWrite(0, 0x80))
	test.ExpectedSuccess(t, b.ResetWrite(0, 0x00))
	test.Equate(t, rec.Resets, 2)

	// the other bits of the register do not matter
	test.ExpectedSuccess(t, b.ResetWrite(0, 0xff))
	test.ExpectedSuccess(t, b.ResetWrite(0, 0x55))
	test.Equate(t, rec.Resets, 3)
}

func TestRegisterWritePair(t *testing.T) {
	rec := bsmt.NewRecorder()
	lines := irq.NewLines("sound")
	b := bsmt.NewBridge("bsmt", rec, lines)

	// high byte to the data port, low byte to the register window. the
	// register number is the window offset with all bits inverted
	test.ExpectedSuccess(t, b.DataWrite(0, 0x12))
	test.ExpectedSuccess(t, b.RegWrite(0x00, 0x34))

	test.Equate(t, len(rec.Writes), 1)
	test.Equate(t, rec.Writes[0].Reg, 0xff)
	test.Equate(t, rec.Writes[0].Data, uint16(0x1234))

	// the data latch holds its value across register writes
	test.ExpectedSuccess(t, b.RegWrite(0x6d, 0x56))
	test.Equate(t, rec.Writes[1].Reg, 0x92)
	test.Equate(t, rec.Writes[1].Data, uint16(0x1256))
}

func TestReadyInterrupt(t *testing.T) {
	rec := bsmt.NewRecorder()
	lines := irq.NewLines("sound")
	b := bsmt.NewBridge("bsmt", rec, lines)

	b.SignalReady()
	lines.Latch()
	test.Equate(t, lines.IsAsserted(irq.IRQ), true)

	// a register write marks the chip busy and clears the interrupt
	test.ExpectedSuccess(t, b.RegWrite(0x00, 0x00))
	lines.Latch()
	test.Equate(t, lines.IsAsserted(irq.IRQ), false)
}

func TestStatus(t *testing.T) {
	rec := bsmt.NewRecorder()
	lines := irq.NewLines("sound")
	b := bsmt.NewBridge("bsmt", rec, lines)

	// the recorder is always ready. readiness appears in bit 7
	v, err := b.StatusRead(0)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x80)
}

func TestComms(t *testing.T) {
	rec := bsmt.NewRecorder()
	lines := irq.NewLines("sound")
	b := bsmt.NewBridge("bsmt", rec, lines)

	b.CommsWrite(0x3e)
	test.Equate(t, b.Comms.Pending(), true)

	v, err := b.CommsRead(0)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x3e)
	test.Equate(t, b.Comms.Pending(), false)
}
