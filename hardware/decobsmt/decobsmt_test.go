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

package decobsmt_test

import (
	"testing"

	"github.com/shiyutian/tilt/hardware/core"
	"github.com/shiyutian/tilt/hardware/decobsmt"
	"github.com/shiyutian/tilt/hardware/irq"
	"github.com/shiyutian/tilt/test"
)

func testROM() []uint8 {
	d := make([]uint8, 0x10000)
	for i := range d {
		d[i] = uint8(i) ^ uint8(i>>8)
	}
	return d
}

func newTestBoard(t *testing.T) *decobsmt.Board {
	t.Helper()
	b, err := decobsmt.NewBoard(testROM(), nil)
	if err != nil {
		t.Fatal(err)
	}
	b.Mch.Env.Normalise()
	b.Reset()
	return b
}

func TestROMSize(t *testing.T) {
	_, err := decobsmt.NewBoard(make([]uint8, 0x8000), nil)
	test.ExpectedFailure(t, err)
}

func TestROMOverlays(t *testing.T) {
	b := newTestBoard(t)
	rom := testROM()

	// the reset control, data port and register window are write-only: a
	// read sees the ROM underneath
	for _, a := range []uint16{0x2000, 0x2001, 0x3000, 0x6000, 0x6001, 0xa000, 0xa0ff, 0xa100, 0xffff} {
		v, err := b.SoundMem.Read(a)
		test.ExpectedSuccess(t, err)
		test.Equate(t, v, rom[a])
	}

	// work RAM sits below the ROM
	test.ExpectedSuccess(t, b.SoundMem.Write(0x1fff, 0x5a))
	v, err := b.SoundMem.Read(0x1fff)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x5a)
}

func TestChipResetEdge(t *testing.T) {
	b := newTestBoard(t)
	baseline := b.Synth.Resets

	// the register powers up at zero; a first write with bit 7 low is not
	// an edge
	test.ExpectedSuccess(t, b.SoundMem.Write(0x2000, 0x00))
	test.Equate(t, b.Synth.Resets, baseline)

	// the chip is reset exactly once on the falling edge of bit 7
	test.ExpectedSuccess(t, b.SoundMem.Write(0x2000, 0x80))
	test.ExpectedSuccess(t, b.SoundMem.Write(0x2000, 0x00))
	test.Equate(t, b.Synth.Resets, baseline+1)

	// holding the bit low does not reset again
	test.ExpectedSuccess(t, b.SoundMem.Write(0x2000, 0x00))
	test.Equate(t, b.Synth.Resets, baseline+1)

	// a fresh edge does
	test.ExpectedSuccess(t, b.SoundMem.Write(0x2000, 0x80))
	test.ExpectedSuccess(t, b.SoundMem.Write(0x2000, 0x00))
	test.Equate(t, b.Synth.Resets, baseline+2)
}

func TestRegisterWritePair(t *testing.T) {
	b := newTestBoard(t)

	// high byte to the data port, low byte to the register window. the
	// register number is the window offset inverted
	test.ExpectedSuccess(t, b.SoundMem.Write(0x6000, 0x12))
	test.ExpectedSuccess(t, b.SoundMem.Write(0xa000+0x4b, 0x34))

	test.Equate(t, len(b.Synth.Writes), 1)
	test.Equate(t, b.Synth.Writes[0].Reg, uint8(0x4b)^0xff)
	test.Equate(t, int(b.Synth.Writes[0].Data), 0x1234)

	// the latched high byte is reused until replaced
	test.ExpectedSuccess(t, b.SoundMem.Write(0xa000+0x10, 0x56))
	test.Equate(t, len(b.Synth.Writes), 2)
	test.Equate(t, int(b.Synth.Writes[1].Data), 0x1256)
}

func TestStatusRead(t *testing.T) {
	b := newTestBoard(t)

	// the recorder is always ready
	v, err := b.SoundMem.Read(0x2006)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x80)
}

func TestCommsMailbox(t *testing.T) {
	b := newTestBoard(t)

	b.CommsWrite(0xa5)
	v, err := b.SoundMem.Read(0x2002)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xa5)
}

func TestReadyInterrupt(t *testing.T) {
	b := newTestBoard(t)

	// the chip's ready callback asserts the CPU's IRQ line. the level
	// holds so the core sees it on every step
	b.Bridge.SignalReady()
	test.ExpectedSuccess(t, b.Mch.Step())
	test.ExpectedSuccess(t, b.Mch.Step())

	irqs := 0
	for _, i := range b.Sound.Interrupts {
		if i.Line == irq.IRQ {
			irqs++
		}
	}
	test.Equate(t, irqs, 2)

	// a register write clears the line
	test.ExpectedSuccess(t, b.SoundMem.Write(0xa000, 0x00))
	test.ExpectedSuccess(t, b.Mch.Step())

	irqs = 0
	for _, i := range b.Sound.Interrupts {
		if i.Line == irq.IRQ {
			irqs++
		}
	}
	test.Equate(t, irqs, 2)
}

func TestFIRQRate(t *testing.T) {
	b := newTestBoard(t)

	// ten FIRQ periods at 489Hz on a 2MHz clock, plus one step for the
	// last interrupt to be delivered
	test.ExpectedSuccess(t, b.Mch.RunForCycles(41000, nil))
	test.ExpectedSuccess(t, b.Mch.Step())

	firqs := 0
	for _, i := range b.Sound.Interrupts {
		if i.Line == irq.FIRQ {
			firqs++
		}
	}
	test.Equate(t, firqs, 10)
}

func TestResetLine(t *testing.T) {
	b := newTestBoard(t)
	baseline := b.Sound.Resets

	b.Sound.Load([]core.Op{
		{Read: true, Address: 0x3000},
		{Read: true, Address: 0x3001},
	})

	// the core resets once on assertion and stops
	b.SetResetLine(true)
	test.ExpectedSuccess(t, b.Mch.Step())
	test.Equate(t, b.Sound.Resets, baseline+1)
	test.Equate(t, b.Sound.Done(), false)

	test.ExpectedSuccess(t, b.Mch.Step())
	test.Equate(t, b.Sound.Resets, baseline+1)
	test.Equate(t, b.Sound.Done(), false)

	// releasing the line restarts the core
	b.SetResetLine(false)
	test.ExpectedSuccess(t, b.Mch.Step())
	test.Equate(t, b.Sound.Done(), true)
	test.Equate(t, len(b.Sound.ReadValues), 2)
}

func TestSnapshotPlumb(t *testing.T) {
	b := newTestBoard(t)

	test.ExpectedSuccess(t, b.SoundMem.Write(0x0123, 0x77))
	test.ExpectedSuccess(t, b.SoundMem.Write(0x6000, 0x9a))
	b.CommsWrite(0x3c)

	s := b.Snapshot()

	// disturb the board state
	test.ExpectedSuccess(t, b.SoundMem.Write(0x0123, 0x00))
	_, err := b.SoundMem.Read(0x2002)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, b.SoundMem.Write(0xa000, 0x01))

	b.Plumb(s)

	v, err := b.SoundMem.Read(0x0123)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x77)

	v, err = b.SoundMem.Read(0x2002)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x3c)
}
