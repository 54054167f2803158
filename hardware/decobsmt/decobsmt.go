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

// Package decobsmt defines the Data East/Sega/Stern pinball sound board: a
// 6809-class core, the BSMT2000 sample chip behind its register bridge, and
// a command mailbox written by the host pinball machine.
//
// The board's ROM occupies the whole address space above the work RAM, with
// the chip's registers overlaid on a handful of addresses: reads of those
// addresses see the device, or the ROM, exactly as the address decoder
// resolves them on the real board.
package decobsmt

import (
	"github.com/shiyutian/tilt/curated"
	"github.com/shiyutian/tilt/hardware"
	"github.com/shiyutian/tilt/hardware/peripherals/bsmt"
	"github.com/shiyutian/tilt/hardware/core"
	"github.com/shiyutian/tilt/hardware/irq"
	"github.com/shiyutian/tilt/hardware/memory"
	"github.com/shiyutian/tilt/hardware/preferences"
)

// ClockHz is the clock rate of the sound CPU: 24MHz/12 for the 68B09E.
const ClockHz = 2000000

// the FIRQ rate as measured on a real machine
const firqHz = 489

// sentinal error messages
const (
	// SetupError is returned when the board cannot be built.
	SetupError = "decobsmt: %v"
)

// Board is the pinball sound board.
type Board struct {
	Mch *hardware.Machine

	Sound    *core.Scripted
	SoundMem *memory.Map

	// the register bridge between the sound CPU and the sample chip
	Bridge *bsmt.Bridge

	// the chip itself, recording the register stream
	Synth *bsmt.Recorder

	firq *irq.Periodic
	ram  *memory.RAM
}

// NewBoard is the preferred method of initialisation for the Board type.
// The rom argument is the sound CPU region, 0x10000 bytes; the first
// 0x2000 are unused by the CPU, which sees RAM there.
func NewBoard(rom []uint8, prefs *preferences.Preferences) (*Board, error) {
	if len(rom) != 0x10000 {
		return nil, curated.Errorf(SetupError,
			curated.Errorf("sound region is %#x bytes, expected %#x", len(rom), 0x10000))
	}

	b := &Board{}

	var err error

	b.Mch, err = hardware.NewMachine("decobsmt", prefs)
	if err != nil {
		return nil, curated.Errorf(SetupError, err)
	}
	env := b.Mch.Env

	b.SoundMem = memory.NewMap(env, "sound", 0xff)
	b.Sound = core.NewScripted("sound", b.SoundMem)
	b.Mch.AddCore(b.Sound)

	b.Synth = bsmt.NewRecorder()
	b.Bridge = bsmt.NewBridge("bsmt", b.Synth, b.Sound.Lines())

	b.firq, err = irq.NewPeriodic(b.Sound.Lines(), irq.FIRQ, irq.Hold, ClockHz, firqHz)
	if err != nil {
		return nil, curated.Errorf(SetupError, err)
	}
	b.Mch.AddTicker(b.firq)

	b.ram = memory.NewRAM(env, "work ram", 0x2000)

	// the ROM read under each register overlay
	romRead := func(base uint16) memory.ReadHandler {
		return func(address uint16) (uint8, error) {
			return rom[base+address], nil
		}
	}

	type area struct {
		label  string
		origin uint16
		memtop uint16
		h      memory.Handlers
	}

	areas := []area{
		{"ram", 0x0000, 0x1fff, b.ram.Handlers()},

		// register overlays. addresses not claimed by a device register
		// read and write as ROM
		{"chip reset", 0x2000, 0x2001, memory.Handlers{Read: romRead(0x2000), Write: b.Bridge.ResetWrite}},
		{"comms", 0x2002, 0x2003, memory.Handlers{Read: b.Bridge.CommsRead}},
		{"rom 2004", 0x2004, 0x2005, memory.Handlers{Read: romRead(0x2004)}},
		{"chip status", 0x2006, 0x2007, memory.Handlers{Read: b.Bridge.StatusRead}},
		{"rom 2008", 0x2008, 0x5fff, memory.Handlers{Read: romRead(0x2008)}},
		{"chip data", 0x6000, 0x6000, memory.Handlers{Read: romRead(0x6000), Write: b.Bridge.DataWrite}},
		{"rom 6001", 0x6001, 0x9fff, memory.Handlers{Read: romRead(0x6001)}},
		{"chip registers", 0xa000, 0xa0ff, memory.Handlers{Read: romRead(0xa000), Write: b.Bridge.RegWrite}},
		{"rom a100", 0xa100, 0xffff, memory.Handlers{Read: romRead(0xa100)}},
	}

	for _, a := range areas {
		if err := b.SoundMem.AddArea(a.label, a.origin, a.memtop, a.h); err != nil {
			return nil, curated.Errorf(SetupError, err)
		}
	}

	b.Mch.AddResetter(func() {
		b.Bridge.Reset()
		b.Synth.Reset()
		b.firq.Reset()
		b.ram.Reset()
	})

	return b, nil
}

// Reset the board and everything attached to it.
func (b *Board) Reset() {
	b.Mch.Reset()
}

// CommsWrite delivers a sound command from the host pinball machine.
func (b *Board) CommsWrite(data uint8) {
	b.Bridge.CommsWrite(data)
}

// SetResetLine drives the sound CPU's RESET input from the host machine.
// The core stops on assertion and restarts from power-on when the line
// clears.
func (b *Board) SetResetLine(asserted bool) {
	if asserted {
		b.Sound.Lines().Set(irq.Reset, irq.Assert)
	} else {
		b.Sound.Lines().Set(irq.Reset, irq.Clear)
	}
}
