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

// Package core defines the interface between a board and its processor
// cores. Instruction-level CPU emulation is out of scope for this project:
// a core is anything that can be stepped over its own address map and that
// accepts interrupts. The Scripted implementation in this package drives a
// board with a predetermined sequence of bus operations, which is all the
// board plumbing ever sees of a real program.
package core

import (
	"github.com/shiyutian/tilt/curated"
	"github.com/shiyutian/tilt/hardware/bus"
	"github.com/shiyutian/tilt/hardware/irq"
)

// Core is a processor core attached to a board.
type Core interface {
	Label() string

	// Reset returns the core to its power-on state. Called by the machine
	// on machine reset and on assertion of the core's RESET line.
	Reset()

	// Step advances the core by the given number of cycles. A core must not
	// run past the cycle allowance.
	Step(cycles int) error

	// Lines returns the interrupt inputs of the core. Producers stage
	// changes here; the machine latches them between time slices.
	Lines() *irq.Lines
}

// sentinal error messages
const (
	// ScriptError is returned when a scripted bus operation fails.
	ScriptError = "core: %s: op %d: %v"
)

// Op is a single scripted bus operation.
type Op struct {
	// a read op discards nothing: the value read is recorded by the core
	Read    bool
	Address uint16

	// data to write. ignored for read ops
	Data uint8

	// the op targets the core's I/O map rather than its memory map.
	// meaningful only for cores with a separate I/O space (Z80 IN/OUT)
	IO bool
}

// Interrupt records a delivery observed by a Scripted core.
type Interrupt struct {
	Line   irq.Line
	Signal irq.Signal
}

// Scripted is a Core that executes a fixed list of bus operations, one
// per cycle, against its address map. It records every value read and every
// interrupt delivered, for examination by tests and by the monitor.
type Scripted struct {
	label string
	mem   bus.CoreBus
	io    bus.CoreBus
	lines *irq.Lines

	script []Op
	pos    int

	// values returned by read ops, in script order
	ReadValues []uint8

	// interrupts observed at step boundaries, in delivery order
	Interrupts []Interrupt

	// number of times Reset() has been called
	Resets int
}

// NewScripted is the preferred method of initialisation for the Scripted
// type.
func NewScripted(label string, mem bus.CoreBus) *Scripted {
	return &Scripted{
		label: label,
		mem:   mem,
		lines: irq.NewLines(label),
	}
}

// SetIOMap gives the core a separate I/O address space. Ops with the IO
// flag set are routed there.
func (c *Scripted) SetIOMap(io bus.CoreBus) {
	c.io = io
}

// Label implements the Core interface.
func (c *Scripted) Label() string {
	return c.label
}

// Lines implements the Core interface.
func (c *Scripted) Lines() *irq.Lines {
	return c.lines
}

// Reset implements the Core interface. The script rewinds to the beginning
// and recorded reads and interrupts are discarded.
func (c *Scripted) Reset() {
	c.pos = 0
	c.ReadValues = c.ReadValues[:0]
	c.Interrupts = c.Interrupts[:0]
	c.Resets++
}

// Load replaces the script. The script position rewinds to the beginning.
func (c *Scripted) Load(script []Op) {
	c.script = script
	c.pos = 0
}

// Done returns true once every scripted operation has run.
func (c *Scripted) Done() bool {
	return c.pos >= len(c.script)
}

// Step implements the Core interface. Interrupt lines are sampled once at
// the start of the step; each scripted operation then takes one cycle.
func (c *Scripted) Step(cycles int) error {
	for _, l := range []irq.Line{irq.IRQ, irq.FIRQ, irq.NMI} {
		sig := c.lines.Signal(l)
		if sig.State != irq.Clear {
			c.Interrupts = append(c.Interrupts, Interrupt{Line: l, Signal: sig})
			c.lines.Ack(l)
		}
	}

	for i := 0; i < cycles && c.pos < len(c.script); i++ {
		op := c.script[c.pos]

		m := c.mem
		if op.IO {
			if c.io == nil {
				return curated.Errorf(ScriptError, c.label, c.pos, "core has no I/O map")
			}
			m = c.io
		}

		if op.Read {
			v, err := m.Read(op.Address)
			if err != nil {
				return curated.Errorf(ScriptError, c.label, c.pos, err)
			}
			c.ReadValues = append(c.ReadValues, v)
		} else {
			if err := m.Write(op.Address, op.Data); err != nil {
				return curated.Errorf(ScriptError, c.label, c.pos, err)
			}
		}
		c.pos++
	}

	return nil
}
