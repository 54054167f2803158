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

// Package irq models the interrupt input lines of a processor core.
//
// A line change made by one core during its time slice must not be seen by
// the target core until the target is next scheduled. The Lines type
// therefore has two halves: a staged half that producers write to with the
// Set() functions; and a live half that the owning core reads with the
// Signal() function. The machine moves the staged half to the live half with
// the Latch() function, at the boundary between time slices.
package irq

import (
	"fmt"
	"strings"
)

// Line identifies one interrupt input of a core. Not every core wires every
// line.
type Line int

// List of valid Line values.
const (
	IRQ Line = iota
	FIRQ
	NMI
	Reset
	NumLines
)

func (l Line) String() string {
	switch l {
	case IRQ:
		return "IRQ"
	case FIRQ:
		return "FIRQ"
	case NMI:
		return "NMI"
	case Reset:
		return "RESET"
	}
	panic("unknown interrupt line")
}

// State of an interrupt line.
type State int

// List of valid State values.
//
// Clear and Assert are level states: the line stays in that state until the
// producer changes it. Pulse asserts the line for a single observation.
// Hold asserts the line until the owning core acknowledges it with Ack().
const (
	Clear State = iota
	Assert
	Pulse
	Hold
)

func (s State) String() string {
	switch s {
	case Clear:
		return "clear"
	case Assert:
		return "assert"
	case Pulse:
		return "pulse"
	case Hold:
		return "hold"
	}
	panic("unknown line state")
}

// Signal is the condition of a single line as seen by the owning core.
type Signal struct {
	State State

	// Vector is the data bus value supplied alongside the interrupt. only
	// meaningful for cores that read a vector from the bus (eg. Z80 in
	// interrupt mode 2). zero otherwise.
	Vector uint8
}

// Lines is the set of interrupt inputs for a single core.
//
// No locking. the host scheduler guarantees that only one core (or the
// machine itself) is touching a Lines instance at any one time.
type Lines struct {
	label string

	staged [NumLines]Signal
	dirty  [NumLines]bool
	live   [NumLines]Signal
}

// NewLines is the preferred method of initialisation for the Lines type.
func NewLines(label string) *Lines {
	return &Lines{
		label: label,
	}
}

func (ls *Lines) String() string {
	s := strings.Builder{}
	s.WriteString(ls.label)
	for l := Line(0); l < NumLines; l++ {
		if ls.live[l].State != Clear {
			s.WriteString(fmt.Sprintf(" %s=%s", l, ls.live[l].State))
		}
	}
	return s.String()
}

// Label returns the name given to the Lines instance at creation.
func (ls *Lines) Label() string {
	return ls.label
}

// Set stages a new state for the line. The owning core will observe the
// change after the next Latch().
func (ls *Lines) Set(line Line, state State) {
	ls.SetWithVector(line, state, 0)
}

// SetWithVector is like Set() but also supplies the data bus value that
// accompanies the interrupt.
func (ls *Lines) SetWithVector(line Line, state State, vector uint8) {
	ls.staged[line] = Signal{State: state, Vector: vector}
	ls.dirty[line] = true
}

// Latch moves staged line changes to the live half of the Lines instance.
// Called by the machine at the boundary between core time slices.
func (ls *Lines) Latch() {
	for l := Line(0); l < NumLines; l++ {
		if ls.dirty[l] {
			ls.live[l] = ls.staged[l]
			ls.dirty[l] = false
		}
	}
}

// Signal returns the live condition of the line. A Pulse state is consumed
// by the call: the next Signal() of the line returns Clear.
func (ls *Lines) Signal(line Line) Signal {
	sig := ls.live[line]
	if sig.State == Pulse {
		ls.live[line].State = Clear
	}
	return sig
}

// Ack acknowledges a line in the Hold state, returning it to Clear. Lines in
// any other state are unaffected.
func (ls *Lines) Ack(line Line) {
	if ls.live[line].State == Hold {
		ls.live[line].State = Clear
	}
}

// IsAsserted returns true if the live state of the line is anything other
// than Clear. Does not consume a Pulse.
func (ls *Lines) IsAsserted(line Line) bool {
	return ls.live[line].State != Clear
}

// Snapshot creates a copy of the Lines instance.
func (ls *Lines) Snapshot() *Lines {
	cp := *ls
	return &cp
}

// Plumb a previously snapshotted Lines instance back into the core.
func (ls *Lines) Plumb(s *Lines) {
	*ls = *s
}
