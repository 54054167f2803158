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

// Package edge detects transitions on register bits. Every peripheral bridge
// in this repository uses the same idiom: keep the previous value of the
// register, XOR it with the new value to find the changed bits, and act only
// on specific transitions of specific bits.
package edge

// Trace records the state of a single line, whether it is high or low, and
// also whether the immediately previous state was high or low.
//
// Moving from one state to the other is done with Tick(bool) where a boolean
// value of true indicates a high state.
//
// The function Falling() returns true if the line has moved from a high
// state to a low state; and Rising() returns true if the opposite is true.
//
// Deriving conditions from two traces is convenient. For example, given two
// traces A and B, a condition for event E might be:
//
//	if A.Hi() && B.Rising() {
//		E()
//	}
type Trace struct {
	from bool
	to   bool
}

// NewTrace is the preferred method of initialisation for the Trace type. The
// hi argument gives the initial state of the line.
func NewTrace(hi bool) Trace {
	return Trace{
		from: hi,
		to:   hi,
	}
}

// Tick moves the line to a new state.
func (tr *Trace) Tick(v bool) {
	tr.from = tr.to
	tr.to = v
}

// Changed returns true if the most recent Tick() changed the line state.
func (tr *Trace) Changed() bool {
	return tr.from != tr.to
}

// Falling returns true if the most recent Tick() moved the line from high
// to low.
func (tr *Trace) Falling() bool {
	return tr.from && !tr.to
}

// Rising returns true if the most recent Tick() moved the line from low to
// high.
func (tr *Trace) Rising() bool {
	return !tr.from && tr.to
}

// Hi returns true if the line is currently in the high state.
func (tr *Trace) Hi() bool {
	return tr.to
}

// Lo returns true if the line is currently in the low state.
func (tr *Trace) Lo() bool {
	return !tr.to
}

// Snapshot creates a copy of the Trace instance.
func (tr *Trace) Snapshot() Trace {
	return *tr
}

// Register tracks an 8-bit register, one Trace per bit. Useful for bridges
// that edge-detect more than one bit of the same register.
type Register struct {
	value uint8
	bits  [8]Trace
}

// NewRegister is the preferred method of initialisation for the Register
// type. The value argument gives the initial state of all eight bits.
func NewRegister(value uint8) Register {
	reg := Register{value: value}
	for i := range reg.bits {
		reg.bits[i] = NewTrace(value&(0x01<<i) != 0x00)
	}
	return reg
}

// Tick moves the register to a new value, ticking the trace of every bit.
func (reg *Register) Tick(value uint8) {
	reg.value = value
	for i := range reg.bits {
		reg.bits[i].Tick(value&(0x01<<i) != 0x00)
	}
}

// Value returns the current value of the register.
func (reg *Register) Value() uint8 {
	return reg.value
}

// Bit returns the trace of the numbered bit. Bit 0 is the least significant.
func (reg *Register) Bit(bit int) *Trace {
	return &reg.bits[bit]
}

// Snapshot creates a copy of the Register instance.
func (reg *Register) Snapshot() Register {
	return *reg
}
