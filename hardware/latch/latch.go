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

// Package latch implements the one-byte mailbox used for signalling between
// cores. One core writes a value to the latch and the pending flag is
// raised; the other core reads the value and the flag is lowered. The
// pending flag commonly drives an interrupt line on the consuming core.
//
// In the default mode a read of the latch also acknowledges it. Some
// hardware decouples the two: the consumer reads the value freely and
// acknowledges with a separate strobe. The SeparateAck() option selects
// this behaviour, in which case only Acknowledge() lowers the pending flag.
//
// There is no locking. The host scheduler guarantees that only one core
// executes at a time.
package latch

import "fmt"

// PendingCallback is called whenever the pending flag changes state. The
// usual implementation stages an interrupt line on the consuming core.
type PendingCallback func(pending bool)

// Latch is a one-byte mailbox connecting a producing core to a consuming
// core.
type Latch struct {
	label string

	// a read does not clear the pending flag; only an explicit
	// acknowledge does
	separateAck bool

	onPending PendingCallback

	value   uint8
	pending bool
}

// NewLatch is the preferred method of initialisation for the Latch type.
func NewLatch(label string) *Latch {
	return &Latch{
		label: label,
	}
}

// SeparateAck decouples acknowledgement from reading. With this option a
// Read() leaves the pending flag raised and only Acknowledge() lowers it.
// Returns the Latch so the option can be chained at creation.
func (l *Latch) SeparateAck() *Latch {
	l.separateAck = true
	return l
}

// OnPending attaches a callback that is invoked whenever the pending flag
// changes state. Returns the Latch so the option can be chained at creation.
func (l *Latch) OnPending(f PendingCallback) *Latch {
	l.onPending = f
	return l
}

func (l *Latch) String() string {
	return fmt.Sprintf("%s: value=%#02x pending=%v", l.label, l.value, l.pending)
}

// Label returns the name given to the latch at creation.
func (l *Latch) Label() string {
	return l.label
}

// Write stores a value in the latch and raises the pending flag.
func (l *Latch) Write(data uint8) {
	l.value = data
	if !l.pending {
		l.pending = true
		if l.onPending != nil {
			l.onPending(true)
		}
	}
}

// Read returns the stored value. Unless the latch was created with the
// SeparateAck() option, reading also lowers the pending flag.
func (l *Latch) Read() uint8 {
	if !l.separateAck {
		l.ack()
	}
	return l.value
}

// Acknowledge lowers the pending flag without touching the stored value.
func (l *Latch) Acknowledge() {
	l.ack()
}

// Pending returns the current state of the pending flag. No side effects.
func (l *Latch) Pending() bool {
	return l.pending
}

func (l *Latch) ack() {
	if l.pending {
		l.pending = false
		if l.onPending != nil {
			l.onPending(false)
		}
	}
}

// Reset returns the latch to its power-on state. The pending callback is
// invoked if the flag was raised at the time.
func (l *Latch) Reset() {
	l.value = 0x00
	l.ack()
}

// Snapshot creates a copy of the Latch instance.
func (l *Latch) Snapshot() *Latch {
	cp := *l
	return &cp
}

// Plumb a previously snapshotted Latch, reattaching the pending callback.
// The callback is not invoked during plumbing.
func (l *Latch) Plumb(s *Latch, f PendingCallback) {
	*l = *s
	l.onPending = f
}
