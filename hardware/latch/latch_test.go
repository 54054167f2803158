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

package latch_test

import (
	"testing"

	"github.com/shiyutian/tilt/hardware/latch"
	"github.com/shiyutian/tilt/test"
)

func TestReadAcknowledges(t *testing.T) {
	l := latch.NewLatch("sound")

	test.Equate(t, l.Pending(), false)

	l.Write(0xab)
	test.Equate(t, l.Pending(), true)

	// Pending() has no side effects
	test.Equate(t, l.Pending(), true)

	test.Equate(t, l.Read(), 0xab)
	test.Equate(t, l.Pending(), false)

	// value survives the acknowledge
	test.Equate(t, l.Read(), 0xab)
}

func TestSeparateAcknowledge(t *testing.T) {
	l := latch.NewLatch("command").SeparateAck()

	l.Write(0x5a)
	test.Equate(t, l.Read(), 0x5a)

	// read does not clear pending in this mode
	test.Equate(t, l.Pending(), true)

	l.Acknowledge()
	test.Equate(t, l.Pending(), false)
	test.Equate(t, l.Read(), 0x5a)
}

func TestPendingCallback(t *testing.T) {
	raised := 0
	lowered := 0

	l := latch.NewLatch("sound").OnPending(func(pending bool) {
		if pending {
			raised++
		} else {
			lowered++
		}
	})

	l.Write(0x01)
	test.Equate(t, raised, 1)

	// a second write with the flag already raised does not retrigger the
	// callback
	l.Write(0x02)
	test.Equate(t, raised, 1)

	_ = l.Read()
	test.Equate(t, lowered, 1)

	// acknowledging an idle latch does nothing
	l.Acknowledge()
	test.Equate(t, lowered, 1)
}

func TestSnapshot(t *testing.T) {
	l := latch.NewLatch("command").SeparateAck()
	l.Write(0x77)

	s := l.Snapshot()

	l.Acknowledge()
	l.Write(0x00)

	l.Plumb(s, nil)
	test.Equate(t, l.Read(), 0x77)
	test.Equate(t, l.Pending(), true)
}
