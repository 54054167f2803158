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

package decobsmt

import (
	"github.com/shiyutian/tilt/hardware/irq"
	"github.com/shiyutian/tilt/hardware/memory"
	"github.com/shiyutian/tilt/hardware/peripherals/bsmt"
)

// State is a snapshot of everything on the board that the CPU can observe.
type State struct {
	bridge *bsmt.Bridge
	lines  *irq.Lines
	firq   *irq.Periodic
	ram    *memory.RAM
}

// Snapshot creates a copy of the board state.
func (b *Board) Snapshot() *State {
	return &State{
		bridge: b.Bridge.Snapshot(),
		lines:  b.Sound.Lines().Snapshot(),
		firq:   b.firq.Snapshot(),
		ram:    b.ram.Snapshot(),
	}
}

// Plumb a previously snapshotted State back into the board.
func (b *Board) Plumb(s *State) {
	b.Bridge.Plumb(s.bridge, b.Synth, b.Sound.Lines())
	b.Sound.Lines().Plumb(s.lines)
	b.firq.Plumb(s.firq, b.Sound.Lines())
	b.ram.Plumb(s.ram)
}
