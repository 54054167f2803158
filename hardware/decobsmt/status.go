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
	"fmt"
	"strings"
)

// Label returns the name of the board.
func (b *Board) Label() string {
	return b.Mch.Label()
}

// Step advances the board by one scheduling quantum.
func (b *Board) Step() error {
	return b.Mch.Step()
}

// Status returns a multi-line description of the board state, for the
// monitor. The last few register writes received by the chip are listed
// most recent first.
func (b *Board) Status() string {
	s := strings.Builder{}
	s.WriteString(b.Mch.String())
	s.WriteString(fmt.Sprintf("\n%s", b.Bridge.Comms.String()))
	s.WriteString(fmt.Sprintf("\nchip resets %d, writes %d", b.Synth.Resets, len(b.Synth.Writes)))

	n := len(b.Synth.Writes)
	for i := n - 1; i >= 0 && i >= n-8; i-- {
		s.WriteString(fmt.Sprintf("\n   %s", b.Synth.Writes[i].String()))
	}

	return s.String()
}
