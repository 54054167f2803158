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

package djboy

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
// monitor.
func (b *Board) Status() string {
	s := strings.Builder{}
	s.WriteString(b.Mch.String())
	s.WriteString(fmt.Sprintf("\nscanline %d", b.scanline.Scanline()))
	s.WriteString(fmt.Sprintf("\n%s", b.masterBank.String()))
	s.WriteString(fmt.Sprintf("\n%s", b.slaveBank.String()))
	s.WriteString(fmt.Sprintf("\n%s", b.soundBank.String()))
	s.WriteString(fmt.Sprintf("\n%s", b.soundLatch.String()))
	s.WriteString(fmt.Sprintf("\nvideo %02x scroll %02x,%02x", b.videoReg, b.scrollX, b.scrollY))
	s.WriteString(fmt.Sprintf("\ncoins %d,%d", b.CoinCounters[0], b.CoinCounters[1]))
	return s.String()
}
