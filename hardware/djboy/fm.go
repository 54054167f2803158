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

// The YM2203 FM chip as the sound CPU sees it: an address port and a data
// port. Synthesis is out of scope so the chip is reduced to its register
// file; the status read reports the chip as never busy and with no timer
// flags raised.
type fm struct {
	addr uint8
	regs [256]uint8
}

func newFM() *fm {
	return &fm{}
}

func (f *fm) read(address uint16) (uint8, error) {
	if address == 0 {
		return 0x00, nil
	}
	return f.regs[f.addr], nil
}

func (f *fm) write(address uint16, data uint8) error {
	if address == 0 {
		f.addr = data
		return nil
	}
	f.regs[f.addr] = data
	return nil
}

func (f *fm) reset() {
	f.addr = 0
	f.regs = [256]uint8{}
}
