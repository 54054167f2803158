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

package memory

import (
	"fmt"
)

// ROM is a read-only storage area, a view onto part of a ROM region. Writes
// to a ROM area are not decoded: the map treats them as unmapped and drops
// them.
type ROM struct {
	label string
	data  []uint8
}

// NewROM is the preferred method of initialisation for the ROM type. The
// data slice is referenced, not copied.
func NewROM(label string, data []uint8) *ROM {
	return &ROM{
		label: label,
		data:  data,
	}
}

func (r *ROM) String() string {
	return fmt.Sprintf("%s: %#x bytes (read only)", r.label, len(r.data))
}

// Label returns the name given to the ROM at creation.
func (r *ROM) Label() string {
	return r.label
}

// Handlers returns the handler set to bind the ROM into an address map.
// There is no write or poke handler.
func (r *ROM) Handlers() Handlers {
	return Handlers{
		Read: r.read,
		Peek: r.read,
	}
}

func (r *ROM) read(address uint16) (uint8, error) {
	return r.data[address], nil
}

// Attach the ROM to an address map. The range length must equal the data
// length.
func (r *ROM) Attach(m *Map, origin uint16, memtop uint16) error {
	if int(memtop)-int(origin)+1 != len(r.data) {
		return fmt.Errorf("memory: %s: range %#04x to %#04x does not match size %#x", r.label, origin, memtop, len(r.data))
	}
	return m.AddArea(r.label, origin, memtop, r.Handlers())
}
