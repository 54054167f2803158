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

	"github.com/shiyutian/tilt/environment"
)

// RAM is a plain read/write storage area.
type RAM struct {
	env   *environment.Environment
	label string
	data  []uint8
}

// NewRAM is the preferred method of initialisation for the RAM type.
func NewRAM(env *environment.Environment, label string, size int) *RAM {
	return &RAM{
		env:   env,
		label: label,
		data:  make([]uint8, size),
	}
}

func (r *RAM) String() string {
	return fmt.Sprintf("%s: %#x bytes", r.label, len(r.data))
}

// Label returns the name given to the RAM at creation.
func (r *RAM) Label() string {
	return r.label
}

// Handlers returns the handler set to bind the RAM into an address map.
func (r *RAM) Handlers() Handlers {
	return Handlers{
		Read:  r.read,
		Write: r.write,
		Peek:  r.read,
		Poke:  r.write,
	}
}

func (r *RAM) read(address uint16) (uint8, error) {
	return r.data[address], nil
}

func (r *RAM) write(address uint16, data uint8) error {
	r.data[address] = data
	return nil
}

// Attach the RAM to an address map. The range length must equal the RAM
// size.
func (r *RAM) Attach(m *Map, origin uint16, memtop uint16) error {
	if int(memtop)-int(origin)+1 != len(r.data) {
		return fmt.Errorf("memory: %s: range %#04x to %#04x does not match size %#x", r.label, origin, memtop, len(r.data))
	}
	return m.AddArea(r.label, origin, memtop, r.Handlers())
}

// Reset the RAM contents. Depending on the hardware preferences the
// contents are either zeroed or randomised.
func (r *RAM) Reset() {
	if r.env.Prefs.RandomState.Get().(bool) {
		for i := range r.data {
			r.data[i] = uint8(r.env.Random.Intn(0xff))
		}
		return
	}
	for i := range r.data {
		r.data[i] = 0x00
	}
}

// Snapshot creates a copy of the RAM instance.
func (r *RAM) Snapshot() *RAM {
	cp := *r
	cp.data = make([]uint8, len(r.data))
	copy(cp.data, r.data)
	return &cp
}

// Plumb a previously snapshotted RAM. The snapshot contents are copied so
// that further emulation cannot disturb the stored state.
func (r *RAM) Plumb(s *RAM) {
	r.data = make([]uint8, len(s.data))
	copy(r.data, s.data)
}
