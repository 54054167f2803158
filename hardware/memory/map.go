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
	"sort"
	"strings"

	"github.com/shiyutian/tilt/curated"
	"github.com/shiyutian/tilt/environment"
	"github.com/shiyutian/tilt/hardware/bus"
	"github.com/shiyutian/tilt/logger"
)

// cores access a Map through the bus.CoreBus interface; the monitor through
// bus.MonitorBus
var _ bus.CoreBus = (*Map)(nil)
var _ bus.MonitorBus = (*Map)(nil)

// ReadHandler is invoked for a read of any address in the area it is bound
// to.
type ReadHandler func(address uint16) (uint8, error)

// WriteHandler is invoked for a write to any address in the area it is
// bound to.
type WriteHandler func(address uint16, data uint8) error

// Handlers collects the handler functions for one area of a map. Any of the
// fields can be nil.
//
// A nil Read or Write means the area does not decode that direction: the
// access is treated the same as an access outside every area. The Peek and
// Poke fields service the MonitorBus without side effects; areas backed by
// plain storage should provide them, areas with read- or write-sensitive
// registers can leave them nil.
type Handlers struct {
	Read  ReadHandler
	Write WriteHandler
	Peek  ReadHandler
	Poke  WriteHandler
}

type area struct {
	label  string
	origin uint16
	memtop uint16
	h      Handlers
}

func (a area) String() string {
	return fmt.Sprintf("%04x -> %04x\t%s", a.origin, a.memtop, a.label)
}

// Map is the address map of a single core.
type Map struct {
	env   *environment.Environment
	label string

	// the value driven onto the data bus by a read of an unmapped address
	unmapped uint8

	// ordered by origin
	areas []area

	// addresses that have already been reported as unmapped. one log entry
	// per address is plenty
	reported map[uint16]bool
}

// NewMap is the preferred method of initialisation for the Map type. The
// unmapped argument is the value returned by reads of addresses that no
// area decodes.
func NewMap(env *environment.Environment, label string, unmapped uint8) *Map {
	return &Map{
		env:      env,
		label:    label,
		unmapped: unmapped,
		areas:    make([]area, 0, 8),
		reported: make(map[uint16]bool),
	}
}

func (m *Map) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s\n", m.label))
	for _, a := range m.areas {
		s.WriteString(fmt.Sprintf("  %s\n", a))
	}
	return strings.TrimSuffix(s.String(), "\n")
}

// Label returns the name given to the map at creation.
func (m *Map) Label() string {
	return m.label
}

// AddArea binds an address range to a set of handlers. The range includes
// both the origin and memtop addresses. Ranges must not overlap any area
// already in the map: an overlap is a configuration error and is fatal at
// setup.
func (m *Map) AddArea(label string, origin uint16, memtop uint16, h Handlers) error {
	if origin > memtop {
		return curated.Errorf("memory: %s: %s: origin %#04x beyond memtop %#04x", m.label, label, origin, memtop)
	}

	for _, a := range m.areas {
		if origin <= a.memtop && memtop >= a.origin {
			return curated.Errorf("memory: %s: %s overlaps %s", m.label, label, a.label)
		}
	}

	m.areas = append(m.areas, area{
		label:  label,
		origin: origin,
		memtop: memtop,
		h:      h,
	})

	sort.Slice(m.areas, func(i, j int) bool {
		return m.areas[i].origin < m.areas[j].origin
	})

	return nil
}

// the number of areas in a map is small. a linear search is fine.
func (m *Map) lookup(address uint16) *area {
	for i := range m.areas {
		if address >= m.areas[i].origin && address <= m.areas[i].memtop {
			return &m.areas[i]
		}
	}
	return nil
}

func (m *Map) reportUnmapped(address uint16, direction string) {
	if m.reported[address] {
		return
	}
	m.reported[address] = true
	logger.Logf(m.env, "memory", "%s: unmapped %s of %#04x", m.label, direction, address)
}

// Read the address, dispatching to the area that decodes it. Reads of
// unmapped addresses return the unmapped bus value. Implements the
// bus.CoreBus interface.
func (m *Map) Read(address uint16) (uint8, error) {
	a := m.lookup(address)
	if a == nil || a.h.Read == nil {
		m.reportUnmapped(address, "read")
		return m.unmapped, nil
	}
	return a.h.Read(address - a.origin)
}

// Write to the address, dispatching to the area that decodes it. Writes to
// unmapped addresses are dropped. Implements the bus.CoreBus interface.
func (m *Map) Write(address uint16, data uint8) error {
	a := m.lookup(address)
	if a == nil || a.h.Write == nil {
		m.reportUnmapped(address, "write")
		return nil
	}
	return a.h.Write(address-a.origin, data)
}

// Peek the address without side effects. Areas that have not provided a
// Peek handler return an error. Implements the bus.MonitorBus interface.
func (m *Map) Peek(address uint16) (uint8, error) {
	a := m.lookup(address)
	if a == nil {
		return 0, curated.Errorf("memory: %s: peek of unmapped address: %#04x", m.label, address)
	}
	if a.h.Peek == nil {
		return 0, curated.Errorf("memory: %s: %s cannot be peeked", m.label, a.label)
	}
	return a.h.Peek(address - a.origin)
}

// Poke the address without side effects. Areas that have not provided a
// Poke handler return an error. Implements the bus.MonitorBus interface.
func (m *Map) Poke(address uint16, data uint8) error {
	a := m.lookup(address)
	if a == nil {
		return curated.Errorf("memory: %s: poke of unmapped address: %#04x", m.label, address)
	}
	if a.h.Poke == nil {
		return curated.Errorf("memory: %s: %s cannot be poked", m.label, a.label)
	}
	return a.h.Poke(address-a.origin, data)
}
