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

// Package bus defines the memory bus concepts shared by the hardware
// packages. Defining the interfaces here, rather than in the memory package,
// avoids import cycles between the memory package and the packages that use
// it.
package bus

// CoreBus defines the operations for a memory map when accessed from the
// core that owns it. Boards with port-mapped I/O use a second, smaller map
// for the port space. The two maps are both accessed through this interface.
type CoreBus interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error
}

// MonitorBus defines the meta-operations for a memory map. Think of these
// functions as "debugging" functions, that is operations outside of the
// normal operation of the machine. Peek and Poke never cause the side
// effects that a Read or Write of the same address would.
type MonitorBus interface {
	Peek(address uint16) (uint8, error)
	Poke(address uint16, data uint8) error
}
