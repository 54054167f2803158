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

// Package memory implements the address map of a single core: an ordered
// list of non-overlapping address ranges, each bound to a pair of read and
// write handlers. Everything a core can see - RAM, ROM, banked windows,
// latches, device registers - is an area in its map.
//
// Maps are built at machine configuration time with the AddArea() function
// and its convenience wrappers. Overlapping areas are rejected at that
// point: a configuration error is fatal at setup and can never surface
// during emulation.
//
// Accesses that fall outside every area are not an error at runtime. Reads
// return the unmapped bus value given at map creation (commonly 0x00 or
// 0xff) and writes are dropped. Both are logged, once per address, when
// they first happen.
package memory
