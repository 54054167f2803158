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

// Package hardware is the base package for board emulation. It and its
// sub-packages contain everything required for a headless emulation.
//
// The Machine type is the root of an emulation. It owns the processor cores
// of a board and schedules them cooperatively: each core is advanced one
// quantum at a time, with interrupt line changes latched between time
// slices. Board packages (hardware/djboy, hardware/decobsmt) build a
// Machine and wire its cores to latches, banks, address maps and peripheral
// bridges.
package hardware
