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

package djboy_test

import (
	"testing"

	"github.com/shiyutian/tilt/hardware/djboy"
	"github.com/shiyutian/tilt/romset"
	"github.com/shiyutian/tilt/test"
)

// the first file of the named region. the revision-specific dumps all sit
// at the start of their region
func findFile(t *testing.T, set romset.Set, region string) romset.File {
	t.Helper()
	for _, r := range set.Regions {
		if r.Name == region {
			return r.Files[0]
		}
	}
	t.Fatalf("%s: no region %s", set.Name, region)
	return romset.File{}
}

// the tables are a bit-exact contract with the original dumps. pin the
// files that differ between the two revisions
func TestSetsPerRevision(t *testing.T) {
	world := djboy.Sets(djboy.World)
	japan := djboy.Sets(djboy.Japan)

	test.Equate(t, world.Name, "djboy")
	test.Equate(t, japan.Name, "djboyj")

	// the Japanese board carries its own master, slave and sample dumps
	f := findFile(t, japan, "master")
	test.Equate(t, f.Name, "bs12.4b")
	test.Equate(t, f.CRC32, uint32(0x0971523e))

	f = findFile(t, japan, "slave")
	test.Equate(t, f.Name, "bs13.5y")
	test.Equate(t, f.CRC32, uint32(0x5c3f2f96))

	f = findFile(t, japan, "oki")
	test.Equate(t, f.Name, "bs-204.5j")
	test.Equate(t, f.CRC32, uint32(0x510244f0))
	test.Equate(t, f.SHA1, "afb502d46d268ad9cd209ae1da72c50e4e785626")

	f = findFile(t, world, "oki")
	test.Equate(t, f.Name, "bs203.5j")
	test.Equate(t, f.CRC32, uint32(0x805341fb))

	// the sound program and the MCU image are shared
	test.Equate(t, findFile(t, world, "sound").CRC32, findFile(t, japan, "sound").CRC32)
	test.Equate(t, findFile(t, world, "beast").CRC32, findFile(t, japan, "beast").CRC32)
}
