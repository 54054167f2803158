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

package bank_test

import (
	"testing"

	"github.com/shiyutian/tilt/hardware/bank"
	"github.com/shiyutian/tilt/test"
)

// backing image where every byte records the entry it belongs to.
func testBacking(numEntries int, bankSize int) []uint8 {
	backing := make([]uint8, numEntries*bankSize)
	for i := range backing {
		backing[i] = uint8(i / bankSize)
	}
	return backing
}

func TestSelectAndRead(t *testing.T) {
	const bankSize = 0x2000

	backing := testBacking(32, bankSize)

	// make a handful of bytes unique so we're not just testing the fill
	// pattern
	backing[5*bankSize+0x10] = 0xcd

	b, err := bank.NewBank("master", 32, bankSize, bank.MaskIndex)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, b.ConfigureEntries(0, 32, backing, 0))

	b.Select(5)
	test.Equate(t, b.Entry(), 5)

	v, err := b.Read(0x10)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xcd)

	// every valid entry reads from the expected slice of the backing image
	for i := 0; i < 32; i++ {
		b.Select(uint8(i))
		v, err := b.Read(0x00)
		test.ExpectedSuccess(t, err)
		test.Equate(t, v, backing[i*bankSize])
	}
}

func TestMaskPolicy(t *testing.T) {
	backing := testBacking(8, 0x100)

	b, err := bank.NewBank("sound", 8, 0x100, bank.MaskIndex)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, b.ConfigureEntries(0, 8, backing, 0))

	// index 10 masks to 2
	b.Select(10)
	test.Equate(t, b.Entry(), 2)

	// mask policy requires a power-of-two entry count
	_, err = bank.NewBank("bad", 12, 0x100, bank.MaskIndex)
	test.ExpectedFailure(t, err)
}

func TestIgnorePolicy(t *testing.T) {
	backing := testBacking(4, 0x100)

	b, err := bank.NewBank("slave", 4, 0x100, bank.IgnoreIndex)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, b.ConfigureEntries(0, 4, backing, 0))

	b.Select(3)
	test.Equate(t, b.Entry(), 3)

	// out of range selection is a no-op, not a crash
	b.Select(9)
	test.Equate(t, b.Entry(), 3)
}

func TestSparseEntries(t *testing.T) {
	backing := testBacking(16, 0x100)

	b, err := bank.NewBank("slave", 16, 0x100, bank.IgnoreIndex)
	test.ExpectedSuccess(t, err)

	// entries 0 to 3 and 8 to 15 configured. 4 to 7 left unconfigured
	test.ExpectedSuccess(t, b.ConfigureEntries(0, 4, backing, 0))
	test.ExpectedSuccess(t, b.ConfigureEntries(8, 8, backing, 8*0x100))

	b.Select(2)
	test.Equate(t, b.Entry(), 2)

	// unconfigured entry leaves selection in place
	b.Select(5)
	test.Equate(t, b.Entry(), 2)

	b.Select(12)
	test.Equate(t, b.Entry(), 12)
}

func TestTransform(t *testing.T) {
	backing := testBacking(32, 0x100)

	b, err := bank.NewBank("master", 32, 0x100, bank.MaskIndex)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, b.ConfigureEntries(0, 32, backing, 0))
	b.SetTransform(0x1f)

	// raw index 0x1f normalises to entry 0
	b.Select(0x1f)
	test.Equate(t, b.Entry(), 0)

	b.Select(0x00)
	test.Equate(t, b.Entry(), 31)
}

func TestConfigurationErrors(t *testing.T) {
	backing := testBacking(4, 0x100)

	b, err := bank.NewBank("short", 8, 0x100, bank.MaskIndex)
	test.ExpectedSuccess(t, err)

	// backing image too small for the requested run of entries
	test.ExpectedFailure(t, b.ConfigureEntries(0, 8, backing, 0))

	// entry number out of range
	test.ExpectedFailure(t, b.ConfigureEntry(8, backing, 0))

	// reading a bank with no configured entries
	_, err = b.Read(0x00)
	test.ExpectedFailure(t, err)
}

func TestReset(t *testing.T) {
	backing := testBacking(16, 0x100)

	b, err := bank.NewBank("slave", 16, 0x100, bank.IgnoreIndex)
	test.ExpectedSuccess(t, err)

	// lowest configured entry is 8
	test.ExpectedSuccess(t, b.ConfigureEntries(8, 8, backing, 8*0x100))

	b.Select(12)
	b.Reset()
	test.Equate(t, b.Entry(), 8)
}
