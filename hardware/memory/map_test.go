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

package memory_test

import (
	"testing"

	"github.com/shiyutian/tilt/environment"
	"github.com/shiyutian/tilt/hardware/memory"
	"github.com/shiyutian/tilt/test"
)

type stubClock struct{}

func (c stubClock) CycleCount() uint64 {
	return 0
}

func testEnvironment(t *testing.T) *environment.Environment {
	t.Helper()
	env, err := environment.NewEnvironment("test", stubClock{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	env.Normalise()
	return env
}

func TestDispatch(t *testing.T) {
	env := testEnvironment(t)
	m := memory.NewMap(env, "cpu", 0xff)

	ram := memory.NewRAM(env, "work ram", 0x100)
	test.ExpectedSuccess(t, ram.Attach(m, 0x1000, 0x10ff))

	rom := memory.NewROM("program", []uint8{0xde, 0xad, 0xbe, 0xef})
	test.ExpectedSuccess(t, rom.Attach(m, 0x0000, 0x0003))

	// every address in a configured range dispatches to its handler.
	// handlers see addresses relative to the area origin
	test.ExpectedSuccess(t, m.Write(0x1020, 0x55))
	v, err := m.Read(0x1020)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x55)

	v, err = m.Read(0x0002)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xbe)
}

func TestOverlapIsFatalAtSetup(t *testing.T) {
	env := testEnvironment(t)
	m := memory.NewMap(env, "cpu", 0xff)

	ram := memory.NewRAM(env, "work ram", 0x100)
	test.ExpectedSuccess(t, ram.Attach(m, 0x1000, 0x10ff))

	// partial overlap
	other := memory.NewRAM(env, "other ram", 0x100)
	test.ExpectedFailure(t, other.Attach(m, 0x10ff, 0x11fe))

	// complete overlap
	test.ExpectedFailure(t, other.Attach(m, 0x1000, 0x10ff))

	// enclosing overlap
	big := memory.NewRAM(env, "big ram", 0x1000)
	test.ExpectedFailure(t, big.Attach(m, 0x0800, 0x17ff))

	// adjacent is fine
	test.ExpectedSuccess(t, other.Attach(m, 0x1100, 0x11ff))
}

func TestUnmappedAccess(t *testing.T) {
	env := testEnvironment(t)
	m := memory.NewMap(env, "cpu", 0xff)

	ram := memory.NewRAM(env, "work ram", 0x100)
	test.ExpectedSuccess(t, ram.Attach(m, 0x1000, 0x10ff))

	// unmapped read returns the configured bus value, not an error
	v, err := m.Read(0x8000)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xff)

	// unmapped write is dropped, not an error
	test.ExpectedSuccess(t, m.Write(0x8000, 0x12))

	// a map configured with a zero unmapped value returns zero
	z := memory.NewMap(env, "ports", 0x00)
	v, err = z.Read(0x0001)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x00)
}

func TestReadAndWriteOnlyAreas(t *testing.T) {
	env := testEnvironment(t)
	m := memory.NewMap(env, "cpu", 0x00)

	var stored uint8

	// register with distinct read and write behaviour at the same address
	err := m.AddArea("register", 0x0004, 0x0004, memory.Handlers{
		Read: func(_ uint16) (uint8, error) {
			return 0xa5, nil
		},
		Write: func(_ uint16, data uint8) error {
			stored = data
			return nil
		},
	})
	test.ExpectedSuccess(t, err)

	test.ExpectedSuccess(t, m.Write(0x0004, 0x3c))
	test.Equate(t, stored, 0x3c)

	v, err := m.Read(0x0004)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xa5)

	// the register has no peek handler
	_, err = m.Peek(0x0004)
	test.ExpectedFailure(t, err)
}

func TestPeekPoke(t *testing.T) {
	env := testEnvironment(t)
	m := memory.NewMap(env, "cpu", 0x00)

	ram := memory.NewRAM(env, "work ram", 0x100)
	test.ExpectedSuccess(t, ram.Attach(m, 0x0000, 0x00ff))

	test.ExpectedSuccess(t, m.Poke(0x0010, 0x99))
	v, err := m.Peek(0x0010)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0x99)

	// peeking outside every area is an error. the monitor should know
	// better
	_, err = m.Peek(0x8000)
	test.ExpectedFailure(t, err)
}
