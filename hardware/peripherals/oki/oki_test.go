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

package oki_test

import (
	"testing"

	"github.com/shiyutian/tilt/hardware/peripherals/oki"
	"github.com/shiyutian/tilt/test"
)

// a sample ROM with one short sample (number 0) living just after the
// address table
func testROM() []uint8 {
	rom := make([]uint8, 0x800)

	// sample 0: start 0x400, stop 0x40f
	rom[0] = 0x00
	rom[1] = 0x04
	rom[2] = 0x00
	rom[3] = 0x00
	rom[4] = 0x04
	rom[5] = 0x0f

	for i := 0x400; i <= 0x40f; i++ {
		rom[i] = 0x11
	}

	return rom
}

func TestCommandPhrase(t *testing.T) {
	p := oki.NewPlayer("oki", testROM(), nil)

	// nothing playing at power on. the undriven status bits read high
	v, err := p.StatusRead(0)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xf0)

	// select sample 0, then trigger voice 0 at full volume
	test.ExpectedSuccess(t, p.CommandWrite(0, 0x80))
	test.ExpectedSuccess(t, p.CommandWrite(0, 0x10))

	v, err = p.StatusRead(0)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xf1)

	// the sample is 32 nibbles long: playback ends within 32 output
	// samples
	p.Step(32 * 132)

	v, err = p.StatusRead(0)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xf0)
}

func TestStopCommand(t *testing.T) {
	p := oki.NewPlayer("oki", testROM(), nil)

	test.ExpectedSuccess(t, p.CommandWrite(0, 0x80))
	test.ExpectedSuccess(t, p.CommandWrite(0, 0x30))

	v, err := p.StatusRead(0)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xf3)

	// stop voice 1 only
	test.ExpectedSuccess(t, p.CommandWrite(0, 0x10))

	v, err = p.StatusRead(0)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xf1)
}

func TestBadTableEntry(t *testing.T) {
	rom := testROM()

	// sample 1: stop before start
	rom[8] = 0x00
	rom[9] = 0x05
	rom[10] = 0x00
	rom[11] = 0x00
	rom[12] = 0x04
	rom[13] = 0x00

	p := oki.NewPlayer("oki", rom, nil)

	// triggering the bad sample leaves the voice silent
	test.ExpectedSuccess(t, p.CommandWrite(0, 0x81))
	test.ExpectedSuccess(t, p.CommandWrite(0, 0x10))

	v, err := p.StatusRead(0)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xf0)
}

type countingMixer struct {
	samples int
}

func (m *countingMixer) SetAudio(samples []int16) error {
	m.samples += len(samples)
	return nil
}

func (m *countingMixer) EndMixing() error {
	return nil
}

func (m *countingMixer) Reset() {
	m.samples = 0
}

func TestSampleRate(t *testing.T) {
	mixer := &countingMixer{}
	p := oki.NewPlayer("oki", testROM(), mixer)

	// one output sample per 132 cycles, whether or not a voice is playing
	p.Step(132 * 10)
	test.Equate(t, mixer.samples, 10)

	// the cycle remainder carries across steps
	p.Step(100)
	test.Equate(t, mixer.samples, 10)
	p.Step(32)
	test.Equate(t, mixer.samples, 11)
}

func TestReset(t *testing.T) {
	p := oki.NewPlayer("oki", testROM(), nil)

	test.ExpectedSuccess(t, p.CommandWrite(0, 0x80))
	test.ExpectedSuccess(t, p.CommandWrite(0, 0x10))
	p.Reset()

	v, err := p.StatusRead(0)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xf0)

	// the open phrase is abandoned too: the next command byte is not
	// mistaken for a trigger
	test.ExpectedSuccess(t, p.CommandWrite(0, 0x80))
	p.Reset()
	test.ExpectedSuccess(t, p.CommandWrite(0, 0x08))

	v, err = p.StatusRead(0)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xf0)
}
