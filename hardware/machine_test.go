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

package hardware_test

import (
	"strings"
	"testing"

	"github.com/shiyutian/tilt/hardware"
	"github.com/shiyutian/tilt/hardware/core"
	"github.com/shiyutian/tilt/hardware/irq"
	"github.com/shiyutian/tilt/hardware/memory"
	"github.com/shiyutian/tilt/logger"
	"github.com/shiyutian/tilt/test"
)

func newTestMachine(t *testing.T) *hardware.Machine {
	t.Helper()
	m, err := hardware.NewMachine("test", nil)
	if err != nil {
		t.Fatal(err)
	}
	m.Env.Normalise()
	return m
}

func TestLineChangesLatchBetweenSlices(t *testing.T) {
	m := newTestMachine(t)

	memA := memory.NewMap(m.Env, "a", 0x00)
	memB := memory.NewMap(m.Env, "b", 0x00)

	a := core.NewScripted("a", memA)
	b := core.NewScripted("b", memB)
	m.AddCore(a)
	m.AddCore(b)

	// a register on core A's map that asserts core B's NMI line when
	// written
	err := memA.AddArea("nmi trigger", 0x0000, 0x0000, memory.Handlers{
		Write: func(_ uint16, _ uint8) error {
			b.Lines().Set(irq.NMI, irq.Pulse)
			return nil
		},
	})
	test.ExpectedSuccess(t, err)

	a.Load([]core.Op{{Address: 0x0000, Data: 0x01}})

	// A writes the trigger during its slice. B's next scheduling slot is
	// later in the same machine step, so B latches and observes the pulse
	test.ExpectedSuccess(t, m.Step())
	test.Equate(t, len(b.Interrupts), 1)
	test.Equate(t, int(b.Interrupts[0].Line), int(irq.NMI))

	// a pulse is delivered exactly once
	test.ExpectedSuccess(t, m.Step())
	test.Equate(t, len(b.Interrupts), 1)
}

func TestLineChangeNotVisibleUntilNextSlot(t *testing.T) {
	m := newTestMachine(t)

	memA := memory.NewMap(m.Env, "a", 0x00)
	memB := memory.NewMap(m.Env, "b", 0x00)

	// B is scheduled before A this time
	b := core.NewScripted("b", memB)
	a := core.NewScripted("a", memA)
	m.AddCore(b)
	m.AddCore(a)

	err := memA.AddArea("nmi trigger", 0x0000, 0x0000, memory.Handlers{
		Write: func(_ uint16, _ uint8) error {
			b.Lines().Set(irq.NMI, irq.Pulse)
			return nil
		},
	})
	test.ExpectedSuccess(t, err)

	a.Load([]core.Op{{Address: 0x0000, Data: 0x01}})

	// B's slice in the first step has already passed when A writes the
	// trigger. the pulse stays staged until B's next slot, in step two
	test.ExpectedSuccess(t, m.Step())
	test.Equate(t, len(b.Interrupts), 0)

	test.ExpectedSuccess(t, m.Step())
	test.Equate(t, len(b.Interrupts), 1)
}

func TestResetLineScheduling(t *testing.T) {
	m := newTestMachine(t)

	mem := memory.NewMap(m.Env, "c", 0x00)
	c := core.NewScripted("c", mem)
	m.AddCore(c)

	ram := memory.NewRAM(m.Env, "ram", 0x100)
	test.ExpectedSuccess(t, ram.Attach(mem, 0x0000, 0x00ff))

	script := []core.Op{
		{Address: 0x0010, Data: 0x01},
		{Address: 0x0011, Data: 0x02},
		{Address: 0x0012, Data: 0x03},
	}
	c.Load(script)

	// asserting the reset line resets the core once and stops it
	c.Lines().Set(irq.Reset, irq.Assert)
	test.ExpectedSuccess(t, m.Step())
	test.Equate(t, c.Resets, 1)
	test.ExpectedSuccess(t, m.Step())
	test.Equate(t, c.Resets, 1)

	// the core held in reset has not executed anything
	test.Equate(t, c.Done(), false)

	// clearing the line lets the core run again
	c.Lines().Set(irq.Reset, irq.Clear)
	test.ExpectedSuccess(t, m.Step())
	test.Equate(t, c.Done(), true)
}

func TestMachineReset(t *testing.T) {
	m := newTestMachine(t)

	mem := memory.NewMap(m.Env, "c", 0x00)
	c := core.NewScripted("c", mem)
	m.AddCore(c)

	resets := 0
	m.AddResetter(func() {
		resets++
	})

	m.Reset()
	test.Equate(t, c.Resets, 1)
	test.Equate(t, resets, 1)
	test.Equate(t, m.CycleCount(), uint64(0))
}

func TestUnmappedAccessLogging(t *testing.T) {
	m, err := hardware.NewMachine("djboy", nil)
	if err != nil {
		t.Fatal(err)
	}
	m.Env.Normalise()

	mem := memory.NewMap(m.Env, "master", 0xff)

	// the machine's environment carries logging permission regardless of
	// the board label, so the unmapped access must reach the central logger
	v, err := mem.Read(0x1234)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xff)

	s := strings.Builder{}
	logger.Write(&s)
	if !strings.Contains(s.String(), "unmapped read of 0x1234") {
		t.Errorf("unmapped access was not logged; log contents: %q", s.String())
	}
}

func TestRunForCycles(t *testing.T) {
	m := newTestMachine(t)

	mem := memory.NewMap(m.Env, "c", 0x00)
	c := core.NewScripted("c", mem)
	m.AddCore(c)

	test.ExpectedSuccess(t, m.RunForCycles(1000, nil))
	if m.CycleCount() < 1000 {
		t.Errorf("expected at least 1000 cycles, got %d", m.CycleCount())
	}
}
