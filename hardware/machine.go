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

package hardware

import (
	"fmt"
	"strings"

	"github.com/shiyutian/tilt/environment"
	"github.com/shiyutian/tilt/hardware/core"
	"github.com/shiyutian/tilt/hardware/irq"
	"github.com/shiyutian/tilt/hardware/preferences"
)

// Ticker is any board component that advances with machine time. Periodic
// interrupt generators and sample players are tickers.
type Ticker interface {
	Step(cycles int)
}

// Machine schedules the processor cores of a board. Cores run one at a
// time: each is advanced one quantum of cycles before the next is
// considered. Interrupt line changes staged during a core's time slice are
// latched at the boundary, so a change made by core A is observed by core B
// only when B is next scheduled.
type Machine struct {
	Env *environment.Environment

	label string

	cores   []core.Core
	tickers []Ticker

	// resetters are called on machine reset, after the cores
	resetters []func()

	// whether the core's RESET line was asserted the last time it was
	// considered for scheduling. a core is reset on the transition into
	// the asserted state, not on every slice it spends there
	resetHeld []bool

	cycles uint64
}

// NewMachine is the preferred method of initialisation for the Machine
// type. The machine is the cycle clock of the emulation, so it creates the
// Environment itself rather than accepting one. The prefs argument can be
// nil, in which case a new Preferences instance is created.
//
// The label names the board. The environment is always labelled as the main
// emulation so that components attached to the machine can write to the
// central logger.
func NewMachine(label string, prefs *preferences.Preferences) (*Machine, error) {
	m := &Machine{
		label: label,
	}

	var err error

	m.Env, err = environment.NewEnvironment(environment.MainEmulation, m, prefs)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Machine) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %d cycles", m.label, m.cycles))
	for _, c := range m.cores {
		s.WriteString("\n   ")
		s.WriteString(c.Lines().String())
	}
	return s.String()
}

// Label returns the name given to the machine on creation.
func (m *Machine) Label() string {
	return m.label
}

// AddCore attaches a core to the scheduler. Cores are stepped in the order
// they are added.
func (m *Machine) AddCore(c core.Core) {
	m.cores = append(m.cores, c)
	m.resetHeld = append(m.resetHeld, false)
}

// AddTicker attaches a component that advances with machine time.
func (m *Machine) AddTicker(t Ticker) {
	m.tickers = append(m.tickers, t)
}

// AddResetter registers a function to be called on machine reset. Board
// packages use this for latches, banks and bridges.
func (m *Machine) AddResetter(f func()) {
	m.resetters = append(m.resetters, f)
}

// CycleCount implements the random.Clock interface.
func (m *Machine) CycleCount() uint64 {
	return m.cycles
}

// Quantum returns the number of cycles a core runs for before the scheduler
// moves to the next core.
func (m *Machine) Quantum() int {
	return m.Env.Prefs.Quantum.Get().(int)
}

// Reset the machine and everything attached to it.
func (m *Machine) Reset() {
	m.cycles = 0
	for i, c := range m.cores {
		c.Reset()
		m.resetHeld[i] = false
	}
	for _, f := range m.resetters {
		f()
	}
}

// Step advances every core by one quantum, in order, and then the tickers
// by the same amount of machine time.
func (m *Machine) Step() error {
	quantum := m.Quantum()

	for i, c := range m.cores {
		lines := c.Lines()
		lines.Latch()

		// the RESET line is handled by the scheduler rather than the core.
		// a held line stops the core; the core restarts from its power-on
		// state when the line clears
		switch sig := lines.Signal(irq.Reset); sig.State {
		case irq.Assert, irq.Hold:
			if !m.resetHeld[i] {
				c.Reset()
				m.resetHeld[i] = true
			}
			continue
		case irq.Pulse:
			c.Reset()
			m.resetHeld[i] = false
		default:
			m.resetHeld[i] = false
		}

		if err := c.Step(quantum); err != nil {
			return err
		}
	}

	for _, t := range m.tickers {
		t.Step(quantum)
	}

	m.cycles += uint64(quantum)

	return nil
}
