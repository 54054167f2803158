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

package irq

import "fmt"

// Periodic raises an interrupt line at a fixed rate. Used for interrupts
// that are tied to real-world-measured hardware timing rather than to any
// addressable device. For example, the 489Hz FIRQ on the Data East sound
// board.
type Periodic struct {
	lines *Lines
	line  Line
	state State

	// number of core cycles between interrupts
	period int

	// cycles remaining before the next interrupt
	remaining int
}

// NewPeriodic is the preferred method of initialisation for the Periodic
// type. The clockHz argument is the clock rate of the core being
// interrupted and rateHz is the measured interrupt rate.
func NewPeriodic(lines *Lines, line Line, state State, clockHz int, rateHz int) (*Periodic, error) {
	if rateHz <= 0 || clockHz <= 0 || rateHz > clockHz {
		return nil, fmt.Errorf("periodic: impossible rate: %dHz at a clock of %dHz", rateHz, clockHz)
	}

	period := clockHz / rateHz

	return &Periodic{
		lines:     lines,
		line:      line,
		state:     state,
		period:    period,
		remaining: period,
	}, nil
}

// Step advances the generator by the given number of core cycles, staging
// the interrupt line as many times as the elapsed period requires.
func (p *Periodic) Step(cycles int) {
	p.remaining -= cycles
	for p.remaining <= 0 {
		p.lines.Set(p.line, p.state)
		p.remaining += p.period
	}
}

// Reset the generator, restarting the countdown to the next interrupt.
func (p *Periodic) Reset() {
	p.remaining = p.period
}

// Snapshot creates a copy of the Periodic instance.
func (p *Periodic) Snapshot() *Periodic {
	cp := *p
	return &cp
}

// Plumb a previously snapshotted Periodic, reattaching the line set of the
// target core.
func (p *Periodic) Plumb(s *Periodic, lines *Lines) {
	*p = *s
	p.lines = lines
}
