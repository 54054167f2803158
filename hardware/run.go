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

// The continueCheck() function runs after every machine step. It can still
// be expensive to do a full continue check every time, so the
// PerformanceBrake is a standard value that can be used to filter out
// expensive code paths within a continueCheck() implementation. For
// example:
//
//	performanceFilter++
//	if performanceFilter >= hardware.PerformanceBrake {
//		performanceFilter = 0
//		if endCondition {
//			return false, nil
//		}
//	}
//	return true, nil
const PerformanceBrake = 100

// Run sets the emulation running as quickly as possible. The continueCheck
// function is called after every step; the loop ends when it returns false
// or an error.
func (m *Machine) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	running := true
	var err error

	for running {
		if err = m.Step(); err != nil {
			return err
		}

		running, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForCycles advances the machine by at least the specified number of
// machine cycles. Useful for tests and for the performance profiler.
func (m *Machine) RunForCycles(numCycles uint64, continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	target := m.cycles + numCycles

	running := true
	var err error

	for running && m.cycles < target {
		if err = m.Step(); err != nil {
			return err
		}

		running, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}
