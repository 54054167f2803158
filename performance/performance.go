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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/shiyutian/tilt/curated"
	"github.com/shiyutian/tilt/hardware"
)

// sentinal error messages
const (
	// PerformanceError is returned for any Check() failure.
	PerformanceError = "performance: %v"

	// sentinal error used to stop the Run() loop when the measurement
	// period has elapsed
	timedOut = "performance timed out"
)

// Check runs the machine flat out for the specified wall-clock duration and
// reports the emulated clock rate achieved. The clockHz argument is the
// clock rate of the real board, for the speed ratio.
//
// Emulation will create a cpu profile, memory profile, a trace (or a
// combination of those) as defined by the profile argument.
func Check(output io.Writer, profile Profile, mch *hardware.Machine, clockHz int, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf(PerformanceError, err)
	}

	startCycles := mch.CycleCount()

	runner := func() error {
		// expires when the measurement period has elapsed. a separate
		// leadtime would be pointless: there is no display pipeline to
		// settle
		timerChan := make(chan bool)
		time.AfterFunc(dur, func() {
			timerChan <- true
		})

		// only check the timer channel every PerformanceBrake machine
		// steps. checking a channel is relatively expensive
		performanceBrake := 0

		return mch.Run(func() (bool, error) {
			performanceBrake++
			if performanceBrake >= hardware.PerformanceBrake {
				performanceBrake = 0
				select {
				case <-timerChan:
					return false, curated.Errorf(timedOut)
				default:
				}
			}
			return true, nil
		})
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil && !curated.Is(err, timedOut) {
		return curated.Errorf(PerformanceError, err)
	}

	numCycles := mch.CycleCount() - startCycles
	mhz, ratio := CalcSpeed(numCycles, clockHz, dur.Seconds())
	output.Write([]byte(fmt.Sprintf("%.2f MHz (%d cycles in %.2f seconds) %.1f%%\n",
		mhz, numCycles, dur.Seconds(), ratio)))

	return nil
}

// CalcSpeed takes a cycle count and a wall-clock duration (in seconds) and
// returns the achieved clock rate in MHz, along with the percentage of the
// real board's clock rate that represents.
func CalcSpeed(numCycles uint64, clockHz int, duration float64) (mhz float64, ratio float64) {
	hz := float64(numCycles) / duration
	mhz = hz / 1e6
	ratio = 100 * hz / float64(clockHz)
	return mhz, ratio
}
