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

// Package limiter provides a rough and ready way of limiting events to a
// fixed rate. Used to pace an emulated machine to real time: run a slice of
// cycles, Wait(), repeat.
//
//	lim := limiter.NewLimiter(60)
//	for {
//		lim.Wait()
//		runSlice()
//	}
package limiter

import (
	"time"
)

// Limiter triggers at a fixed rate per second.
//
// A rough attempt at rate limiting. only any good if base performance of
// the machine is well above the required rate.
type Limiter struct {
	perSecond time.Duration

	tick chan bool
}

// NewLimiter is the preferred method of initialisation for the Limiter
// type.
func NewLimiter(perSecond int) *Limiter {
	lim := &Limiter{
		perSecond: time.Duration(float64(time.Second) / float64(perSecond)),
		tick:      make(chan bool),
	}

	// run ticker concurrently. the sleep period is adjusted every trigger
	// to absorb scheduling drift
	go func() {
		adjusted := lim.perSecond
		t := time.Now()
		for {
			lim.tick <- true
			time.Sleep(adjusted)
			nt := time.Now()
			adjusted -= nt.Sub(t) - lim.perSecond
			t = nt
		}
	}()

	return lim
}

// Wait blocks until the next trigger.
func (lim *Limiter) Wait() {
	<-lim.tick
}

// HasWaited returns true if the trigger has already elapsed and false if it
// is still yet to happen.
func (lim *Limiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		return false
	}
}
