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

package djboy

import (
	"github.com/shiyutian/tilt/hardware/irq"
)

// screen timing: 256 scanlines at a 57.5Hz refresh. the numbers below are
// in 6MHz Z80 cycles
const (
	numScanlines     = 256
	cyclesPerLine    = ClockHz * 2 / 115 / numScanlines
	vblankOutLine    = 240
	spriteDMALine    = 64
	vblankOutVector  = 0xfd
	spriteDMAVector  = 0xff
)

// scanlineTimer raises the frame interrupts. The master Z80 runs in
// interrupt mode 2 and is given a vector: 0xfd at the end of vblank and
// 0xff at the sprite DMA line. The slave and sound CPUs take a plain
// interrupt once per frame at vblank.
type scanlineTimer struct {
	master *irq.Lines
	slave  *irq.Lines
	sound  *irq.Lines

	line      int
	remaining int
}

func newScanlineTimer(master *irq.Lines, slave *irq.Lines, sound *irq.Lines) *scanlineTimer {
	return &scanlineTimer{
		master:    master,
		slave:     slave,
		sound:     sound,
		remaining: cyclesPerLine,
	}
}

// Step implements the hardware.Ticker interface.
func (s *scanlineTimer) Step(cycles int) {
	s.remaining -= cycles
	for s.remaining <= 0 {
		s.remaining += cyclesPerLine
		s.line++
		if s.line >= numScanlines {
			s.line = 0
		}

		switch s.line {
		case vblankOutLine:
			s.master.SetWithVector(irq.IRQ, irq.Hold, vblankOutVector)
			s.slave.Set(irq.IRQ, irq.Hold)
			s.sound.Set(irq.IRQ, irq.Hold)
		case spriteDMALine:
			s.master.SetWithVector(irq.IRQ, irq.Hold, spriteDMAVector)
		}
	}
}

func (s *scanlineTimer) reset() {
	s.line = 0
	s.remaining = cyclesPerLine
}

// Scanline returns the line the raster is on.
func (s *scanlineTimer) Scanline() int {
	return s.line
}
