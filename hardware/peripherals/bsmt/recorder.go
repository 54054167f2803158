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

package bsmt

import (
	"fmt"
	"strings"
)

// RegWrite records one register write received by a Recorder.
type RegWrite struct {
	Reg  uint8
	Data uint16
}

func (w RegWrite) String() string {
	return fmt.Sprintf("%02x=%04x", w.Reg, w.Data)
}

// Recorder implements the Synth interface by recording the register stream.
// Used in place of a real synthesizer for regression tests and by the
// monitor.
type Recorder struct {
	Writes []RegWrite
	Resets int
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) String() string {
	s := strings.Builder{}
	for _, w := range r.Writes {
		s.WriteString(w.String())
		s.WriteString("\n")
	}
	return s.String()
}

// WriteReg implements the Synth interface.
func (r *Recorder) WriteReg(reg uint8, data uint16) {
	r.Writes = append(r.Writes, RegWrite{Reg: reg, Data: data})
}

// Reset implements the Synth interface.
func (r *Recorder) Reset() {
	r.Resets++
	r.Writes = r.Writes[:0]
}

// Ready implements the Synth interface. The recorder accepts writes at any
// rate so it is always ready.
func (r *Recorder) Ready() bool {
	return true
}
