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

// Package audio defines the interface between the sound bridges and
// whatever is listening to them. Synthesis itself is out of scope: bridges
// forward whatever samples their attached device produces, and a Mixer
// collects them. Implementations of Mixer include the wavwriter and digest
// packages.
package audio

// SampleFreq is the nominal sample frequency of the bridge sample streams,
// in samples per second.
const SampleFreq = 24000

// Mixer implementations receive mono sample data from a sound bridge.
type Mixer interface {
	SetAudio(samples []int16) error

	// EndMixing is called when the emulation is finished with the mixer.
	// The mixer flushes anything it has buffered
	EndMixing() error

	// Reset the mixer, discarding any buffered samples
	Reset()
}
