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

package oki

// Dialogic/OKI 4-bit ADPCM. The decoder carries a 12-bit signal estimate
// and an index into the quantizer step table; each nibble adjusts both.

var adpcmSteps = [49]int16{
	16, 17, 19, 21, 23, 25, 28, 31, 34, 37,
	41, 45, 50, 55, 60, 66, 73, 80, 88, 97,
	107, 118, 130, 143, 157, 173, 190, 209, 230, 253,
	279, 307, 337, 371, 408, 449, 494, 544, 598, 658,
	724, 796, 876, 963, 1060, 1166, 1282, 1411, 1552,
}

var adpcmIndexShift = [8]int8{-1, -1, -1, -1, 2, 4, 6, 8}

type adpcmState struct {
	signal int16
	index  int8
}

func (s *adpcmState) decode(nibble uint8) int16 {
	step := adpcmSteps[s.index]

	diff := step >> 3
	if nibble&0x04 != 0x00 {
		diff += step
	}
	if nibble&0x02 != 0x00 {
		diff += step >> 1
	}
	if nibble&0x01 != 0x00 {
		diff += step >> 2
	}
	if nibble&0x08 != 0x00 {
		diff = -diff
	}

	s.signal += diff
	if s.signal > 2047 {
		s.signal = 2047
	} else if s.signal < -2048 {
		s.signal = -2048
	}

	s.index += adpcmIndexShift[nibble&0x07]
	if s.index > 48 {
		s.index = 48
	} else if s.index < 0 {
		s.index = 0
	}

	return s.signal
}
