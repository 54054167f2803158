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

// Package oki implements an OKI M6295 style four-voice sample player
// bridge. The chip exposes a single command register and a single status
// register to the CPU; everything else it needs comes from its sample ROM.
//
// Commands arrive in phrases. A byte with bit 7 set selects a sample number
// and opens a phrase; the following byte starts that sample on the voices
// given in the top nibble, at the volume given in the bottom nibble. A byte
// with bit 7 clear outside a phrase stops the voices given in bits 3 to 6.
//
// The sample ROM starts with a table of 128 eight-byte entries: three bytes
// of start address and three bytes of stop address per sample, big endian.
// Sample data is 4-bit ADPCM. Individual samples can be replaced with PCM
// recordings loaded from WAV or MP3 files.
package oki

import (
	"github.com/shiyutian/tilt/hardware/audio"
)

// NumVoices is the number of independent playback voices.
const NumVoices = 4

// one output sample per this many chip clock cycles
const cyclesPerSample = 132

// attenuation per volume step, to 3dB. volumes beyond 8 are silent
var volumeTable = [16]int32{
	0x20, 0x16, 0x10, 0x0b, 0x08, 0x06, 0x04, 0x03, 0x02, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

type voice struct {
	playing bool
	volume  int32

	// ADPCM playback position in the sample ROM. one nibble per sample,
	// high nibble first
	pos    int
	stop   int
	hiNib  bool
	adpcm  adpcmState

	// non-nil when the sample has been replaced with an external PCM
	// recording
	pcm    []int16
	pcmPos int
}

// Player is the sample player bridge. It implements the hardware.Ticker
// interface: sound is produced as machine time passes.
type Player struct {
	label string
	rom   []uint8

	voices [NumVoices]voice

	// a phrase is open between the sample select byte and the trigger byte
	phrase bool
	sample uint8

	// per-sample PCM replacements, indexed by sample number
	external map[uint8][]int16

	mixer  audio.Mixer
	buffer []int16
	cycles int
}

// NewPlayer is the preferred method of initialisation for the Player type.
// The rom argument is the sample ROM region. The mixer can be nil, in which
// case sound is produced and discarded.
func NewPlayer(label string, rom []uint8, mixer audio.Mixer) *Player {
	return &Player{
		label:    label,
		rom:      rom,
		external: make(map[uint8][]int16),
		mixer:    mixer,
		buffer:   make([]int16, 0, 1024),
	}
}

// Label returns the name given to the player on creation.
func (p *Player) Label() string {
	return p.label
}

// CommandWrite is the handler for the command register.
func (p *Player) CommandWrite(_ uint16, data uint8) error {
	if p.phrase {
		p.trigger(data)
		p.phrase = false
		return nil
	}

	if data&0x80 == 0x80 {
		p.sample = data & 0x7f
		p.phrase = true
		return nil
	}

	// stop command. bits 3-6 give the voices to silence
	for v := 0; v < NumVoices; v++ {
		if data&(0x08<<v) != 0x00 {
			p.voices[v].playing = false
		}
	}

	return nil
}

// StatusRead is the handler for the status register. A set bit in the
// bottom nibble means the corresponding voice is playing. The top nibble is
// not driven and reads high.
func (p *Player) StatusRead(_ uint16) (uint8, error) {
	v := uint8(0xf0)
	for i := range p.voices {
		if p.voices[i].playing {
			v |= 0x01 << i
		}
	}
	return v, nil
}

func (p *Player) trigger(data uint8) {
	volume := volumeTable[data&0x0f]

	for v := 0; v < NumVoices; v++ {
		if data&(0x10<<v) == 0x00 {
			continue
		}

		vc := &p.voices[v]
		vc.volume = volume

		if pcm, ok := p.external[p.sample]; ok {
			vc.pcm = pcm
			vc.pcmPos = 0
			vc.playing = true
			continue
		}
		vc.pcm = nil

		start, stop, ok := p.tableEntry(p.sample)
		if !ok {
			vc.playing = false
			continue
		}

		vc.pos = start
		vc.stop = stop
		vc.hiNib = true
		vc.adpcm = adpcmState{}
		vc.playing = true
	}
}

// tableEntry returns the start and stop addresses of the numbered sample.
// The second return value is false if the entry runs outside the ROM.
func (p *Player) tableEntry(sample uint8) (int, int, bool) {
	o := int(sample) * 8
	if o+6 > len(p.rom) {
		return 0, 0, false
	}

	start := int(p.rom[o])<<16 | int(p.rom[o+1])<<8 | int(p.rom[o+2])
	stop := int(p.rom[o+3])<<16 | int(p.rom[o+4])<<8 | int(p.rom[o+5])

	if start >= stop || stop >= len(p.rom) {
		return 0, 0, false
	}

	return start, stop, true
}

// Step implements the hardware.Ticker interface. One output sample is
// produced per 132 cycles, matching the divider on the real chip.
func (p *Player) Step(cycles int) {
	p.cycles += cycles
	for p.cycles >= cyclesPerSample {
		p.cycles -= cyclesPerSample
		p.buffer = append(p.buffer, p.mix())
	}

	if p.mixer != nil && len(p.buffer) > 0 {
		// mixer errors are not propagated through the ticker. drop the
		// buffer either way
		_ = p.mixer.SetAudio(p.buffer)
	}
	p.buffer = p.buffer[:0]
}

func (p *Player) mix() int16 {
	var sum int32

	for i := range p.voices {
		vc := &p.voices[i]
		if !vc.playing {
			continue
		}

		if vc.pcm != nil {
			sum += int32(vc.pcm[vc.pcmPos]) * vc.volume / 0x20
			vc.pcmPos++
			if vc.pcmPos >= len(vc.pcm) {
				vc.playing = false
			}
			continue
		}

		var nib uint8
		if vc.hiNib {
			nib = p.rom[vc.pos] >> 4
		} else {
			nib = p.rom[vc.pos] & 0x0f
			vc.pos++
		}
		vc.hiNib = !vc.hiNib

		// the decoder yields a 12-bit signal
		sum += (int32(vc.adpcm.decode(nib)) << 4) * vc.volume / 0x20

		if vc.pos > vc.stop {
			vc.playing = false
		}
	}

	if sum > 32767 {
		sum = 32767
	} else if sum < -32768 {
		sum = -32768
	}

	return int16(sum)
}

// Reset stops every voice and abandons any open command phrase.
func (p *Player) Reset() {
	for i := range p.voices {
		p.voices[i] = voice{}
	}
	p.phrase = false
	p.sample = 0
	p.buffer = p.buffer[:0]
	p.cycles = 0
}

// Snapshot creates a copy of the Player instance.
func (p *Player) Snapshot() *Player {
	cp := *p
	cp.buffer = nil
	return &cp
}

// Plumb a previously snapshotted Player back into the emulation.
func (p *Player) Plumb(s *Player, mixer audio.Mixer) {
	p.voices = s.voices
	p.phrase = s.phrase
	p.sample = s.sample
	p.cycles = s.cycles
	p.mixer = mixer
	p.buffer = make([]int16, 0, 1024)
}
