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

package oki_test

import (
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/shiyutian/tilt/hardware/peripherals/oki"
	"github.com/shiyutian/tilt/test"
)

func writeTestWAV(t *testing.T, path string, data []int) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	enc := wav.NewEncoder(f, 22050, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  22050,
		},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

type capturingMixer struct {
	samples []int16
}

func (m *capturingMixer) SetAudio(samples []int16) error {
	m.samples = append(m.samples, samples...)
	return nil
}

func (m *capturingMixer) EndMixing() error {
	return nil
}

func (m *capturingMixer) Reset() {
	m.samples = m.samples[:0]
}

func TestLoadSample(t *testing.T) {
	dir := t.TempDir()
	writeTestWAV(t, filepath.Join(dir, "recording.wav"), []int{100, 200, 300, 400})

	mixer := &capturingMixer{}
	p := oki.NewPlayer("oki", testROM(), mixer)

	test.ExpectedSuccess(t, p.LoadSample(0, filepath.Join(dir, "recording.wav")))

	// trigger sample 0 on voice 0 at full volume. the PCM recording plays
	// in place of the ADPCM data
	test.ExpectedSuccess(t, p.CommandWrite(0, 0x80))
	test.ExpectedSuccess(t, p.CommandWrite(0, 0x10))

	p.Step(4 * 132)
	test.Equate(t, len(mixer.samples), 4)
	test.Equate(t, mixer.samples[0], int16(100))
	test.Equate(t, mixer.samples[3], int16(400))

	// the recording is exhausted: the voice has stopped
	v, err := p.StatusRead(0)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0xf0)
}

func TestLoadSampleSet(t *testing.T) {
	dir := t.TempDir()

	// file names give the sample number in hex. anything else is ignored
	writeTestWAV(t, filepath.Join(dir, "00.wav"), []int{1, 2, 3})
	writeTestWAV(t, filepath.Join(dir, "1A.wav"), []int{4, 5, 6})
	writeTestWAV(t, filepath.Join(dir, "readme.wav"), []int{7})

	mixer := &capturingMixer{}
	p := oki.NewPlayer("oki", testROM(), mixer)

	test.ExpectedSuccess(t, p.LoadSampleSet(dir))

	// sample 0x1a has no ADPCM table entry but plays from the recording
	test.ExpectedSuccess(t, p.CommandWrite(0, 0x9a))
	test.ExpectedSuccess(t, p.CommandWrite(0, 0x10))

	p.Step(3 * 132)
	test.Equate(t, len(mixer.samples), 3)
	test.Equate(t, mixer.samples[0], int16(4))
}

func TestLoadSampleErrors(t *testing.T) {
	dir := t.TempDir()

	p := oki.NewPlayer("oki", testROM(), nil)

	// sample number out of range
	test.ExpectedFailure(t, p.LoadSample(0x80, filepath.Join(dir, "00.wav")))

	// missing file
	test.ExpectedFailure(t, p.LoadSample(0, filepath.Join(dir, "00.wav")))

	// unsupported file type
	if err := os.WriteFile(filepath.Join(dir, "00.ogg"), []byte{0x00}, 0644); err != nil {
		t.Fatal(err)
	}
	test.ExpectedFailure(t, p.LoadSample(0, filepath.Join(dir, "00.ogg")))

	// a file that is not valid audio
	if err := os.WriteFile(filepath.Join(dir, "00.mp3"), []byte("not audio"), 0644); err != nil {
		t.Fatal(err)
	}
	test.ExpectedFailure(t, p.LoadSample(0, filepath.Join(dir, "00.mp3")))
}
