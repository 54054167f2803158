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

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"

	"github.com/shiyutian/tilt/curated"
	"github.com/shiyutian/tilt/logger"
)

const samplesLogTag = "oki samples"

// LoadSampleSet replaces samples with the recordings found in a directory.
// Files are named by the hex number of the sample they replace, "1a.wav" or
// "1a.mp3". Files named any other way are ignored.
func (p *Player) LoadSampleSet(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return curated.Errorf("oki: %v", err)
	}

	n := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		name := strings.ToLower(e.Name())
		ext := filepath.Ext(name)
		if ext != ".wav" && ext != ".mp3" {
			continue
		}

		sample, err := strconv.ParseUint(strings.TrimSuffix(name, ext), 16, 8)
		if err != nil || sample > 0x7f {
			logger.Logf(logger.Allow, samplesLogTag, "%s: not named for a sample number, ignored", e.Name())
			continue
		}

		if err := p.LoadSample(uint8(sample), filepath.Join(dir, e.Name())); err != nil {
			return err
		}
		n++
	}

	logger.Logf(logger.Allow, samplesLogTag, "%s: %d samples loaded from %s", p.label, n, dir)

	return nil
}

// LoadSample replaces the numbered ADPCM sample with a PCM recording loaded
// from a WAV or MP3 file. The recording plays at the chip's own sample rate
// regardless of the rate it was recorded at; sample sets are expected to be
// prepared accordingly.
func (p *Player) LoadSample(sample uint8, filename string) error {
	if sample > 0x7f {
		return curated.Errorf("oki: sample number %#02x out of range", sample)
	}

	f, err := os.Open(filename)
	if err != nil {
		return curated.Errorf("oki: %v", err)
	}
	defer f.Close()

	var data []int16

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		data, err = loadWAV(f)
	case ".mp3":
		data, err = loadMP3(f)
	default:
		return curated.Errorf("oki: unsupported sample file type: %s", filename)
	}
	if err != nil {
		return err
	}

	p.external[sample] = data
	logger.Logf(logger.Allow, samplesLogTag, "sample %#02x replaced by %s", sample, filename)

	return nil
}

func loadWAV(f *os.File) ([]int16, error) {
	dec := wav.NewDecoder(f)
	if dec == nil {
		return nil, curated.Errorf("oki: wav: error decoding")
	}

	if !dec.IsValidFile() {
		return nil, curated.Errorf("oki: wav: not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, curated.Errorf("oki: wav: %v", err)
	}
	intBuf := buf.AsIntBuffer()

	// first channel only of the data stream
	numChans := int(dec.NumChans)
	data := make([]int16, 0, len(intBuf.Data)/numChans)
	for i := 0; i < len(intBuf.Data); i += numChans {
		data = append(data, int16(intBuf.Data[i]))
	}

	return data, nil
}

func loadMP3(f *os.File) ([]int16, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, curated.Errorf("oki: mp3: %v", err)
	}

	var data []int16

	// the stream is always 16bit little endian 2 channels. index increment
	// of 4 because we only want the left channel
	chunk := make([]byte, 4096)
	err = nil
	for err != io.EOF {
		var chunkLen int
		chunkLen, err = dec.Read(chunk)
		if err != nil && err != io.EOF {
			return nil, curated.Errorf("oki: mp3: %v", err)
		}

		for i := 0; i+1 < chunkLen; i += 4 {
			data = append(data, int16(uint16(chunk[i])|uint16(chunk[i+1])<<8))
		}
	}

	return data, nil
}
