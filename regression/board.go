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

package regression

import (
	"crypto/sha1"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shiyutian/tilt/curated"
	"github.com/shiyutian/tilt/database"
	"github.com/shiyutian/tilt/digest"
	"github.com/shiyutian/tilt/hardware/decobsmt"
	"github.com/shiyutian/tilt/hardware/djboy"
	"github.com/shiyutian/tilt/romset"
)

const boardEntryID = "board"

const (
	boardFieldBoard int = iota
	boardFieldRomPath
	boardFieldCycles
	boardFieldDigest
	boardFieldNotes
	numBoardFields
)

// BoardRegression runs a board for a number of cycles and compares a
// fingerprint of the sound output against the stored digest. For the DJ Boy
// boards the fingerprint covers both sample player channels; for the
// decobsmt board it covers the synthesizer register stream.
type BoardRegression struct {
	Board   string
	RomPath string
	Cycles  uint64
	Digest  string
	Notes   string

	key int
}

func deserialiseBoardEntry(fields database.SerialisedEntry) (database.Entry, error) {
	reg := &BoardRegression{}

	if len(fields) != numBoardFields {
		return nil, curated.Errorf("board: %v", "wrong number of fields in database entry")
	}

	reg.Board = fields[boardFieldBoard]
	reg.RomPath = fields[boardFieldRomPath]
	reg.Digest = fields[boardFieldDigest]
	reg.Notes = fields[boardFieldNotes]

	var err error
	reg.Cycles, err = strconv.ParseUint(fields[boardFieldCycles], 10, 64)
	if err != nil {
		return nil, curated.Errorf("board: %v", "invalid cycle count in database entry")
	}

	return reg, nil
}

// ID implements the database.Entry interface.
func (reg BoardRegression) ID() string {
	return boardEntryID
}

func (reg BoardRegression) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("[%s] %s cycles=%d", reg.ID(), reg.Board, reg.Cycles))
	if reg.Notes != "" {
		s.WriteString(fmt.Sprintf(" [%s]", reg.Notes))
	}
	return s.String()
}

// Serialise implements the database.Entry interface.
func (reg *BoardRegression) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
			reg.Board,
			reg.RomPath,
			strconv.FormatUint(reg.Cycles, 10),
			reg.Digest,
			reg.Notes,
		},
		nil
}

// CleanUp implements the database.Entry interface.
func (reg BoardRegression) CleanUp() error {
	return nil
}

// regress implements the Regressor interface.
func (reg *BoardRegression) regress(newRegression bool, output io.Writer, message string) (bool, error) {
	output.Write([]byte(message))

	var fingerprint string
	var err error

	switch reg.Board {
	case "djboy":
		fingerprint, err = reg.fingerprintDJBoy(djboy.World)
	case "djboyj":
		fingerprint, err = reg.fingerprintDJBoy(djboy.Japan)
	case "decobsmt":
		fingerprint, err = reg.fingerprintDecobsmt()
	default:
		return false, curated.Errorf("board: unsupported board [%s]", reg.Board)
	}

	if err != nil {
		return false, curated.Errorf("board: %v", err)
	}

	if newRegression {
		reg.Digest = fingerprint
		return true, nil
	}

	if fingerprint != reg.Digest {
		return false, curated.Errorf(regressionFail, "fingerprint mismatch")
	}

	return true, nil
}

func (reg *BoardRegression) fingerprintDJBoy(rev djboy.Revision) (string, error) {
	regions, err := romset.Load(reg.RomPath, djboy.Sets(rev))
	if err != nil {
		return "", err
	}

	roms, err := djboy.ROMsFromRegions(regions)
	if err != nil {
		return "", err
	}

	mixL := digest.NewAudio()
	mixR := digest.NewAudio()

	brd, err := djboy.NewBoard(roms, rev, nil, mixL, mixR)
	if err != nil {
		return "", err
	}
	brd.Reset()

	if err := brd.Mch.RunForCycles(reg.Cycles, nil); err != nil {
		return "", err
	}

	if err := mixL.EndMixing(); err != nil {
		return "", err
	}
	if err := mixR.EndMixing(); err != nil {
		return "", err
	}

	return mixL.Hash() + mixR.Hash(), nil
}

func (reg *BoardRegression) fingerprintDecobsmt() (string, error) {
	rom, err := os.ReadFile(reg.RomPath)
	if err != nil {
		return "", err
	}

	brd, err := decobsmt.NewBoard(rom, nil)
	if err != nil {
		return "", err
	}
	brd.Reset()

	if err := brd.Mch.RunForCycles(reg.Cycles, nil); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", sha1.Sum([]byte(brd.Synth.String()))), nil
}
