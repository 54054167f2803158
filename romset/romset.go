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

// Package romset assembles the ROM regions of a board from a directory of
// dumped files or from a zip, 7z or rar archive. Archive formats are
// detected by magic bytes, not by file extension.
//
// A Set describes the files a board expects: every file has a known size
// and checksums. A file that is missing or the wrong size is fatal; a
// checksum mismatch is logged as a warning and the load continues, on the
// grounds that a modified dump is more useful running than rejected.
package romset

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"hash/crc32"

	"github.com/shiyutian/tilt/curated"
	"github.com/shiyutian/tilt/logger"
)

// sentinal error messages
const (
	// LoadError is returned for any failure to assemble a set.
	LoadError = "romset: %v"

	// NotFound is returned when a file named by the set is not in the
	// source directory or archive.
	NotFound = "romset: %s: %s not found"
)

const logTag = "romset"

// File is a single dumped ROM image within a region.
type File struct {
	Name string

	// offset of the file's content within the assembled region
	Offset int

	Size int

	// expected checksums of the dump. a zero CRC32 or empty SHA1 is not
	// checked
	CRC32 uint32
	SHA1  string
}

// Region is one addressable ROM space on the board, assembled from one or
// more files.
type Region struct {
	Name string
	Size int

	// unclaimed space in the region reads as this value
	Fill uint8

	Files []File
}

// Set is the complete list of regions a board expects.
type Set struct {
	Name    string
	Regions []Region
}

// Load assembles every region of the set. The path argument names a
// directory of ROM files or an archive in any supported format. The
// returned map is keyed by region name.
func Load(path string, set Set) (map[string][]uint8, error) {
	src, err := openSource(path)
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}

	regions := make(map[string][]uint8, len(set.Regions))

	for _, reg := range set.Regions {
		d := make([]uint8, reg.Size)
		if reg.Fill != 0 {
			for i := range d {
				d[i] = reg.Fill
			}
		}

		for _, f := range reg.Files {
			content, ok := src[normaliseName(f.Name)]
			if !ok {
				return nil, curated.Errorf(NotFound, set.Name, f.Name)
			}

			if len(content) != f.Size {
				return nil, curated.Errorf(LoadError,
					curated.Errorf("%s: %s is %#x bytes, expected %#x", set.Name, f.Name, len(content), f.Size))
			}

			if f.Offset+f.Size > reg.Size {
				return nil, curated.Errorf(LoadError,
					curated.Errorf("%s: %s does not fit region %s", set.Name, f.Name, reg.Name))
			}

			verifyChecksums(set.Name, f, content)
			copy(d[f.Offset:], content)
		}

		regions[reg.Name] = d
	}

	return regions, nil
}

// verifyChecksums logs a warning for every checksum that does not match.
// A bad dump is worth a warning but not a refusal.
func verifyChecksums(setName string, f File, content []uint8) {
	if f.CRC32 != 0 {
		if c := crc32.ChecksumIEEE(content); c != f.CRC32 {
			logger.Logf(logger.Allow, logTag, "%s: %s: crc32 %08x, expected %08x",
				setName, f.Name, c, f.CRC32)
		}
	}

	if f.SHA1 != "" {
		s := sha1.Sum(content)
		if !bytes.Equal(s[:], decodeSHA1(f.SHA1)) {
			logger.Logf(logger.Allow, logTag, "%s: %s: sha1 %s, expected %s",
				setName, f.Name, hex.EncodeToString(s[:]), f.SHA1)
		}
	}
}

func decodeSHA1(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return b
}
