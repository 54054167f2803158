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

package romset

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode/v2"
)

// archive magic bytes
var (
	magicZip    = []byte{0x50, 0x4b, 0x03, 0x04}
	magicZipEnd = []byte{0x50, 0x4b, 0x05, 0x06}
	magic7z     = []byte{0x37, 0x7a, 0xbc, 0xaf, 0x27, 0x1c}
	magicRar    = []byte{0x52, 0x61, 0x72, 0x21}
)

// individual dumps are small. anything larger than this is not a ROM image
const maxFileSize = 16 * 1024 * 1024

// openSource reads the entire contents of a directory or archive into
// memory, keyed by normalised basename. ROM sets are small enough that
// there is no value in streaming.
func openSource(path string) (map[string][]uint8, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if fi.IsDir() {
		return readDir(path)
	}

	header := make([]byte, 8)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	n, err := f.Read(header)
	_ = f.Close()
	if err != nil && err != io.EOF {
		return nil, err
	}
	header = header[:n]

	switch {
	case bytes.HasPrefix(header, magicZip) || bytes.HasPrefix(header, magicZipEnd):
		return readZip(path)
	case bytes.HasPrefix(header, magic7z):
		return read7z(path)
	case bytes.HasPrefix(header, magicRar):
		return readRar(path)
	}

	return nil, fmt.Errorf("%s is not a directory or a supported archive", path)
}

// normaliseName strips any archive directory structure and lowercases the
// name, so that sets match however the dump was packaged.
func normaliseName(name string) string {
	return strings.ToLower(filepath.Base(filepath.ToSlash(name)))
}

func limitedRead(r io.Reader) ([]uint8, error) {
	d, err := io.ReadAll(io.LimitReader(r, maxFileSize+1))
	if err != nil {
		return nil, err
	}
	if len(d) > maxFileSize {
		return nil, fmt.Errorf("file exceeds maximum size")
	}
	return d, nil
}

func readDir(path string) (map[string][]uint8, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	src := make(map[string][]uint8)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		d, err := os.ReadFile(filepath.Join(path, e.Name()))
		if err != nil {
			return nil, err
		}
		src[normaliseName(e.Name())] = d
	}

	return src, nil
}

func readZip(path string) (map[string][]uint8, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	src := make(map[string][]uint8)
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		d, err := limitedRead(rc)
		_ = rc.Close()
		if err != nil {
			return nil, err
		}
		src[normaliseName(f.Name)] = d
	}

	return src, nil
}

func read7z(path string) (map[string][]uint8, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	src := make(map[string][]uint8)
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		d, err := limitedRead(rc)
		_ = rc.Close()
		if err != nil {
			return nil, err
		}
		src[normaliseName(f.Name)] = d
	}

	return src, nil
}

func readRar(path string) (map[string][]uint8, error) {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	src := make(map[string][]uint8)
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.IsDir {
			continue
		}
		d, err := limitedRead(r)
		if err != nil {
			return nil, err
		}
		src[normaliseName(header.Name)] = d
	}

	return src, nil
}
