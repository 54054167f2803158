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

// Package prefs provides a mechanism for setting preference values and
// saving them to disk.
//
// Preference values are registered against a key with the Add() function of
// the Disk type. The Load() and Save() functions transfer all registered
// values between memory and the preferences file in one go.
//
// The file format is one preference per line, the key and value separated by
// the " :: " string.
package prefs

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shiyutian/tilt/curated"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "preferences"

// the string that separates the key from the value on a single line of the
// preferences file.
const keySep = " :: "

// Disk represents preference values as stored on disk.
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Add a preference value to the list of values registered with the disk
// system. The key must be unique for this Disk instance.
func (dsk *Disk) Add(key string, p pref) error {
	if strings.Contains(key, keySep) {
		return curated.Errorf("prefs: invalid key: %s", key)
	}
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf("prefs: duplicate key: %s", key)
	}
	dsk.entries[key] = p
	return nil
}

// Load preference values from disk. Keys in the file that have not been
// registered with Add() are ignored; registered keys not present in the file
// keep their current value.
func (dsk *Disk) Load() error {
	f, err := os.Open(dsk.path)
	if err != nil {
		// a missing preferences file is not an error
		if _, ok := err.(*fs.PathError); ok {
			return nil
		}
		return curated.Errorf("prefs: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		kv := strings.SplitN(scanner.Text(), keySep, 2)
		if len(kv) != 2 {
			continue
		}
		if p, ok := dsk.entries[kv[0]]; ok {
			err = p.Set(kv[1])
			if err != nil {
				return curated.Errorf("prefs: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	return nil
}

// Save all registered preference values to disk.
func (dsk *Disk) Save() error {
	err := os.MkdirAll(filepath.Dir(dsk.path), 0700)
	if err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	f, err := os.Create(dsk.path)
	if err != nil {
		return curated.Errorf("prefs: %v", err)
	}
	defer f.Close()

	// write entries in a stable order
	keys := make([]string, 0, len(dsk.entries))
	for key := range dsk.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		_, err = fmt.Fprintf(f, "%s%s%s\n", key, keySep, dsk.entries[key].String())
		if err != nil {
			return curated.Errorf("prefs: %v", err)
		}
	}

	return nil
}

// String returns all registered preferences as a single string.
func (dsk *Disk) String() string {
	s := strings.Builder{}
	keys := make([]string, 0, len(dsk.entries))
	for key := range dsk.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", key, keySep, dsk.entries[key].String()))
	}
	return s.String()
}
