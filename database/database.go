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

// Package database is a very simple way of storing structured entries of
// arbitrary types in a flat file. Each line of the file is one entry: a
// numeric key, the entry type ID and the entry's own fields, separated by
// commas.
//
// Use of a database requires starting a session with StartSession(),
// coupled with an EndSession() once done. The initialisation function
// passed to StartSession() registers the entry types the database may
// contain, through RegisterEntryType().
package database

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shiyutian/tilt/curated"
)

// sentinal error messages
const (
	// DatabaseError is returned for all failures in this package.
	DatabaseError = "database: %v"

	// KeyError is returned when the requested key has no entry.
	KeyError = "database: key not available (%d)"

	// SelectEmpty is returned by a selection that matches nothing.
	SelectEmpty = "database: select empty"
)

// arbitrary maximum number of entries
const maxEntries = 1000

const fieldSep = ","
const entrySep = "\n"

// SerialisedEntry is the Entry data represented as an array of strings.
type SerialisedEntry []string

// Deserialiser is the initialisation function called when reading an entry
// of a registered type from the database file.
type Deserialiser func(fields SerialisedEntry) (Entry, error)

// Entry represents the generic entry in the database.
type Entry interface {
	// the string that is used to identify the entry type in the database
	ID() string

	// information about the entry in a human readable format. the machine
	// readable representation is returned by the Serialise function
	String() string

	// the Entry data as an instance of SerialisedEntry
	Serialise() (SerialisedEntry, error)

	// a cleanup is performed when the entry is deleted from the database
	CleanUp() error
}

// RegisterEntryType tells the database what entries it may expect and what
// to do when it encounters one.
func (db *Session) RegisterEntryType(id string, des Deserialiser) error {
	if strings.Contains(id, fieldSep) {
		return curated.Errorf(DatabaseError, fmt.Errorf("entry ID must not contain %q", fieldSep))
	}
	if _, ok := db.entryTypes[id]; ok {
		return curated.Errorf(DatabaseError, fmt.Errorf("duplicate entry ID [%s]", id))
	}
	db.entryTypes[id] = des
	return nil
}

// NumEntries returns the number of entries in the database.
func (db *Session) NumEntries() int {
	return len(db.entries)
}

// SortedKeyList returns a sorted list of database keys.
func (db *Session) SortedKeyList() []int {
	keyList := make([]int, 0, len(db.entries))
	for k := range db.entries {
		keyList = append(keyList, k)
	}
	sort.Ints(keyList)
	return keyList
}

// List the entries in key order.
func (db *Session) List(output io.Writer) error {
	if db.NumEntries() == 0 {
		_, err := io.WriteString(output, "database is empty\n")
		return err
	}

	for _, key := range db.SortedKeyList() {
		if _, err := io.WriteString(output, fmt.Sprintf("%03d %s\n", key, db.entries[key].String())); err != nil {
			return err
		}
	}

	_, err := io.WriteString(output, fmt.Sprintf("Total: %d\n", db.NumEntries()))
	return err
}

// Add an entry to the database. The new entry takes the lowest spare key.
func (db *Session) Add(ent Entry) error {
	if db.activity == ActivityReading {
		return curated.Errorf(DatabaseError, fmt.Errorf("cannot add to a read-only session"))
	}

	if _, ok := db.entryTypes[ent.ID()]; !ok {
		return curated.Errorf(DatabaseError, fmt.Errorf("unregistered entry type [%s]", ent.ID()))
	}

	var key int
	for key = 0; key < maxEntries; key++ {
		if _, ok := db.entries[key]; !ok {
			break
		}
	}
	if key == maxEntries {
		return curated.Errorf(DatabaseError, fmt.Errorf("maximum entries exceeded (max %d)", maxEntries))
	}

	db.entries[key] = ent

	return nil
}

// Get returns the entry with the specified key.
func (db *Session) Get(key int) (Entry, error) {
	ent, ok := db.entries[key]
	if !ok {
		return nil, curated.Errorf(KeyError, key)
	}
	return ent, nil
}

// Delete the entry with the specified key. The entry's CleanUp() function
// is run before removal.
func (db *Session) Delete(key int) error {
	if db.activity == ActivityReading {
		return curated.Errorf(DatabaseError, fmt.Errorf("cannot delete from a read-only session"))
	}

	ent, ok := db.entries[key]
	if !ok {
		return curated.Errorf(KeyError, key)
	}

	if err := ent.CleanUp(); err != nil {
		return curated.Errorf(DatabaseError, err)
	}

	delete(db.entries, key)

	return nil
}

// SelectAll calls onSelect for every entry, in key order. onSelect can be
// nil, in which case the function is a (slow) way of counting entries.
// Returns the number of entries selected.
func (db *Session) SelectAll(onSelect func(key int, ent Entry) error) (int, error) {
	if onSelect == nil {
		onSelect = func(_ int, _ Entry) error { return nil }
	}

	n := 0
	for _, key := range db.SortedKeyList() {
		if err := onSelect(key, db.entries[key]); err != nil {
			return n, err
		}
		n++
	}

	return n, nil
}

// SelectKeys calls onSelect for the entries with the specified keys. If the
// list of keys is empty then all entries are matched.
func (db *Session) SelectKeys(onSelect func(key int, ent Entry) error, keys ...int) (int, error) {
	if len(keys) == 0 {
		return db.SelectAll(onSelect)
	}

	if onSelect == nil {
		onSelect = func(_ int, _ Entry) error { return nil }
	}

	n := 0
	for _, key := range keys {
		ent, ok := db.entries[key]
		if !ok {
			return n, curated.Errorf(KeyError, key)
		}
		if err := onSelect(key, ent); err != nil {
			return n, err
		}
		n++
	}

	if n == 0 {
		return 0, curated.Errorf(SelectEmpty)
	}

	return n, nil
}
