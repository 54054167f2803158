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

package database

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shiyutian/tilt/curated"
)

// Activity describes what the session will do with the database.
type Activity int

// List of valid Activity values. ActivityCreating is treated the same as
// ActivityModifying if the database already exists.
const (
	ActivityReading Activity = iota
	ActivityModifying
	ActivityCreating
)

// Session keeps track of a database session.
type Session struct {
	dbfile   *os.File
	activity Activity

	entries    map[int]Entry
	entryTypes map[string]Deserialiser
}

// StartSession starts/initialises a new database session. The init argument
// is the function to call when the database has been successfully opened;
// it should register the expected entry types.
func StartSession(path string, activity Activity, init func(*Session) error) (*Session, error) {
	db := &Session{
		activity:   activity,
		entryTypes: make(map[string]Deserialiser),
	}

	flags := os.O_RDONLY
	switch activity {
	case ActivityModifying:
		flags = os.O_RDWR
	case ActivityCreating:
		flags = os.O_RDWR | os.O_CREATE
	}

	var err error
	db.dbfile, err = os.OpenFile(path, flags, 0600)
	if err != nil {
		return nil, curated.Errorf(DatabaseError, err)
	}

	// closing of db.dbfile requires a call to EndSession()

	if err := init(db); err != nil {
		return nil, curated.Errorf(DatabaseError, err)
	}

	if err := db.readDBFile(); err != nil {
		return nil, err
	}

	return db, nil
}

// EndSession closes the database, writing any changes to disk if
// commitChanges is true.
func (db *Session) EndSession(commitChanges bool) error {
	if db.dbfile == nil {
		return curated.Errorf(DatabaseError, fmt.Errorf("session already ended"))
	}

	if commitChanges {
		if db.activity == ActivityReading {
			return curated.Errorf(DatabaseError, fmt.Errorf("cannot commit a read-only session"))
		}

		if err := db.dbfile.Truncate(0); err != nil {
			return curated.Errorf(DatabaseError, err)
		}
		if _, err := db.dbfile.Seek(0, io.SeekStart); err != nil {
			return curated.Errorf(DatabaseError, err)
		}

		for _, key := range db.SortedKeyList() {
			ent := db.entries[key]

			ser, err := ent.Serialise()
			if err != nil {
				return curated.Errorf(DatabaseError, err)
			}

			s := strings.Builder{}
			s.WriteString(fmt.Sprintf("%03d%s%s", key, fieldSep, ent.ID()))
			for _, f := range ser {
				s.WriteString(fieldSep)
				s.WriteString(f)
			}
			s.WriteString(entrySep)

			if _, err := db.dbfile.WriteString(s.String()); err != nil {
				return curated.Errorf(DatabaseError, err)
			}
		}
	}

	err := db.dbfile.Close()
	db.dbfile = nil
	if err != nil {
		return curated.Errorf(DatabaseError, err)
	}

	return nil
}

func (db *Session) readDBFile() error {
	db.entries = make(map[int]Entry)

	if _, err := db.dbfile.Seek(0, io.SeekStart); err != nil {
		return curated.Errorf(DatabaseError, err)
	}

	buffer, err := io.ReadAll(db.dbfile)
	if err != nil {
		return curated.Errorf(DatabaseError, err)
	}

	for i, line := range strings.Split(string(buffer), entrySep) {
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		// the leader is the key and the entry type ID. everything after
		// that is the entry's own concern
		fields := strings.Split(line, fieldSep)
		if len(fields) < 2 {
			return curated.Errorf(DatabaseError, fmt.Errorf("malformed entry at line %d", i+1))
		}

		key, err := strconv.Atoi(fields[0])
		if err != nil {
			return curated.Errorf(DatabaseError, fmt.Errorf("invalid key [%s] at line %d", fields[0], i+1))
		}

		if _, ok := db.entries[key]; ok {
			return curated.Errorf(DatabaseError, fmt.Errorf("duplicate key [%d] at line %d", key, i+1))
		}

		des, ok := db.entryTypes[fields[1]]
		if !ok {
			return curated.Errorf(DatabaseError, fmt.Errorf("unrecognised entry type [%s] at line %d", fields[1], i+1))
		}

		ent, err := des(SerialisedEntry(fields[2:]))
		if err != nil {
			return curated.Errorf(DatabaseError, err)
		}

		db.entries[key] = ent
	}

	return nil
}
