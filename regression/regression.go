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

// Package regression keeps a database of known-good runs. Each entry names
// a board, a ROM set and a cycle count; running the entry drives the board
// for that many cycles and compares a fingerprint of the result against the
// stored value.
package regression

import (
	"fmt"
	"io"
	"strconv"

	"github.com/shiyutian/tilt/curated"
	"github.com/shiyutian/tilt/database"
	"github.com/shiyutian/tilt/paths"
)

// sentinal error messages
const (
	// RegressionError is returned for any failure in this package.
	RegressionError = "regression: %v"

	// regressionFail is the error pattern for a fingerprint mismatch.
	regressionFail = "regression fail: %v"
)

const regressionDBFile = "regressionDB"

// Regressor is the generic entry in the regression database.
type Regressor interface {
	database.Entry

	// performs the regression test. the newRegression flag indicates that
	// the test is being run for the first time and the fingerprint should
	// be stored rather than compared
	regress(newRegression bool, output io.Writer, message string) (bool, error)
}

// when starting a database session we need to register what entries we
// will find in the database.
func initDBSession(db *database.Session) error {
	return db.RegisterEntryType(boardEntryID, deserialiseBoardEntry)
}

func dbPath() string {
	return paths.ResourcePath(regressionDBFile)
}

// RegressList displays all entries in the database.
func RegressList(output io.Writer) error {
	db, err := database.StartSession(dbPath(), database.ActivityReading, initDBSession)
	if err != nil {
		return curated.Errorf(RegressionError, err)
	}
	defer db.EndSession(false)

	return db.List(output)
}

// RegressAdd an entry to the database. The regression is run once to
// generate the fingerprint; a failure to run is a failure to add.
func RegressAdd(output io.Writer, reg Regressor) error {
	db, err := database.StartSession(dbPath(), database.ActivityCreating, initDBSession)
	if err != nil {
		return curated.Errorf(RegressionError, err)
	}
	defer db.EndSession(true)

	msg := fmt.Sprintf("adding: %s", reg.String())
	if _, err := reg.regress(true, output, msg); err != nil {
		return curated.Errorf(RegressionError, err)
	}

	output.Write([]byte(fmt.Sprintf("\radded: %s\n", reg.String())))

	return db.Add(reg)
}

// RegressDelete removes an entry from the database. Deletion must be
// confirmed through the confirmation reader.
func RegressDelete(output io.Writer, confirmation io.Reader, key string) error {
	v, err := strconv.Atoi(key)
	if err != nil {
		return curated.Errorf(RegressionError, fmt.Errorf("invalid key [%s]", key))
	}

	db, err := database.StartSession(dbPath(), database.ActivityModifying, initDBSession)
	if err != nil {
		return curated.Errorf(RegressionError, err)
	}
	defer db.EndSession(true)

	ent, err := db.Get(v)
	if err != nil {
		return curated.Errorf(RegressionError, err)
	}

	output.Write([]byte(fmt.Sprintf("%s\ndelete? (y/n): ", ent.String())))

	confirm := make([]byte, 32)
	if _, err := confirmation.Read(confirm); err != nil {
		return curated.Errorf(RegressionError, err)
	}

	if confirm[0] == 'y' || confirm[0] == 'Y' {
		if err := db.Delete(v); err != nil {
			return curated.Errorf(RegressionError, err)
		}
		output.Write([]byte(fmt.Sprintf("deleted test #%s from regression database\n", key)))
	}

	return nil
}

// RegressRun the specified entries and report the results. An empty keys
// list runs every entry in the database.
func RegressRun(output io.Writer, keys []string) error {
	db, err := database.StartSession(dbPath(), database.ActivityReading, initDBSession)
	if err != nil {
		return curated.Errorf(RegressionError, err)
	}
	defer db.EndSession(false)

	keyList := make([]int, 0, len(keys))
	for _, k := range keys {
		v, err := strconv.Atoi(k)
		if err != nil {
			return curated.Errorf(RegressionError, fmt.Errorf("invalid key [%s]", k))
		}
		keyList = append(keyList, v)
	}

	numSucceed := 0
	numFail := 0
	numError := 0

	onSelect := func(key int, ent database.Entry) error {
		reg, ok := ent.(Regressor)
		if !ok {
			return fmt.Errorf("entry #%03d is not a regression entry", key)
		}

		msg := fmt.Sprintf("running: #%03d %s", key, reg.String())
		ok, err := reg.regress(false, output, msg)

		switch {
		case err != nil && curated.Has(err, regressionFail):
			numFail++
			output.Write([]byte(fmt.Sprintf("\rfailure: #%03d %s\n", key, reg.String())))
		case err != nil:
			numError++
			output.Write([]byte(fmt.Sprintf("\rerror: #%03d %s (%v)\n", key, reg.String(), err)))
		case ok:
			numSucceed++
			output.Write([]byte(fmt.Sprintf("\rsucceed: #%03d %s\n", key, reg.String())))
		}

		return nil
	}

	if _, err := db.SelectKeys(onSelect, keyList...); err != nil {
		return curated.Errorf(RegressionError, err)
	}

	output.Write([]byte(fmt.Sprintf("regression tests: %d succeed, %d fail, %d error\n",
		numSucceed, numFail, numError)))

	if numFail > 0 || numError > 0 {
		return curated.Errorf(RegressionError, fmt.Errorf("%d tests did not succeed", numFail+numError))
	}

	return nil
}
