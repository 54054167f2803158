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

package logger_test

import (
	"strings"
	"testing"

	"github.com/shiyutian/tilt/logger"
	"github.com/shiyutian/tilt/test"
)

func TestDuplicateFolding(t *testing.T) {
	logger.Clear()

	logger.Log(logger.Allow, "test", "hello")
	logger.Log(logger.Allow, "test", "hello")
	logger.Log(logger.Allow, "test", "hello")

	s := strings.Builder{}
	logger.Write(&s)
	test.Equate(t, s.String(), "test: hello (repeat x3)\n")
}

type prohibit struct{}

func (_ prohibit) AllowLogging() bool {
	return false
}

func TestPermission(t *testing.T) {
	logger.Clear()

	logger.Log(prohibit{}, "test", "should not appear")

	s := strings.Builder{}
	logger.Write(&s)
	test.Equate(t, s.String(), "")

	logger.Log(logger.Allow, "test", "should appear")

	s.Reset()
	logger.Write(&s)
	test.Equate(t, s.String(), "test: should appear\n")
}

func TestTail(t *testing.T) {
	logger.Clear()

	logger.Log(logger.Allow, "test", "one")
	logger.Log(logger.Allow, "test", "two")
	logger.Log(logger.Allow, "test", "three")

	s := strings.Builder{}
	logger.Tail(&s, 2)
	test.Equate(t, s.String(), "test: two\ntest: three\n")
}
