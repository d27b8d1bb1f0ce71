// This file is part of ledcylinder.
//
// ledcylinder is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ledcylinder is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ledcylinder.  If not, see <https://www.gnu.org/licenses/>.

package logger_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ledcylinder/ledcylinder/logger"
	"github.com/ledcylinder/ledcylinder/test"
)

func TestLogger(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Write(w)
	test.ExpectEquality(t, w.String(), "")

	log.Log(logger.Allow, "test", "this is a test")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "test: this is a test\n")

	w.Reset()

	log.Log(logger.Allow, "test2", "this is another test")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for too many entries in a Tail() should be okay
	w.Reset()
	log.Tail(w, 100)
	test.ExpectEquality(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	w.Reset()
	log.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "test2: this is another test\n")

	w.Reset()
	log.Tail(w, 0)
	test.ExpectEquality(t, w.String(), "")
}

func TestRepeats(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "usb", "write failed")
	log.Log(logger.Allow, "usb", "write failed")
	log.Log(logger.Allow, "usb", "write failed")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "usb: write failed (repeat x3)\n")
}

func TestBounded(t *testing.T) {
	log := logger.NewLogger(10)
	for i := range 1000 {
		log.Logf(logger.Allow, "sign", "tick %d", i)
	}

	var n int
	var first string
	log.BorrowLog(func(e []logger.Entry) {
		n = len(e)
		first = e[0].Detail
	})
	test.ExpectEquality(t, n, 10)
	test.ExpectEquality(t, first, "tick 990")
}

func TestPermissions(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Deny, "tag", "detail")
	log.Logf(logger.Verbosity(false), "tag", "detail %d", 1)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "")

	log.Logf(logger.Verbosity(true), "tag", "detail %d", 2)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: detail 2\n")
}

func TestEcho(t *testing.T) {
	log := logger.NewLogger(100)
	w := &test.Writer{}

	log.Log(logger.Allow, "before", "echo")
	log.SetEcho(w, true)
	test.ExpectEquality(t, w.String(), "before: echo\n")

	w.Clear()
	log.Log(logger.Allow, "after", "echo")
	test.ExpectSuccess(t, strings.HasSuffix(w.String(), " after: echo\n"), fmt.Sprintf("%q", w.String()))

	log.SetEcho(nil, false)
	w.Clear()
	log.Log(logger.Allow, "off", "echo")
	test.ExpectEquality(t, w.String(), "")
}
