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

package prefs_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/ledcylinder/ledcylinder/curated"
	"github.com/ledcylinder/ledcylinder/prefs"
	"github.com/ledcylinder/ledcylinder/test"
)

func TestBool(t *testing.T) {
	var v prefs.Bool
	test.ExpectEquality(t, v.String(), "false")

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectEquality(t, v.Get(), prefs.Value(true))
	test.ExpectSuccess(t, v.Set("foo"))
	test.ExpectEquality(t, v.Get(), prefs.Value(false))
	test.ExpectSuccess(t, v.Set("true"))
	test.ExpectEquality(t, v.String(), "true")

	err := v.Set(10)
	test.ExpectSuccess(t, curated.Is(err, prefs.CannotConvert))
	test.ExpectEquality(t, v.String(), "true")

	test.ExpectSuccess(t, v.Reset())
	test.ExpectEquality(t, v.String(), "false")
}

func TestString(t *testing.T) {
	var v prefs.String
	test.ExpectEquality(t, v.String(), "")
	test.ExpectSuccess(t, v.Set("tcp://localhost:1883"))
	test.ExpectEquality(t, v.String(), "tcp://localhost:1883")
	test.ExpectSuccess(t, v.Set(100))
	test.ExpectEquality(t, v.Get(), prefs.Value("100"))
}

func TestInt(t *testing.T) {
	var v prefs.Int
	test.ExpectEquality(t, v.String(), "0")

	test.ExpectSuccess(t, v.Set(10))
	test.ExpectEquality(t, v.Get(), prefs.Value(10))
	test.ExpectSuccess(t, v.Set(" 20 "))
	test.ExpectEquality(t, v.String(), "20")

	test.ExpectFailure(t, v.Set("foo"))
	test.ExpectFailure(t, v.Set(1.5))
	test.ExpectEquality(t, v.String(), "20")
}

func TestFloat(t *testing.T) {
	var v prefs.Float
	test.ExpectEquality(t, v.String(), "0.000")
	test.ExpectSuccess(t, v.Set("0.25"))
	test.ExpectEquality(t, v.Get(), prefs.Value(0.25))
	test.ExpectSuccess(t, v.Set(2))
	test.ExpectEquality(t, v.String(), "2.000")
	test.ExpectFailure(t, v.Set("foo"))
}

func TestDuration(t *testing.T) {
	var v prefs.Duration
	test.ExpectEquality(t, v.String(), "0s")

	test.ExpectSuccess(t, v.Set("1.5s"))
	test.ExpectEquality(t, v.Get(), prefs.Value(1500*time.Millisecond))

	// plain numbers are seconds
	test.ExpectSuccess(t, v.Set("2"))
	test.ExpectEquality(t, v.Get(), prefs.Value(2*time.Second))
	test.ExpectSuccess(t, v.Set(0.5))
	test.ExpectEquality(t, v.Get(), prefs.Value(500*time.Millisecond))
	test.ExpectSuccess(t, v.Set(3))
	test.ExpectEquality(t, v.String(), "3s")
	test.ExpectSuccess(t, v.Set(100*time.Millisecond))
	test.ExpectEquality(t, v.String(), "100ms")

	test.ExpectFailure(t, v.Set("soon"))
	test.ExpectEquality(t, v.String(), "100ms")
}

func TestHooks(t *testing.T) {
	var v prefs.Int

	var post []int
	v.SetHookPre(func(value prefs.Value) error {
		if value.(int) <= 0 {
			return fmt.Errorf("must be positive")
		}
		return nil
	})
	v.SetHookPost(func(value prefs.Value) error {
		post = append(post, value.(int))
		return nil
	})

	test.ExpectSuccess(t, v.Set(10))
	test.ExpectFailure(t, v.Set(-1))
	test.ExpectEquality(t, v.String(), "10")
	test.ExpectSuccess(t, v.Set(10))

	// the post hook is called even if the value doesn't change but not if
	// the pre hook fails
	test.ExpectEquality(t, len(post), 2)
}

func TestDict(t *testing.T) {
	d := prefs.NewDict()

	var w prefs.Int
	var fade prefs.Duration
	var random prefs.Bool

	test.ExpectSuccess(t, d.Add("display.width", &w))
	test.ExpectSuccess(t, d.Add("sign.fade", &fade))
	test.ExpectSuccess(t, d.Add("sign.random", &random))

	err := d.Add("sign.fade", &fade)
	test.ExpectSuccess(t, curated.Is(err, prefs.DuplicateKey))

	test.ExpectSuccess(t, d.Set("display.width", 64))
	test.ExpectSuccess(t, d.Set("sign.fade", "750ms"))

	err = d.Set("display.height", 8)
	test.ExpectSuccess(t, curated.Is(err, prefs.UnknownKey))

	err = d.Set("display.width", "wide")
	test.ExpectSuccess(t, curated.Is(err, prefs.SetError))
	test.ExpectSuccess(t, curated.Has(err, prefs.CannotConvert))

	p, ok := d.Lookup("display.width")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, p.String(), "64")

	test.ExpectEquality(t, d.String(), "display.width :: 64\nsign.fade :: 750ms\nsign.random :: false\n")
}

func TestDictCommandLine(t *testing.T) {
	d := prefs.NewDict()

	var w prefs.Int
	var random prefs.Bool
	test.ExpectSuccess(t, d.Add("display.width", &w))
	test.ExpectSuccess(t, d.Add("sign.random", &random))
	test.ExpectSuccess(t, w.Set(128))

	prefs.PushCommandLineStack("sign.random::true; display.colour::red")
	test.ExpectSuccess(t, d.ApplyCommandLine())

	test.ExpectEquality(t, w.String(), "128")
	test.ExpectEquality(t, random.String(), "true")

	// unused values remain on the stack
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "display.colour::red")

	prefs.PushCommandLineStack("display.width::narrow")
	test.ExpectFailure(t, d.ApplyCommandLine())
	prefs.PopCommandLineStack()
}
