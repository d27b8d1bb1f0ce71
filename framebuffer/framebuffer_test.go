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

package framebuffer_test

import (
	"testing"

	"github.com/ledcylinder/ledcylinder/framebuffer"
	"github.com/ledcylinder/ledcylinder/test"
)

func TestFrameCopy(t *testing.T) {
	frame := framebuffer.New(16, 4)
	frame.Set(0, 0, 1, 2, 3)
	frame.Set(15, 3, 4, 5, 6)
	frame.Set(7, 2, 255, 0, 128)

	frame2 := frame.Clone()
	test.ExpectSuccess(t, frame2.Equal(frame))

	r, g, b := frame2.At(15, 3)
	test.ExpectEquality(t, r, 4)
	test.ExpectEquality(t, g, 5)
	test.ExpectEquality(t, b, 6)

	// the clone must not share pixel storage
	frame2.Set(0, 0, 9, 9, 9)
	r, _, _ = frame.At(0, 0)
	test.ExpectEquality(t, r, 1)
	test.ExpectFailure(t, frame2.Equal(frame))
}

func TestFill(t *testing.T) {
	frame := framebuffer.NewFilled(3, 2, 0xff, 0x80, 0x00)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			r, g, b := frame.At(x, y)
			test.ExpectEquality(t, r, 0xff)
			test.ExpectEquality(t, g, 0x80)
			test.ExpectEquality(t, b, 0x00)
		}
	}
	test.ExpectEquality(t, frame.Max(), 0xff)
	test.ExpectEquality(t, framebuffer.New(3, 2).Max(), 0)
}

func TestRoll(t *testing.T) {
	frame := framebuffer.New(4, 2)
	for x := 0; x < 4; x++ {
		frame.Set(x, 0, uint8(x), 0, 0)
		frame.Set(x, 1, uint8(x+10), 0, 0)
	}

	dst := framebuffer.New(4, 2)

	frame.RollInto(dst, 1)
	for x, want := range []uint8{3, 0, 1, 2} {
		r, _, _ := dst.At(x, 0)
		test.ExpectEquality(t, r, want)
		r, _, _ = dst.At(x, 1)
		test.ExpectEquality(t, r, want+10)
	}

	frame.RollInto(dst, -1)
	for x, want := range []uint8{1, 2, 3, 0} {
		r, _, _ := dst.At(x, 0)
		test.ExpectEquality(t, r, want)
	}

	// shifting by the width is the identity
	frame.RollInto(dst, 4)
	test.ExpectSuccess(t, dst.Equal(frame))
	frame.RollInto(dst, 0)
	test.ExpectSuccess(t, dst.Equal(frame))
}
