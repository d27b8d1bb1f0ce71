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

package page

import (
	"math"

	"github.com/ledcylinder/ledcylinder/framebuffer"
)

// scroll is embedded by the page types and implements the horizontal rotation
// shared by all of them.
type scroll struct {
	width     int
	height    int
	offset    float64
	increment float64

	// rotated frames are written here. allocated on the first rotation that
	// needs it
	out *framebuffer.Frame
}

func newScroll(width, height int) scroll {
	return scroll{
		width:     width,
		height:    height,
		increment: DefaultScrollIncrement,
	}
}

func (s *scroll) Width() int {
	return s.width
}

func (s *scroll) Height() int {
	return s.height
}

func (s *scroll) SetScrollIncrement(increment float64) {
	s.increment = increment
}

func (s *scroll) ScrollOffset() float64 {
	return s.offset
}

// wrap returns v wrapped into the range [0, width).
func wrap(v float64, width int) float64 {
	w := float64(width)
	v = math.Mod(v, w)
	if v < 0 {
		v += w
	}

	// adding w to a very small negative number can round up to exactly w
	if v >= w {
		v = 0
	}
	return v
}

// rotate returns src shifted by the current offset and then advances the
// offset. the rotated frame is written to the scroll's own buffer, src is
// never modified.
func (s *scroll) rotate(src *framebuffer.Frame) *framebuffer.Frame {
	if s.width == 0 {
		return src
	}

	shift := int(math.Round(s.offset))

	if s.increment != 0 {
		s.offset = wrap(s.offset+s.increment, s.width)
	}

	if shift == 0 || shift == s.width {
		return src
	}

	if s.out == nil {
		s.out = framebuffer.New(s.width, s.height)
	}
	src.RollInto(s.out, shift)

	return s.out
}
