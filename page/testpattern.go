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
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ledcylinder/ledcylinder/framebuffer"
)

// NewTestPattern creates a static page showing a full hue sweep across the
// width of the display. Combined with the default scroll it exercises every
// column of the sign. brightness is in the range 0 to 1.
func NewTestPattern(width, height int, brightness float64) *Static {
	img := framebuffer.New(width, height)
	for x := 0; x < width; x++ {
		c := colorful.Hsv(360.0*float64(x)/float64(width), 1.0, brightness)
		r, g, b := c.Clamped().RGB255()
		for y := 0; y < height; y++ {
			img.Set(x, y, r, g, b)
		}
	}
	return NewStatic(img)
}
