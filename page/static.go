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
	"time"

	"github.com/ledcylinder/ledcylinder/framebuffer"
)

// Static is a page showing a single unchanging image.
type Static struct {
	scroll
	img *framebuffer.Frame
}

// NewStatic creates a page for the frame. The page takes ownership of the
// frame.
func NewStatic(img *framebuffer.Frame) *Static {
	return &Static{
		scroll: newScroll(img.Width, img.Height),
		img:    img,
	}
}

// Tick implements the Page interface. Static images do not change over time.
func (st *Static) Tick(_ time.Duration) {
}

// Render implements the Page interface.
func (st *Static) Render() *framebuffer.Frame {
	return st.rotate(st.img)
}
