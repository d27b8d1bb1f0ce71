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

// error patterns returned by page constructors.
const (
	EmptyAnimation   = "page: animation has no frames"
	MismatchedFrames = "page: animation frame %d is %dx%d, expected %dx%d"
	BadDuration      = "page: animation frame %d has a non-positive duration (%v)"
	MismatchedCount  = "page: %d frames but %d durations"
)

// DefaultScrollIncrement is the scroll increment of a newly created page. The
// value is in pixels per rendered frame. Negative values scroll to the left.
const DefaultScrollIncrement = -1.0

// Page is the interface for all content shown on the sign.
type Page interface {
	// Tick advances time based state by dt.
	Tick(dt time.Duration)

	// Render returns the current frame, rotated by the scroll offset, and
	// advances the scroll offset.
	Render() *framebuffer.Frame

	Width() int
	Height() int

	// SetScrollIncrement changes how far the page scrolls on every Render().
	SetScrollIncrement(increment float64)

	// ScrollOffset returns the current scroll offset. Always in the range
	// [0, Width()).
	ScrollOffset() float64
}
