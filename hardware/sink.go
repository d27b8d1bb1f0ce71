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

package hardware

import (
	"sync"
	"sync/atomic"

	"github.com/ledcylinder/ledcylinder/framebuffer"
)

// Sink is implemented by anything that can display frames.
type Sink interface {
	// the dimensions of the display in LEDs. these never change
	Width() int
	Height() int

	// Running returns false once the sink has decided that the program
	// should end. for example, the simulator window has been closed
	Running() bool

	// Update displays the frame. the frame is owned by the caller and is
	// only valid for the duration of the call. Update() is synchronous and
	// never returns an error: transport problems are the sink's own concern
	// and should be logged
	Update(frame *framebuffer.Frame)

	// Stop releases any resources held by the sink. It is safe to call Stop()
	// more than once
	Stop()
}

// Base is a partial implementation of the Sink interface, suitable for
// embedding. It provides Width(), Height() and Running(). Implementations
// should call Base.Stop() from their own Stop() function with a function that
// releases their resources. The function will be called at most once.
type Base struct {
	width  int
	height int

	running atomic.Bool
	stop    sync.Once
}

// Init must be called before the Base is used.
func (b *Base) Init(width int, height int) {
	b.width = width
	b.height = height
	b.running.Store(true)
}

// Width implements the Sink interface.
func (b *Base) Width() int {
	return b.width
}

// Height implements the Sink interface.
func (b *Base) Height() int {
	return b.height
}

// Running implements the Sink interface.
func (b *Base) Running() bool {
	return b.running.Load()
}

// Quit indicates that the sink should no longer be considered running. It
// does not release any resources.
func (b *Base) Quit() {
	b.running.Store(false)
}

// Stop clears the running flag and calls release the first time it is
// called. Subsequent calls do nothing. The release function can be nil.
func (b *Base) Stop(release func()) {
	b.running.Store(false)
	b.stop.Do(func() {
		if release != nil {
			release()
		}
	})
}
