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

// Package headless implements a sink with no output. It counts frames and
// keeps a copy of the most recent one. It is used by the CHECK and
// PERFORMANCE modes and by tests.
package headless

import (
	"sync"

	"github.com/ledcylinder/ledcylinder/framebuffer"
	"github.com/ledcylinder/ledcylinder/hardware"
)

// Headless implements the hardware.Sink interface.
type Headless struct {
	hardware.Base

	crit sync.Mutex

	// the number of frames after which the sink stops running. zero means no
	// limit
	limit int

	frames int
	last   *framebuffer.Frame

	stopped int
}

// NewHeadless is the preferred method of initialisation for the Headless
// type. A limit of zero means the sink runs until stopped.
func NewHeadless(width int, height int, limit int) *Headless {
	h := &Headless{
		limit: limit,
		last:  framebuffer.New(width, height),
	}
	h.Init(width, height)
	return h
}

// Update implements the hardware.Sink interface.
func (h *Headless) Update(frame *framebuffer.Frame) {
	h.crit.Lock()
	defer h.crit.Unlock()

	h.last.Copy(frame)
	h.frames++
	if h.limit > 0 && h.frames >= h.limit {
		h.Quit()
	}
}

// Stop implements the hardware.Sink interface.
func (h *Headless) Stop() {
	h.Base.Stop(func() {
		h.crit.Lock()
		defer h.crit.Unlock()
		h.stopped++
	})
}

// Frames returns the number of frames received by Update().
func (h *Headless) Frames() int {
	h.crit.Lock()
	defer h.crit.Unlock()
	return h.frames
}

// Last returns a copy of the most recent frame received by Update().
func (h *Headless) Last() *framebuffer.Frame {
	h.crit.Lock()
	defer h.crit.Unlock()
	return h.last.Clone()
}

// Stopped returns the number of times the sink's resources have been released.
// This is only ever zero or one.
func (h *Headless) Stopped() int {
	h.crit.Lock()
	defer h.crit.Unlock()
	return h.stopped
}
