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

	"github.com/ledcylinder/ledcylinder/curated"
	"github.com/ledcylinder/ledcylinder/framebuffer"
)

// Animation is a page showing a sequence of frames, each for its own
// duration. The sequence loops forever.
type Animation struct {
	scroll

	frames    []*framebuffer.Frame
	durations []time.Duration

	// the sum of all durations
	cycle time.Duration

	// index of the current frame and how long it has been shown for
	index   int
	frameDT time.Duration
}

// NewAnimation creates an animation page. There must be at least one frame,
// every frame must be the same size and every duration must be positive. The
// page takes ownership of the frames.
func NewAnimation(frames []*framebuffer.Frame, durations []time.Duration) (*Animation, error) {
	if len(frames) == 0 {
		return nil, curated.Errorf(EmptyAnimation)
	}
	if len(frames) != len(durations) {
		return nil, curated.Errorf(MismatchedCount, len(frames), len(durations))
	}

	w := frames[0].Width
	h := frames[0].Height

	var cycle time.Duration
	for i := range frames {
		if frames[i].Width != w || frames[i].Height != h {
			return nil, curated.Errorf(MismatchedFrames, i, frames[i].Width, frames[i].Height, w, h)
		}
		if durations[i] <= 0 {
			return nil, curated.Errorf(BadDuration, i, durations[i])
		}
		cycle += durations[i]
	}

	return &Animation{
		scroll:    newScroll(w, h),
		frames:    frames,
		durations: durations,
		cycle:     cycle,
	}, nil
}

// Tick implements the Page interface. The current frame advances once for
// every full frame duration that has elapsed, so a large dt can advance more
// than one frame.
func (an *Animation) Tick(dt time.Duration) {
	an.frameDT += dt

	// a complete loop of the animation returns to the same frame. removing
	// whole loops first bounds the advance loop below to one pass through the
	// frames
	if an.frameDT >= an.cycle {
		an.frameDT %= an.cycle
	}

	for range len(an.frames) {
		if an.frameDT < an.durations[an.index] {
			break
		}
		an.frameDT -= an.durations[an.index]
		an.index++
		if an.index >= len(an.frames) {
			an.index = 0
		}
	}
}

// Render implements the Page interface.
func (an *Animation) Render() *framebuffer.Frame {
	return an.rotate(an.frames[an.index])
}

// Index returns the index of the current frame.
func (an *Animation) Index() int {
	return an.index
}

// FrameTime returns how long the current frame has been shown.
func (an *Animation) FrameTime() time.Duration {
	return an.frameDT
}

// NumFrames returns the number of frames in the animation.
func (an *Animation) NumFrames() int {
	return len(an.frames)
}
