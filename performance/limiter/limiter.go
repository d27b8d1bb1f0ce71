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

// Package limiter paces a loop to a fixed number of iterations per second.
//
// A new FpsLimiter can be created with (error handling removed for clarity):
//
//	fps, _ := limiter.NewFPSLimiter(60)
//
// Work can then be paced with the Wait() function. For example:
//
//	for {
//		renderImage()
//		if fps.Wait(ctx) != nil {
//			break
//		}
//	}
//
// Deadlines are scheduled from the previous deadline rather than from the
// moment Wait() returns so that the time spent doing work does not accumulate
// as drift. If the loop falls more than one period behind the schedule is
// restarted from the current time, rather than running a burst of frames to
// catch up.
package limiter

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/ledcylinder/ledcylinder/curated"
)

// InvalidRate is returned when the requested rate is not positive.
const InvalidRate = "limiter: invalid rate (%d)"

// the period over which the measured rate is calculated
const measurementWindow = 250 * time.Millisecond

// FpsLimiter will trigger framesPerSecond times every second. It is not safe to
// call Wait() from more than one goroutine. Measured() can be called from any
// goroutine.
type FpsLimiter struct {
	framesPerSecond int
	period          time.Duration

	// the time the next call to Wait() should return
	deadline time.Time

	timer *time.Timer

	// number of frames since the start of the current measurement window
	count       int
	windowStart time.Time

	// measured frames per second, stored as the bits of a float64
	measured atomic.Uint64
}

// NewFPSLimiter is the preferred method of initialisation for FpsLimiter type
func NewFPSLimiter(framesPerSecond int) (*FpsLimiter, error) {
	lim := &FpsLimiter{}
	err := lim.SetLimit(framesPerSecond)
	if err != nil {
		return nil, err
	}
	return lim, nil
}

// SetLimit changes the limit at which the FpsLimiter waits
func (lim *FpsLimiter) SetLimit(framesPerSecond int) error {
	if framesPerSecond <= 0 {
		return curated.Errorf(InvalidRate, framesPerSecond)
	}
	lim.framesPerSecond = framesPerSecond
	lim.period = time.Second / time.Duration(framesPerSecond)
	lim.deadline = time.Time{}
	return nil
}

// Wait blocks until the next deadline. Returns the context's error if the
// context is done before the deadline is reached.
func (lim *FpsLimiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	now := time.Now()

	if lim.deadline.IsZero() {
		lim.deadline = now
		lim.windowStart = now
	}
	lim.deadline = lim.deadline.Add(lim.period)

	d := lim.deadline.Sub(now)
	if d > 0 {
		if lim.timer == nil {
			lim.timer = time.NewTimer(d)
		} else {
			lim.timer.Reset(d)
		}
		select {
		case <-ctx.Done():
			if !lim.timer.Stop() {
				<-lim.timer.C
			}
			return ctx.Err()
		case <-lim.timer.C:
		}
	} else if -d > lim.period {
		lim.deadline = now
	}

	lim.measure()
	return nil
}

func (lim *FpsLimiter) measure() {
	lim.count++
	elapsed := time.Since(lim.windowStart)
	if elapsed < measurementWindow {
		return
	}
	fps := float64(lim.count) / elapsed.Seconds()
	lim.measured.Store(math.Float64bits(fps))
	lim.count = 0
	lim.windowStart = time.Now()
}

// Measured returns the most recently measured frame rate. Returns zero until
// enough frames have passed for a measurement to be made.
func (lim *FpsLimiter) Measured() float32 {
	return float32(math.Float64frombits(lim.measured.Load()))
}
