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

package sign

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ledcylinder/ledcylinder/command"
	"github.com/ledcylinder/ledcylinder/curated"
	"github.com/ledcylinder/ledcylinder/framebuffer"
	"github.com/ledcylinder/ledcylinder/hardware"
	"github.com/ledcylinder/ledcylinder/logger"
	"github.com/ledcylinder/ledcylinder/page"
	"github.com/ledcylinder/ledcylinder/performance/limiter"
	"github.com/ledcylinder/ledcylinder/random"
)

// Error patterns for the sign package.
const (
	NoPages         = "sign: no pages to show"
	MismatchedPage  = "sign: page is %dx%d but the display is %dx%d"
	AlreadyRunning  = "sign: controller is already running"
	invalidStateMsg = "sign: invalid display state: %s"
)

// Controller drives a hardware sink with frames composited from a list of
// pages.
type Controller struct {
	params Params
	dt     time.Duration

	sink  hardware.Sink
	queue *command.Queue

	// pages are appended before Run() and never removed
	pages []page.Page

	state     State
	pageTimer time.Duration

	outputActive bool
	flashActive  bool

	// frames used in place of the composited frame by the output stage
	white *framebuffer.Frame
	black *framebuffer.Frame

	// cross-fade buffers. reused for every transition frame
	scratch []float32
	output  *framebuffer.Frame

	rnd *random.Random
	lim *limiter.FpsLimiter

	running atomic.Bool

	// status is published at the end of every tick for other goroutines
	statusCrit sync.Mutex
	status     Status

	// per-tick logging. off unless the verbose flag was given
	Verbose logger.Verbosity
}

// NewController is the preferred method of initialisation for the Controller
// type. The dimensions of the display are taken from the sink. Commands pushed
// to the queue are applied at the start of the next tick.
func NewController(params Params, sink hardware.Sink, queue *command.Queue) (*Controller, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	w := sink.Width()
	h := sink.Height()

	ctl := &Controller{
		params:       params,
		dt:           params.DT(),
		sink:         sink,
		queue:        queue,
		state:        SingleState(0),
		pageTimer:    params.PageTime,
		outputActive: true,
		white:        framebuffer.NewFilled(w, h, 255, 255, 255),
		black:        framebuffer.New(w, h),
		scratch:      make([]float32, w*h*framebuffer.Depth),
		output:       framebuffer.New(w, h),
		rnd:          random.NewRandom(),
	}
	ctl.publish()

	return ctl, nil
}

// SetRandom replaces the random number generator used to choose pages in
// randomized mode.
func (ctl *Controller) SetRandom(rnd *random.Random) {
	ctl.rnd = rnd
}

// AddPage appends a page to the list of pages. Pages must be the same size as
// the display. Pages can not be added once Run() has been called.
func (ctl *Controller) AddPage(p page.Page) error {
	if ctl.running.Load() {
		return curated.Errorf(AlreadyRunning)
	}
	if p.Width() != ctl.sink.Width() || p.Height() != ctl.sink.Height() {
		return curated.Errorf(MismatchedPage, p.Width(), p.Height(), ctl.sink.Width(), ctl.sink.Height())
	}
	ctl.pages = append(ctl.pages, p)
	return nil
}

// NumPages returns the number of pages added with AddPage().
func (ctl *Controller) NumPages() int {
	return len(ctl.pages)
}

// State returns the current display state. Not safe to call from a goroutine
// other than the one calling Run() or Step(). Use Status() for that.
func (ctl *Controller) State() State {
	return ctl.state
}

// PageTimer returns the time remaining before the visible page is changed.
// It is only meaningful in the Single state.
func (ctl *Controller) PageTimer() time.Duration {
	return ctl.pageTimer
}

// Status returns a snapshot of the controller's status as it was at the end
// of the most recent tick. Safe to call from any goroutine.
func (ctl *Controller) Status() Status {
	ctl.statusCrit.Lock()
	defer ctl.statusCrit.Unlock()
	s := ctl.status
	s.Pages = append([]int(nil), ctl.status.Pages...)
	return s
}

func (ctl *Controller) publish() {
	ctl.statusCrit.Lock()
	defer ctl.statusCrit.Unlock()

	switch ctl.state.Kind {
	case Single:
		ctl.status.Pages = append(ctl.status.Pages[:0], ctl.state.Page)
	case Transition:
		ctl.status.Pages = append(ctl.status.Pages[:0], ctl.state.From, ctl.state.To)
	}
	ctl.status.Output = ctl.outputActive
	ctl.status.Flash = ctl.flashActive
	if ctl.lim != nil {
		ctl.status.FPS = ctl.lim.Measured()
	}
}

// Run produces frames at the rate given by Params.FPS until the sink stops
// running or the context is done. The sink is stopped before Run() returns.
//
// Returns an error only if there are no pages to show.
func (ctl *Controller) Run(ctx context.Context) error {
	if len(ctl.pages) == 0 {
		return curated.Errorf(NoPages)
	}
	if !ctl.running.CompareAndSwap(false, true) {
		return curated.Errorf(AlreadyRunning)
	}
	defer ctl.sink.Stop()

	var err error
	ctl.lim, err = limiter.NewFPSLimiter(ctl.params.FPS)
	if err != nil {
		return curated.Errorf("sign: %v", err)
	}

	logger.Logf(logger.Allow, "sign", "showing %d pages on %dx%d display at %d fps",
		len(ctl.pages), ctl.sink.Width(), ctl.sink.Height(), ctl.params.FPS)

	for ctl.sink.Running() && ctx.Err() == nil {
		ctl.Step()
		if ctl.lim.Wait(ctx) != nil {
			break
		}
	}

	logger.Log(logger.Allow, "sign", "stopped")

	return nil
}

// Step performs one tick of the controller without any pacing. There must be
// at least one page. Step() is called by Run() but it is also useful on its own
// for tests and for producing frames as quickly as possible.
//
// Step() panics if the display state is invalid.
func (ctl *Controller) Step() {
	ctl.applyCommands()

	frame := ctl.composite()

	switch {
	case ctl.flashActive:
		frame = ctl.white
	case !ctl.outputActive:
		frame = ctl.black
	}

	ctl.sink.Update(frame)

	ctl.advance()
	ctl.publish()
}

func (ctl *Controller) applyCommands() {
	ctl.queue.Drain(func(cmd command.Command) {
		switch cmd {
		case command.FlashOn:
			ctl.flashActive = true
		case command.FlashOff:
			ctl.flashActive = false
		case command.TogglePower:
			ctl.outputActive = !ctl.outputActive
		default:
			logger.Logf(logger.Allow, "sign", "ignoring unknown command (%d)", int(cmd))
			return
		}
		logger.Logf(ctl.Verbose, "sign", "command: %s", cmd)
	})
}

// composite ticks and renders the visible pages and returns the frame to show.
// the returned frame may belong to a page
func (ctl *Controller) composite() *framebuffer.Frame {
	switch ctl.state.Kind {
	case Single:
		p := ctl.pages[ctl.state.Page]
		p.Tick(ctl.dt)
		return p.Render()

	case Transition:
		// the weight is taken before the remaining time is reduced so the
		// first frame of a transition is entirely the outgoing page
		w := float32(ctl.state.Remaining) / float32(ctl.params.FadeTime)

		a := ctl.pages[ctl.state.From]
		b := ctl.pages[ctl.state.To]
		a.Tick(ctl.dt)
		b.Tick(ctl.dt)

		CrossFade(ctl.output, ctl.scratch, a.Render(), b.Render(), w)
		return ctl.output
	}

	panic(fmt.Sprintf(invalidStateMsg, ctl.state))
}

// advance the page and fade timers and change state as required
func (ctl *Controller) advance() {
	switch ctl.state.Kind {
	case Single:
		ctl.pageTimer -= ctl.dt
		if ctl.pageTimer > 0 {
			return
		}

		if len(ctl.pages) == 1 {
			ctl.pageTimer = ctl.params.PageTime
			return
		}

		from := ctl.state.Page
		var to int
		if ctl.params.RandomizePages {
			to = ctl.rnd.Except(len(ctl.pages), from)
		} else {
			to = (from + 1) % len(ctl.pages)
		}

		ctl.pages[to].SetScrollIncrement(page.DefaultScrollIncrement)
		ctl.state = TransitionState(from, to, ctl.params.FadeTime)
		logger.Logf(ctl.Verbose, "sign", "%s", ctl.state)

	case Transition:
		ctl.state.Remaining -= ctl.dt
		if ctl.state.Remaining > 0 {
			return
		}
		ctl.state = SingleState(ctl.state.To)
		ctl.pageTimer = ctl.params.PageTime
		logger.Logf(ctl.Verbose, "sign", "%s", ctl.state)

	default:
		panic(fmt.Sprintf(invalidStateMsg, ctl.state))
	}
}

// CrossFade blends the outgoing frame a with the incoming frame b into dst.
// The weight is one at the start of a fade and approaches zero at the end.
// Frame a is weighted by w³ and frame b by (1-w)³. The weights do not sum to
// one so the blend is darker than either frame in the middle of the fade.
//
// The scratch slice must have one entry for every byte of the frames. All
// frames must be the same size. The dst frame must not be a or b.
func CrossFade(dst *framebuffer.Frame, scratch []float32, a *framebuffer.Frame, b *framebuffer.Frame, w float32) {
	wa := w * w * w
	wb := (1 - w) * (1 - w) * (1 - w)

	for i := range scratch {
		scratch[i] = wa*float32(a.Pix[i]) + wb*float32(b.Pix[i])
	}

	for i, v := range scratch {
		switch {
		case v < 0:
			dst.Pix[i] = 0
		case v > 255:
			dst.Pix[i] = 255
		default:
			dst.Pix[i] = uint8(v)
		}
	}
}
