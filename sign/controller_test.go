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

package sign_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ledcylinder/ledcylinder/command"
	"github.com/ledcylinder/ledcylinder/curated"
	"github.com/ledcylinder/ledcylinder/framebuffer"
	"github.com/ledcylinder/ledcylinder/hardware/headless"
	"github.com/ledcylinder/ledcylinder/page"
	"github.com/ledcylinder/ledcylinder/random"
	"github.com/ledcylinder/ledcylinder/sign"
	"github.com/ledcylinder/ledcylinder/test"
)

var (
	red   = [3]uint8{255, 0, 0}
	green = [3]uint8{0, 255, 0}
	blue  = [3]uint8{0, 0, 255}
)

// a controller for a 4x2 display with one single coloured static page for
// every colour
func newController(t *testing.T, params sign.Params, colours ...[3]uint8) (*sign.Controller, *headless.Headless, *command.Queue) {
	t.Helper()

	sink := headless.NewHeadless(4, 2, 0)
	queue := &command.Queue{}

	ctl, err := sign.NewController(params, sink, queue)
	test.DemandSuccess(t, err)

	for _, c := range colours {
		err = ctl.AddPage(page.NewStatic(framebuffer.NewFilled(4, 2, c[0], c[1], c[2])))
		test.DemandSuccess(t, err)
	}

	return ctl, sink, queue
}

func filled(c [3]uint8) *framebuffer.Frame {
	return framebuffer.NewFilled(4, 2, c[0], c[1], c[2])
}

var e2e = sign.Params{
	FPS:      10,
	PageTime: time.Second,
	FadeTime: 500 * time.Millisecond,
}

func TestEndToEnd(t *testing.T) {
	ctl, sink, _ := newController(t, e2e, red, green, blue)

	test.ExpectEquality(t, ctl.State(), sign.SingleState(0))

	for range 9 {
		ctl.Step()
		test.ExpectEquality(t, ctl.State(), sign.SingleState(0))
	}

	ctl.Step()
	test.ExpectEquality(t, ctl.State(), sign.TransitionState(0, 1, 500*time.Millisecond))
	test.ExpectSuccess(t, sink.Last().Equal(filled(red)))

	// the first frame of the transition is entirely the outgoing page
	ctl.Step()
	test.ExpectSuccess(t, sink.Last().Equal(filled(red)))
	test.ExpectEquality(t, ctl.State(), sign.TransitionState(0, 1, 400*time.Millisecond))

	// part way through the fade both pages contribute
	ctl.Step()
	r, g, b := sink.Last().At(0, 0)
	test.ExpectSuccess(t, r > 0 && r < 255, r)
	test.ExpectSuccess(t, g > 0 && g < 255, g)
	test.ExpectEquality(t, b, 0)

	ctl.Step()
	ctl.Step()
	ctl.Step()
	test.ExpectEquality(t, ctl.State(), sign.SingleState(1))
	test.ExpectEquality(t, ctl.PageTimer(), time.Second)

	status := ctl.Status()
	test.ExpectEquality(t, len(status.Pages), 1)
	test.ExpectEquality(t, status.Pages[0], 1)
	test.ExpectSuccess(t, status.Output)
	test.ExpectFailure(t, status.Flash)

	ctl.Step()
	test.ExpectSuccess(t, sink.Last().Equal(filled(green)))

	test.ExpectEquality(t, sink.Frames(), 16)
}

func TestSequentialWrap(t *testing.T) {
	ctl, _, _ := newController(t, e2e, red, green, blue)

	var visited []int
	last := -1
	for range 100 {
		ctl.Step()
		s := ctl.State()
		if s.Kind == sign.Single && s.Page != last {
			visited = append(visited, s.Page)
			last = s.Page
		}
	}

	// each page is shown for 15 ticks (10 ticks plus the fade) so 100 ticks
	// is enough for the order to wrap around
	test.DemandSuccess(t, len(visited) >= 5)
	for i, p := range visited {
		test.ExpectEquality(t, p, i%3)
	}
}

func TestSinglePage(t *testing.T) {
	ctl, _, _ := newController(t, e2e, red)

	for i := range 35 {
		ctl.Step()
		test.ExpectEquality(t, ctl.State(), sign.SingleState(0))
		if (i+1)%10 == 0 {
			test.ExpectEquality(t, ctl.PageTimer(), time.Second)
		}
	}
}

func TestRandomizedNeverRepeats(t *testing.T) {
	params := sign.Params{
		FPS:            10,
		PageTime:       100 * time.Millisecond,
		FadeTime:       100 * time.Millisecond,
		RandomizePages: true,
	}
	ctl, _, _ := newController(t, params, red, green, blue, red, green)

	rnd := random.NewRandom()
	rnd.ZeroSeed = true
	ctl.SetRandom(rnd)

	seen := make(map[int]bool)
	transitions := 0

	for range 2000 {
		ctl.Step()
		s := ctl.State()
		if s.Kind == sign.Transition && s.Remaining == params.FadeTime {
			transitions++
			test.ExpectInequality(t, s.To, s.From)
			seen[s.To] = true
		}
	}

	test.ExpectEquality(t, transitions, 1000)
	test.ExpectEquality(t, len(seen), 5)
}

func TestIncomingScroll(t *testing.T) {
	sink := headless.NewHeadless(4, 2, 0)
	ctl, err := sign.NewController(e2e, sink, &command.Queue{})
	test.DemandSuccess(t, err)

	a := page.NewStatic(filled(red))
	b := page.NewStatic(filled(green))
	a.SetScrollIncrement(0)
	b.SetScrollIncrement(0)
	test.DemandSuccess(t, ctl.AddPage(a))
	test.DemandSuccess(t, ctl.AddPage(b))

	for range 10 {
		ctl.Step()
	}
	test.ExpectEquality(t, a.ScrollOffset(), 0.0)
	test.ExpectEquality(t, b.ScrollOffset(), 0.0)

	// the incoming page drifts leftwards from the first frame of the
	// transition
	ctl.Step()
	test.ExpectEquality(t, a.ScrollOffset(), 0.0)
	test.ExpectEquality(t, b.ScrollOffset(), 3.0)
}

func TestFlashOverridesBlackout(t *testing.T) {
	ctl, sink, queue := newController(t, e2e, red)
	white := framebuffer.NewFilled(4, 2, 255, 255, 255)
	black := framebuffer.New(4, 2)

	ctl.Step()
	test.ExpectSuccess(t, sink.Last().Equal(filled(red)))

	queue.Push(command.TogglePower)
	ctl.Step()
	test.ExpectSuccess(t, sink.Last().Equal(black))

	queue.Push(command.FlashOn)
	ctl.Step()
	test.ExpectSuccess(t, sink.Last().Equal(white))
	status := ctl.Status()
	test.ExpectFailure(t, status.Output)
	test.ExpectSuccess(t, status.Flash)

	queue.Push(command.FlashOff)
	ctl.Step()
	test.ExpectSuccess(t, sink.Last().Equal(black))

	queue.Push(command.TogglePower)
	ctl.Step()
	test.ExpectSuccess(t, sink.Last().Equal(filled(red)))

	// flash also overrides normal output
	queue.Push(command.FlashOn)
	ctl.Step()
	test.ExpectSuccess(t, sink.Last().Equal(white))
}

func TestCommandOrdering(t *testing.T) {
	ctl, _, queue := newController(t, e2e, red)

	// power toggles once even though a flash command follows it in the same
	// tick
	queue.Push(command.TogglePower)
	queue.Push(command.FlashOn)
	ctl.Step()
	status := ctl.Status()
	test.ExpectFailure(t, status.Output)
	test.ExpectSuccess(t, status.Flash)
	test.ExpectEquality(t, queue.Len(), 0)

	// commands are not applied twice
	ctl.Step()
	status = ctl.Status()
	test.ExpectFailure(t, status.Output)
	test.ExpectSuccess(t, status.Flash)

	// last write wins for flash
	queue.Push(command.FlashOn)
	queue.Push(command.FlashOff)
	queue.Push(command.TogglePower)
	queue.Push(command.TogglePower)
	queue.Push(command.TogglePower)
	ctl.Step()
	status = ctl.Status()
	test.ExpectSuccess(t, status.Output)
	test.ExpectFailure(t, status.Flash)
}

func TestCrossFade(t *testing.T) {
	a := framebuffer.NewFilled(4, 2, 200, 100, 0)
	b := framebuffer.NewFilled(4, 2, 100, 0, 255)
	dst := framebuffer.New(4, 2)
	scratch := make([]float32, len(a.Pix))

	sign.CrossFade(dst, scratch, a, b, 1.0)
	test.ExpectSuccess(t, dst.Equal(a))

	sign.CrossFade(dst, scratch, a, b, 0.0)
	test.ExpectSuccess(t, dst.Equal(b))

	// the weights at the half way point are both one eighth
	sign.CrossFade(dst, scratch, a, b, 0.5)
	r, g, bl := dst.At(3, 1)
	test.ExpectEquality(t, r, 37)
	test.ExpectEquality(t, g, 12)
	test.ExpectEquality(t, bl, 31)

	// weight approaches zero towards the end of a fade
	sign.CrossFade(dst, scratch, a, b, 0.01)
	r, g, bl = dst.At(0, 0)
	test.ExpectEquality(t, r, 97)
	test.ExpectEquality(t, g, 0)
	test.ExpectEquality(t, bl, 247)
}

func TestAddPage(t *testing.T) {
	ctl, _, _ := newController(t, e2e)

	err := ctl.AddPage(page.NewStatic(framebuffer.New(4, 3)))
	test.ExpectSuccess(t, curated.Is(err, sign.MismatchedPage))
	test.ExpectEquality(t, ctl.NumPages(), 0)

	err = ctl.Run(context.Background())
	test.ExpectSuccess(t, curated.Is(err, sign.NoPages))
}

func TestInvalidParams(t *testing.T) {
	sink := headless.NewHeadless(4, 2, 0)

	for _, p := range []sign.Params{
		{FPS: 0, PageTime: time.Second, FadeTime: time.Second},
		{FPS: sign.MaxFPS + 1, PageTime: time.Second, FadeTime: time.Second},
		{FPS: 2000000000, PageTime: time.Second, FadeTime: time.Second},
		{FPS: 10, PageTime: 0, FadeTime: time.Second},
		{FPS: 10, PageTime: time.Second, FadeTime: -time.Second},
	} {
		_, err := sign.NewController(p, sink, &command.Queue{})
		test.ExpectSuccess(t, curated.Is(err, sign.InvalidParams), p)
	}
}

func TestRunUntilSinkStops(t *testing.T) {
	sink := headless.NewHeadless(4, 2, 5)
	params := e2e
	params.FPS = 1000

	ctl, err := sign.NewController(params, sink, &command.Queue{})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, ctl.AddPage(page.NewStatic(filled(blue))))

	test.ExpectSuccess(t, ctl.Run(context.Background()))
	test.ExpectEquality(t, sink.Frames(), 5)
	test.ExpectEquality(t, sink.Stopped(), 1)

	// pages can't be added and the controller can't be restarted
	err = ctl.AddPage(page.NewStatic(filled(red)))
	test.ExpectSuccess(t, curated.Is(err, sign.AlreadyRunning))
	err = ctl.Run(context.Background())
	test.ExpectSuccess(t, curated.Is(err, sign.AlreadyRunning))
}

func TestRunCancel(t *testing.T) {
	ctl, sink, _ := newController(t, e2e, red)

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()

	test.ExpectSuccess(t, ctl.Run(ctx))
	test.ExpectEquality(t, sink.Stopped(), 1)
	test.ExpectFailure(t, sink.Running())

	// at 10fps a quarter of a second is two or three frames
	test.ExpectSuccess(t, sink.Frames() >= 2 && sink.Frames() <= 4, sink.Frames())
}

func TestStatusJSON(t *testing.T) {
	b, err := json.Marshal(sign.Status{Pages: []int{2}, Output: true})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), `{"page":2,"output":true,"flash":false}`)

	b, err = json.Marshal(sign.Status{Pages: []int{0, 1}, Flash: true})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), `{"page":[0,1],"output":false,"flash":true}`)

	test.ExpectSuccess(t, sign.Status{Pages: []int{0, 1}}.Transition())
}
