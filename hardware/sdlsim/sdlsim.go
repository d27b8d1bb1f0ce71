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

// Package sdlsim simulates the LED sign in an SDL window. Each LED is drawn as
// a square on a dark background.
//
// SDL requires that windows are created and serviced on the main thread. The
// SDL type is created on the main thread and the main thread must call
// Service() regularly. Update() can be called from any goroutine: the frame is
// copied and shown on the next call to Service().
//
// The keyboard can be used to send commands to the sign:
//
//	i	flash while held down
//	o	toggle power
//	ESC	quit
package sdlsim

import (
	"io"
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/ledcylinder/ledcylinder/command"
	"github.com/ledcylinder/ledcylinder/curated"
	"github.com/ledcylinder/ledcylinder/framebuffer"
	"github.com/ledcylinder/ledcylinder/hardware"
	"github.com/ledcylinder/ledcylinder/logger"
	"github.com/ledcylinder/ledcylinder/userinput"
	"github.com/ledcylinder/ledcylinder/version"
)

// SDLError is the error pattern for SDL problems.
const SDLError = "sdl: %v"

// colour of the gaps between LEDs
const background = 0x10

// the longest Service() will wait for an event, in milliseconds
const serviceWait = 5

// SDL implements the hardware.Sink interface for an SDL window.
type SDL struct {
	hardware.Base

	scale    int32
	keyboard *userinput.Keyboard

	window   *sdl.Window
	renderer *sdl.Renderer

	// back is written by Update(). front is only touched by Service()
	crit  sync.Mutex
	back  *framebuffer.Frame
	dirty bool
	front *framebuffer.Frame

	// LED rectangles, one per pixel
	rects []sdl.Rect
}

// NewSDL creates the window. Must be called on the main thread. The scale is
// the size of each LED in screen pixels, including the one pixel gap. Key
// presses are pushed to the queue.
//
// #mainthread
func NewSDL(width int, height int, scale int, queue *command.Queue) (*SDL, error) {
	if scale < 2 {
		scale = 2
	}

	scr := &SDL{
		scale:    int32(scale),
		keyboard: userinput.NewKeyboard(queue),
		back:     framebuffer.New(width, height),
		front:    framebuffer.New(width, height),
		dirty:    true,
		rects:    make([]sdl.Rect, width*height),
	}

	err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS)
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	w := scr.scale*int32(width) + 1
	h := scr.scale*int32(height) + 1

	scr.window, err = sdl.CreateWindow(version.ApplicationName,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		w, h, uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		sdl.Quit()
		return nil, curated.Errorf(SDLError, err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		scr.window.Destroy()
		sdl.Quit()
		return nil, curated.Errorf(SDLError, err)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			scr.rects[y*width+x] = sdl.Rect{
				X: int32(x)*scr.scale + 1,
				Y: int32(y)*scr.scale + 1,
				W: scr.scale - 1,
				H: scr.scale - 1,
			}
		}
	}

	scr.Init(width, height)

	return scr, nil
}

// Update implements the hardware.Sink interface.
func (scr *SDL) Update(frame *framebuffer.Frame) {
	scr.crit.Lock()
	defer scr.crit.Unlock()
	scr.back.Copy(frame)
	scr.dirty = true
}

// Stop implements the hardware.Sink interface. The window is not destroyed
// until Destroy() is called on the main thread.
func (scr *SDL) Stop() {
	scr.Base.Stop(nil)
}

// Destroy releases the SDL resources. Must be called on the main thread.
//
// #mainthread
func (scr *SDL) Destroy(output io.Writer) {
	scr.Quit()

	if err := scr.renderer.Destroy(); err != nil {
		io.WriteString(output, err.Error())
	}
	if err := scr.window.Destroy(); err != nil {
		io.WriteString(output, err.Error())
	}
	sdl.Quit()
}

// Service handles window events and redraws the window if a new frame has
// arrived. Must be called on the main thread. Returns after a short wait if
// there is nothing to do.
//
// #mainthread
func (scr *SDL) Service() {
	for ev := sdl.WaitEventTimeout(serviceWait); ev != nil; ev = sdl.PollEvent() {
		scr.handleEvent(ev)
	}

	scr.crit.Lock()
	dirty := scr.dirty
	if dirty {
		scr.front.Copy(scr.back)
		scr.dirty = false
	}
	scr.crit.Unlock()

	if dirty {
		scr.draw()
	}
}

func (scr *SDL) handleEvent(ev sdl.Event) {
	switch ev := ev.(type) {
	case *sdl.QuitEvent:
		logger.Log(logger.Allow, "sdl", "window has been closed")
		scr.Quit()

	case *sdl.KeyboardEvent:
		scr.keyboard.HandleEvent(userinput.EventKeyboard{
			Key:    sdl.GetKeyName(ev.Keysym.Sym),
			Down:   ev.Type == sdl.KEYDOWN,
			Repeat: ev.Repeat != 0,
		})
		if scr.keyboard.Quit {
			logger.Log(logger.Allow, "sdl", "escape key has been pressed")
			scr.Quit()
		}
	}
}

func (scr *SDL) draw() {
	_ = scr.renderer.SetDrawColor(background, background, background, 255)
	_ = scr.renderer.Clear()

	for i := range scr.rects {
		p := scr.front.Pix[i*framebuffer.Depth:]
		_ = scr.renderer.SetDrawColor(p[0], p[1], p[2], 255)
		_ = scr.renderer.FillRect(&scr.rects[i])
	}

	scr.renderer.Present()
}
