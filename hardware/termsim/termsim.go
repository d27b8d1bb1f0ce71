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

// Package termsim simulates the LED sign in a terminal. Each LED is drawn as
// two character cells with a true-colour background.
//
// The keyboard can be used to send commands to the sign:
//
//	i		flash briefly
//	o		toggle power
//	ESC, Ctrl-C	quit
//
// Terminals do not report key releases so a flash lasts for a fixed time.
package termsim

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ledcylinder/ledcylinder/command"
	"github.com/ledcylinder/ledcylinder/curated"
	"github.com/ledcylinder/ledcylinder/framebuffer"
	"github.com/ledcylinder/ledcylinder/hardware"
	"github.com/ledcylinder/ledcylinder/logger"
	"github.com/ledcylinder/ledcylinder/userinput"
)

// TermError is the error pattern for terminal problems.
const TermError = "term: %v"

// DefaultFlashHold is the length of a flash started by the i key.
const DefaultFlashHold = 250 * time.Millisecond

// Term implements the hardware.Sink interface for a terminal.
type Term struct {
	hardware.Base

	screen   tcell.Screen
	keyboard *userinput.Keyboard

	hold time.Duration

	// the event loop has finished
	done chan bool

	// the pending key release for the flash key. restarted if i is pressed
	// again before the hold has expired
	crit      sync.Mutex
	flashStop *time.Timer
}

// NewTerm creates a terminal display on the default tcell screen.
func NewTerm(width int, height int, queue *command.Queue) (*Term, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, curated.Errorf(TermError, err)
	}
	return NewTermWithScreen(screen, width, height, queue, DefaultFlashHold)
}

// NewTermWithScreen creates a terminal display on the screen. The screen must
// not have been initialised.
func NewTermWithScreen(screen tcell.Screen, width int, height int, queue *command.Queue, hold time.Duration) (*Term, error) {
	if err := screen.Init(); err != nil {
		return nil, curated.Errorf(TermError, err)
	}
	screen.HideCursor()
	screen.Clear()

	t := &Term{
		screen:   screen,
		keyboard: userinput.NewKeyboard(queue),
		hold:     hold,
		done:     make(chan bool),
	}
	t.Init(width, height)

	go t.events()

	return t, nil
}

func (t *Term) events() {
	defer close(t.done)

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			// the screen has been finalised
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				logger.Log(logger.Allow, "term", "quit key has been pressed")
				t.Quit()
			case tcell.KeyRune:
				switch key := string(ev.Rune()); key {
				case userinput.KeyFlash, "I":
					t.flash()
				default:
					// terminals only report key presses
					t.keyboard.HandleEvent(userinput.EventKeyboard{Key: key, Down: true})
					t.keyboard.HandleEvent(userinput.EventKeyboard{Key: key, Down: false})
				}
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *Term) flash() {
	t.crit.Lock()
	defer t.crit.Unlock()

	t.keyboard.HandleEvent(userinput.EventKeyboard{Key: userinput.KeyFlash, Down: true})

	if t.flashStop != nil {
		t.flashStop.Stop()
	}
	t.flashStop = time.AfterFunc(t.hold, func() {
		t.keyboard.HandleEvent(userinput.EventKeyboard{Key: userinput.KeyFlash, Down: false})
	})
}

// Update implements the hardware.Sink interface.
func (t *Term) Update(frame *framebuffer.Frame) {
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			r, g, b := frame.At(x, y)
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
			t.screen.SetContent(x*2, y, ' ', nil, style)
			t.screen.SetContent(x*2+1, y, ' ', nil, style)
		}
	}
	t.screen.Show()
}

// Stop implements the hardware.Sink interface. The terminal is restored to
// its normal state.
func (t *Term) Stop() {
	t.Base.Stop(func() {
		t.screen.Fini()
		<-t.done

		t.crit.Lock()
		defer t.crit.Unlock()
		if t.flashStop != nil {
			t.flashStop.Stop()
		}
	})
}
