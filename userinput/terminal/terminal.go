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

// Package terminal reads single key presses from the controlling terminal.
// It is useful when the sign is driven from a machine with no other keyboard
// device, for example over ssh.
//
// If the input is a terminal it is put into cbreak mode so that key presses
// are delivered immediately without echo. The terminal is restored when the
// producer finishes.
package terminal

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/ledcylinder/ledcylinder/command"
	"github.com/ledcylinder/ledcylinder/logger"
	"github.com/ledcylinder/ledcylinder/userinput"
)

// DefaultFlashHold is the length of a flash started by the i key. Terminals do
// not report key releases.
const DefaultFlashHold = 250 * time.Millisecond

// Terminal implements the command.Producer interface.
type Terminal struct {
	input *os.File
	hold  time.Duration
}

// NewTerminal is the preferred method of initialisation for the Terminal type.
func NewTerminal(input *os.File) *Terminal {
	return &Terminal{
		input: input,
		hold:  DefaultFlashHold,
	}
}

// Run implements the command.Producer interface. It returns when the context
// is done or when the input ends.
func (t *Terminal) Run(ctx context.Context, q *command.Queue) error {
	fd := t.input.Fd()

	if term.IsTerminal(int(fd)) {
		var canAttr unix.Termios
		if err := termios.Tcgetattr(fd, &canAttr); err != nil {
			logger.Logf(logger.Allow, "term", "cannot read terminal attributes: %v", err)
		} else {
			cbreakAttr := canAttr
			termios.Cfmakecbreak(&cbreakAttr)
			if err := termios.Tcsetattr(fd, termios.TCSANOW, &cbreakAttr); err != nil {
				logger.Logf(logger.Allow, "term", "cannot set cbreak mode: %v", err)
			}
			defer termios.Tcsetattr(fd, termios.TCSANOW, &canAttr)
		}
	}

	// reading from the terminal can not be interrupted. the reading goroutine
	// is abandoned if the context finishes first
	done := make(chan error, 1)
	go func() {
		done <- ReadKeys(t.input, userinput.NewKeyboard(q), t.hold)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-done:
		if err == io.EOF {
			return nil
		}
		logger.Logf(logger.Allow, "term", "%v", err)
		return err
	}
}

// ReadKeys reads bytes from the reader and passes each one to the keyboard as
// a key press and release. The flash key is held for the hold duration.
// Returns io.EOF when the reader is exhausted.
func ReadKeys(r io.Reader, kb *userinput.Keyboard, hold time.Duration) error {
	var crit sync.Mutex
	var release *time.Timer

	buf := make([]byte, 1)
	for {
		if _, err := r.Read(buf); err != nil {
			return err
		}

		key := string(buf)
		switch key {
		case userinput.KeyFlash, "I":
			crit.Lock()
			kb.HandleEvent(userinput.EventKeyboard{Key: key, Down: true})
			if release != nil {
				release.Stop()
			}
			release = time.AfterFunc(hold, func() {
				crit.Lock()
				defer crit.Unlock()
				kb.HandleEvent(userinput.EventKeyboard{Key: userinput.KeyFlash, Down: false})
			})
			crit.Unlock()
		default:
			kb.HandleEvent(userinput.EventKeyboard{Key: key, Down: true})
			kb.HandleEvent(userinput.EventKeyboard{Key: key, Down: false})
		}
	}
}
