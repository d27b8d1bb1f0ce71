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

package userinput

import (
	"strings"
	"sync"

	"github.com/ledcylinder/ledcylinder/command"
)

// List of key names recognised by Keyboard.
const (
	KeyFlash  = "i"
	KeyPower  = "o"
	KeyEscape = "escape"
)

// EventKeyboard is a key press or a key release.
type EventKeyboard struct {
	// name of the key. case is not significant
	Key string

	// true for key press, false for key release
	Down bool

	// the event is an auto-repeat of a key that is already down. devices
	// that do not report repeats can leave this false because Keyboard keeps
	// track of which keys are down
	Repeat bool
}

// Keyboard keeps track of key state and pushes commands to a queue.
type Keyboard struct {
	queue *command.Queue

	crit    sync.Mutex
	pressed map[string]bool

	// the most recent event was a quit request
	Quit bool
}

// NewKeyboard is the preferred method of initialisation for the Keyboard type.
func NewKeyboard(queue *command.Queue) *Keyboard {
	return &Keyboard{
		queue:   queue,
		pressed: make(map[string]bool),
	}
}

// HandleEvent handles a keyboard event. Returns true if the event resulted in a
// command being pushed to the queue or in a quit request.
func (kb *Keyboard) HandleEvent(ev EventKeyboard) bool {
	kb.crit.Lock()
	defer kb.crit.Unlock()

	kb.Quit = false

	key := strings.ToLower(ev.Key)

	if ev.Repeat {
		return false
	}

	// a press of a key that is already down is a repeat that the device did
	// not identify as such. a release of a key that is not down is ignored for
	// the same reason
	if ev.Down == kb.pressed[key] {
		return false
	}
	kb.pressed[key] = ev.Down

	switch key {
	case KeyFlash:
		if ev.Down {
			kb.queue.Push(command.FlashOn)
		} else {
			kb.queue.Push(command.FlashOff)
		}
		return true

	case KeyPower:
		if ev.Down {
			kb.queue.Push(command.TogglePower)
			return true
		}

	case KeyEscape:
		if !ev.Down {
			kb.Quit = true
			return true
		}
	}

	return false
}
