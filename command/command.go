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

package command

import (
	"context"
	"strings"

	"github.com/ledcylinder/ledcylinder/curated"
)

// UnknownCommand is the error pattern returned by Parse().
const UnknownCommand = "command: unknown command (%s)"

// Command is an operator instruction to the sign controller.
type Command int

// List of valid Command values.
const (
	// the sign shows an all-white frame until FlashOff
	FlashOn Command = iota
	FlashOff

	// switch between normal output and blackout
	TogglePower
)

func (c Command) String() string {
	switch c {
	case FlashOn:
		return "flash_on"
	case FlashOff:
		return "flash_off"
	case TogglePower:
		return "toggle_power"
	}
	return "unknown"
}

// Parse converts the string representation of a command, as returned by
// String(), back into a Command. Case and surrounding space are ignored.
func Parse(s string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flash_on":
		return FlashOn, nil
	case "flash_off":
		return FlashOff, nil
	case "toggle_power":
		return TogglePower, nil
	}
	return 0, curated.Errorf(UnknownCommand, s)
}

// Producer is implemented by input collaborators that push commands onto a
// Queue. Run should block until the context is cancelled or the producer
// fails. Producer failures are the producer's own concern and are never seen
// by the sign controller.
type Producer interface {
	Run(ctx context.Context, q *Queue) error
}
