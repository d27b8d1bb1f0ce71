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

// Package evdev reads key presses from a Linux input device, such as a USB
// keypad attached to the sign's controller. The device is grabbed so that key
// presses are not also delivered to the console.
package evdev

import (
	"context"
	"encoding/binary"
	"io"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/ledcylinder/ledcylinder/command"
	"github.com/ledcylinder/ledcylinder/curated"
	"github.com/ledcylinder/ledcylinder/logger"
	"github.com/ledcylinder/ledcylinder/userinput"
)

// EvdevError is the error pattern for problems with the input device.
const EvdevError = "evdev: %s: %v"

// struct input_event is a timeval followed by type, code and value. the size
// of the timeval differs between 32-bit and 64-bit userspace
const timevalSize = int(unsafe.Sizeof(unix.Timeval{}))

// EventSize is the size of struct input_event on this platform.
const EventSize = timevalSize + 8

// offsets of the fields after the timeval
const (
	offsetType  = timevalSize
	offsetCode  = timevalSize + 2
	offsetValue = timevalSize + 4
)

// from linux/input-event-codes.h
const (
	evKey = 0x01
	keyI  = 23
	keyO  = 24
)

// _IOW('E', 0x90, int)
const eviocgrab = 0x40044590

// event values for EV_KEY
const (
	valueRelease = 0
	valuePress   = 1
	valueRepeat  = 2
)

var keyNames = map[uint16]string{
	keyI: userinput.KeyFlash,
	keyO: userinput.KeyPower,
}

// Evdev implements the command.Producer interface.
type Evdev struct {
	path string
}

// NewEvdev is the preferred method of initialisation for the Evdev type. The
// path is usually of the form /dev/input/eventN.
func NewEvdev(path string) *Evdev {
	return &Evdev{path: path}
}

// Run implements the command.Producer interface. It returns when the context
// is done or when reading from the device fails.
func (ev *Evdev) Run(ctx context.Context, q *command.Queue) error {
	f, err := os.Open(ev.path)
	if err != nil {
		err = curated.Errorf(EvdevError, ev.path, err)
		logger.Log(logger.Allow, "evdev", err.Error())
		return err
	}
	defer f.Close()

	err = unix.IoctlSetInt(int(f.Fd()), eviocgrab, 1)
	if err != nil {
		logger.Logf(logger.Allow, "evdev", "%s: could not grab device: %v", ev.path, err)
	}

	// closing the file unblocks the read
	stop := context.AfterFunc(ctx, func() {
		f.Close()
	})
	defer stop()

	logger.Logf(logger.Allow, "evdev", "reading keys from %s", ev.path)

	err = ReadEvents(f, userinput.NewKeyboard(q))
	if ctx.Err() != nil {
		return nil
	}

	err = curated.Errorf(EvdevError, ev.path, err)
	logger.Log(logger.Allow, "evdev", err.Error())
	return err
}

// ReadEvents reads input events from the reader until it fails. Key events for
// the sign's keys are passed to the keyboard. A reader that ends cleanly
// returns io.EOF.
func ReadEvents(r io.Reader, kb *userinput.Keyboard) error {
	buf := make([]byte, EventSize)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return err
		}

		if binary.NativeEndian.Uint16(buf[offsetType:]) != evKey {
			continue
		}

		key, ok := keyNames[binary.NativeEndian.Uint16(buf[offsetCode:])]
		if !ok {
			continue
		}

		switch int32(binary.NativeEndian.Uint32(buf[offsetValue:])) {
		case valuePress:
			kb.HandleEvent(userinput.EventKeyboard{Key: key, Down: true})
		case valueRelease:
			kb.HandleEvent(userinput.EventKeyboard{Key: key, Down: false})
		case valueRepeat:
			kb.HandleEvent(userinput.EventKeyboard{Key: key, Down: true, Repeat: true})
		}
	}
}
