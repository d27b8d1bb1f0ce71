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

package evdev_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/ledcylinder/ledcylinder/command"
	"github.com/ledcylinder/ledcylinder/curated"
	"github.com/ledcylinder/ledcylinder/test"
	"github.com/ledcylinder/ledcylinder/userinput"
	"github.com/ledcylinder/ledcylinder/userinput/evdev"
)

// append an input_event to the buffer. the timeval fills everything before
// the last eight bytes of the event
func event(buf *bytes.Buffer, typ uint16, code uint16, value int32) {
	b := make([]byte, evdev.EventSize)
	for i := range evdev.EventSize - 8 {
		b[i] = 0xff
	}
	tv := evdev.EventSize - 8
	binary.NativeEndian.PutUint16(b[tv:], typ)
	binary.NativeEndian.PutUint16(b[tv+2:], code)
	binary.NativeEndian.PutUint32(b[tv+4:], uint32(value))
	buf.Write(b)
}

const (
	evSyn = 0
	evKey = 1
	keyI  = 23
	keyO  = 24
	keyQ  = 16
)

func TestReadEvents(t *testing.T) {
	var buf bytes.Buffer

	event(&buf, evKey, keyI, 1)
	event(&buf, evSyn, 0, 0)
	event(&buf, evKey, keyI, 2)
	event(&buf, evKey, keyI, 2)
	event(&buf, evKey, keyQ, 1)
	event(&buf, evKey, keyI, 0)
	event(&buf, evKey, keyO, 1)
	event(&buf, evKey, keyO, 2)
	event(&buf, evKey, keyO, 0)
	event(&buf, evKey, keyO, 1)

	q := &command.Queue{}
	err := evdev.ReadEvents(&buf, userinput.NewKeyboard(q))
	test.ExpectSuccess(t, errors.Is(err, io.EOF))

	var got []command.Command
	q.Drain(func(c command.Command) {
		got = append(got, c)
	})

	test.DemandEquality(t, len(got), 4)
	test.ExpectEquality(t, got[0], command.FlashOn)
	test.ExpectEquality(t, got[1], command.FlashOff)
	test.ExpectEquality(t, got[2], command.TogglePower)
	test.ExpectEquality(t, got[3], command.TogglePower)
}

func TestEventSize(t *testing.T) {
	// a timeval is two longs
	switch unsafe.Sizeof(uintptr(0)) {
	case 8:
		test.ExpectEquality(t, evdev.EventSize, 24)
	case 4:
		test.ExpectEquality(t, evdev.EventSize, 16)
	}
}

func TestEventSequence(t *testing.T) {
	// events are read back to back. a layout of the wrong size would misread
	// every event after the first
	var buf bytes.Buffer
	for range 5 {
		event(&buf, evKey, keyO, 1)
		event(&buf, evKey, keyO, 0)
	}

	q := &command.Queue{}
	err := evdev.ReadEvents(&buf, userinput.NewKeyboard(q))
	test.ExpectSuccess(t, errors.Is(err, io.EOF))
	test.ExpectEquality(t, q.Len(), 5)
}

func TestShortRead(t *testing.T) {
	buf := bytes.NewBuffer(make([]byte, evdev.EventSize+evdev.EventSize/2))
	err := evdev.ReadEvents(buf, userinput.NewKeyboard(&command.Queue{}))
	test.ExpectSuccess(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestMissingDevice(t *testing.T) {
	ev := evdev.NewEvdev(filepath.Join(t.TempDir(), "event99"))
	err := ev.Run(context.Background(), &command.Queue{})
	test.ExpectSuccess(t, curated.Is(err, evdev.EvdevError))
}
