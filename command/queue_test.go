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

package command_test

import (
	"sync"
	"testing"

	"github.com/ledcylinder/ledcylinder/command"
	"github.com/ledcylinder/ledcylinder/curated"
	"github.com/ledcylinder/ledcylinder/test"
)

func TestParse(t *testing.T) {
	for _, c := range []command.Command{command.FlashOn, command.FlashOff, command.TogglePower} {
		p, err := command.Parse(c.String())
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, p, c)
	}

	p, err := command.Parse("  FLASH_ON\n")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, command.FlashOn)

	_, err = command.Parse("reboot")
	test.ExpectSuccess(t, curated.Is(err, command.UnknownCommand))
}

func TestDrainOrder(t *testing.T) {
	var q command.Queue

	// draining an empty queue does nothing and does not block
	q.Drain(func(c command.Command) {
		t.Errorf("unexpected command from empty queue: %s", c)
	})

	q.Push(command.TogglePower)
	q.Push(command.FlashOn)
	q.Push(command.FlashOff)
	test.ExpectEquality(t, q.Len(), 3)

	var got []command.Command
	q.Drain(func(c command.Command) {
		got = append(got, c)
	})
	test.ExpectEquality(t, len(got), 3)
	test.ExpectEquality(t, got[0], command.TogglePower)
	test.ExpectEquality(t, got[1], command.FlashOn)
	test.ExpectEquality(t, got[2], command.FlashOff)
	test.ExpectEquality(t, q.Len(), 0)
}

func TestPushDuringDrain(t *testing.T) {
	var q command.Queue
	q.Push(command.FlashOn)

	n := 0
	q.Drain(func(c command.Command) {
		n++
		q.Push(command.FlashOff)
	})
	test.ExpectEquality(t, n, 1)
	test.ExpectEquality(t, q.Len(), 1)

	q.Drain(func(c command.Command) {
		test.ExpectEquality(t, c, command.FlashOff)
	})
	test.ExpectEquality(t, q.Len(), 0)
}

func TestConcurrentProducers(t *testing.T) {
	var q command.Queue

	const producers = 8
	const each = 1000

	var wg sync.WaitGroup
	for range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range each {
				q.Push(command.TogglePower)
			}
		}()
	}

	// consume concurrently with the producers
	total := 0
	done := make(chan bool)
	go func() {
		wg.Wait()
		close(done)
	}()

	for {
		q.Drain(func(_ command.Command) {
			total++
		})
		select {
		case <-done:
			q.Drain(func(_ command.Command) {
				total++
			})
			test.ExpectEquality(t, total, producers*each)
			return
		default:
		}
	}
}
