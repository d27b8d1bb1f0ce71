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

package termsim_test

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ledcylinder/ledcylinder/command"
	"github.com/ledcylinder/ledcylinder/framebuffer"
	"github.com/ledcylinder/ledcylinder/hardware"
	"github.com/ledcylinder/ledcylinder/hardware/termsim"
	"github.com/ledcylinder/ledcylinder/test"
)

// wait for the event goroutine to push n commands in total
func waitFor(t *testing.T, queue *command.Queue, n int) []command.Command {
	t.Helper()

	var got []command.Command
	deadline := time.Now().Add(2 * time.Second)
	for len(got) < n && time.Now().Before(deadline) {
		queue.Drain(func(c command.Command) {
			got = append(got, c)
		})
		time.Sleep(time.Millisecond)
	}
	return got
}

func TestKeys(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	queue := &command.Queue{}

	term, err := termsim.NewTermWithScreen(screen, 4, 2, queue, 20*time.Millisecond)
	test.DemandSuccess(t, err)
	test.DemandImplements[hardware.Sink](t, term)
	defer term.Stop()

	screen.InjectKey(tcell.KeyRune, 'o', tcell.ModNone)
	got := waitFor(t, queue, 1)
	test.DemandEquality(t, len(got), 1)
	test.ExpectEquality(t, got[0], command.TogglePower)

	// flash off follows flash on after the hold time
	screen.InjectKey(tcell.KeyRune, 'i', tcell.ModNone)
	got = waitFor(t, queue, 2)
	test.DemandEquality(t, len(got), 2)
	test.ExpectEquality(t, got[0], command.FlashOn)
	test.ExpectEquality(t, got[1], command.FlashOff)

	test.ExpectSuccess(t, term.Running())
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	deadline := time.Now().Add(2 * time.Second)
	for term.Running() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	test.ExpectFailure(t, term.Running())
}

func TestUpdate(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	term, err := termsim.NewTermWithScreen(screen, 4, 2, &command.Queue{}, termsim.DefaultFlashHold)
	test.DemandSuccess(t, err)

	fr := framebuffer.New(4, 2)
	fr.Set(1, 0, 10, 20, 30)
	term.Update(fr)

	// every LED is two cells wide
	cells, w, _ := screen.GetContents()
	for _, x := range []int{2, 3} {
		_, bg, _ := cells[x].Style.Decompose()
		test.ExpectEquality(t, bg, tcell.NewRGBColor(10, 20, 30))
	}
	_, bg, _ := cells[w].Style.Decompose()
	test.ExpectEquality(t, bg, tcell.NewRGBColor(0, 0, 0))

	term.Stop()
	term.Stop()
	test.ExpectFailure(t, term.Running())
}
