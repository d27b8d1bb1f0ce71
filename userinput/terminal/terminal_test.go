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

package terminal_test

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ledcylinder/ledcylinder/command"
	"github.com/ledcylinder/ledcylinder/test"
	"github.com/ledcylinder/ledcylinder/userinput"
	"github.com/ledcylinder/ledcylinder/userinput/terminal"
)

func TestReadKeys(t *testing.T) {
	q := &command.Queue{}
	kb := userinput.NewKeyboard(q)

	err := terminal.ReadKeys(strings.NewReader("oxoi"), kb, 10*time.Millisecond)
	test.ExpectEquality(t, err, io.EOF)

	var got []command.Command
	deadline := time.Now().Add(2 * time.Second)
	for len(got) < 4 && time.Now().Before(deadline) {
		q.Drain(func(c command.Command) {
			got = append(got, c)
		})
		time.Sleep(time.Millisecond)
	}

	test.DemandEquality(t, len(got), 4)
	test.ExpectEquality(t, got[0], command.TogglePower)
	test.ExpectEquality(t, got[1], command.TogglePower)
	test.ExpectEquality(t, got[2], command.FlashOn)
	test.ExpectEquality(t, got[3], command.FlashOff)
}
