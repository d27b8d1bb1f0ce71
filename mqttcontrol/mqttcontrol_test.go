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

package mqttcontrol_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ledcylinder/ledcylinder/command"
	"github.com/ledcylinder/ledcylinder/curated"
	"github.com/ledcylinder/ledcylinder/mqttcontrol"
	"github.com/ledcylinder/ledcylinder/sign"
	"github.com/ledcylinder/ledcylinder/test"
)

type fixedStatus struct{}

func (fixedStatus) Status() sign.Status {
	return sign.Status{Pages: []int{0}, Output: true}
}

func TestHandlePayload(t *testing.T) {
	q := &command.Queue{}

	test.ExpectSuccess(t, mqttcontrol.HandlePayload([]byte("flash_on"), q))
	test.ExpectSuccess(t, mqttcontrol.HandlePayload([]byte(" FLASH_OFF\n"), q))
	test.ExpectSuccess(t, mqttcontrol.HandlePayload([]byte("toggle_power"), q))
	test.ExpectFailure(t, mqttcontrol.HandlePayload([]byte("self_destruct"), q))
	test.ExpectFailure(t, mqttcontrol.HandlePayload(nil, q))

	var cmds []command.Command
	q.Drain(func(c command.Command) {
		cmds = append(cmds, c)
	})
	test.DemandEquality(t, len(cmds), 3)
	test.ExpectEquality(t, cmds[0], command.FlashOn)
	test.ExpectEquality(t, cmds[1], command.FlashOff)
	test.ExpectEquality(t, cmds[2], command.TogglePower)
}

func TestClientID(t *testing.T) {
	a := mqttcontrol.NewControl(mqttcontrol.Options{Broker: "localhost:1883"}, fixedStatus{})
	b := mqttcontrol.NewControl(mqttcontrol.Options{Broker: "localhost:1883"}, fixedStatus{})
	test.ExpectSuccess(t, strings.HasPrefix(a.ClientID(), "ledcylinder-"))
	test.ExpectInequality(t, a.ClientID(), b.ClientID())
}

func TestNoBroker(t *testing.T) {
	// nothing should be listening on port 1
	c := mqttcontrol.NewControl(mqttcontrol.Options{
		Broker:   "127.0.0.1:1",
		Interval: time.Second,
	}, fixedStatus{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := c.Run(ctx, &command.Queue{})
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, mqttcontrol.ConnectError))
}
