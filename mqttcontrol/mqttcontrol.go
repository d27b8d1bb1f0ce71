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

package mqttcontrol

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/ledcylinder/ledcylinder/command"
	"github.com/ledcylinder/ledcylinder/curated"
	"github.com/ledcylinder/ledcylinder/logger"
	"github.com/ledcylinder/ledcylinder/sign"
)

// Sentinal errors.
const (
	ConnectError   = "mqtt: connect: %v"
	SubscribeError = "mqtt: subscribe: %v"
)

// default topics and status interval.
const (
	DefaultControlTopic = "ledcylinder/control"
	DefaultStatusTopic  = "ledcylinder/status"
	DefaultInterval     = time.Second
)

// how long to wait for the broker to acknowledge a request.
const ackTimeout = 5 * time.Second

// StatusProvider returns the current status of the sign. It is implemented by
// sign.Controller.
type StatusProvider interface {
	Status() sign.Status
}

// Options for the MQTT connection.
type Options struct {
	// address of broker. the tcp scheme is assumed if none is given
	Broker string

	ControlTopic string
	StatusTopic  string

	// time between status messages. status is not published if the interval
	// is zero or less
	Interval time.Duration
}

// Control implements the command.Producer interface.
type Control struct {
	opts   Options
	status StatusProvider
	id     string
}

// NewControl is the preferred method of initialisation for the Control type.
// Empty topics in the options are replaced with the default topic.
func NewControl(opts Options, status StatusProvider) *Control {
	if opts.ControlTopic == "" {
		opts.ControlTopic = DefaultControlTopic
	}
	if opts.StatusTopic == "" {
		opts.StatusTopic = DefaultStatusTopic
	}
	if !strings.Contains(opts.Broker, "://") {
		opts.Broker = fmt.Sprintf("tcp://%s", opts.Broker)
	}
	return &Control{
		opts:   opts,
		status: status,
		id:     fmt.Sprintf("ledcylinder-%s", uuid.NewString()),
	}
}

// ClientID returns the client ID used when connecting to the broker.
func (c *Control) ClientID() string {
	return c.id
}

// Run implements the command.Producer interface. Returns an error if the
// broker cannot be reached when Run is called. After that, the connection is
// retried until the context is done.
func (c *Control) Run(ctx context.Context, q *command.Queue) error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(c.opts.Broker)
	opts.SetClientID(c.id)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(ackTimeout)
	opts.SetMaxReconnectInterval(30 * time.Second)

	opts.OnConnect = func(client mqtt.Client) {
		logger.Logf(logger.Allow, "mqtt", "connected to %s as %s", c.opts.Broker, c.id)

		// subscriptions do not survive a reconnection to a broker with a clean
		// session so the subscription is made every time
		tok := client.Subscribe(c.opts.ControlTopic, 1, func(_ mqtt.Client, msg mqtt.Message) {
			HandlePayload(msg.Payload(), q)
		})
		go func() {
			if !tok.WaitTimeout(ackTimeout) {
				logger.Log(logger.Allow, "mqtt", curated.Errorf(SubscribeError, "timeout").Error())
				return
			}
			if err := tok.Error(); err != nil {
				logger.Log(logger.Allow, "mqtt", curated.Errorf(SubscribeError, err).Error())
			}
		}()
	}

	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		logger.Logf(logger.Allow, "mqtt", "connection lost: %v", err)
	}

	client := mqtt.NewClient(opts)

	tok := client.Connect()
	if !tok.WaitTimeout(ackTimeout) {
		return curated.Errorf(ConnectError, "timeout")
	}
	if err := tok.Error(); err != nil {
		return curated.Errorf(ConnectError, err)
	}
	defer client.Disconnect(250)

	if c.opts.Interval <= 0 {
		<-ctx.Done()
		return nil
	}

	tick := time.NewTicker(c.opts.Interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			if !client.IsConnectionOpen() {
				continue
			}
			payload, err := json.Marshal(c.status.Status())
			if err != nil {
				logger.Logf(logger.Allow, "mqtt", "%v", err)
				continue
			}
			client.Publish(c.opts.StatusTopic, 0, true, payload)
		}
	}
}

// HandlePayload parses the text of a control message and pushes the command
// to the queue. Unrecognised messages are logged and dropped. Returns true if
// a command was pushed.
func HandlePayload(payload []byte, q *command.Queue) bool {
	cmd, err := command.Parse(string(payload))
	if err != nil {
		logger.Logf(logger.Allow, "mqtt", "%v", err)
		return false
	}
	q.Push(cmd)
	return true
}
