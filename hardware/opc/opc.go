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

// Package opc sends frames to an Open Pixel Control server, such as the
// Fadecandy server. Pixels are sent on a single channel in row-major order.
//
// A frame that is identical to the previous frame is not sent. The connection
// to the server is retried if it fails.
package opc

import (
	"bytes"
	"time"

	"github.com/cnf/structhash"
	goopc "github.com/kellydunn/go-opc"

	"github.com/ledcylinder/ledcylinder/framebuffer"
	"github.com/ledcylinder/ledcylinder/hardware"
	"github.com/ledcylinder/ledcylinder/logger"
)

// DefaultAddress is the address the Fadecandy server listens on by default.
const DefaultAddress = "localhost:7890"

// the minimum time between attempts to connect to the server
const retryInterval = time.Second

// OPC implements the hardware.Sink interface for an Open Pixel Control server.
type OPC struct {
	hardware.Base

	address string
	channel uint8

	client    *goopc.Client
	lastRetry time.Time

	// the message is reused for every frame
	msg *goopc.Message

	// hash of the most recently sent frame
	last []byte
}

// NewOPC is the preferred method of initialisation for the OPC type. Failing
// to connect is not an error. The connection is retried on every update,
// but not more than once a second.
func NewOPC(address string, width int, height int) *OPC {
	o := &OPC{
		address: address,
		msg:     goopc.NewMessage(0),
	}
	o.msg.SetLength(uint16(width * height * framebuffer.Depth))
	o.Init(width, height)
	o.connect()
	return o
}

func (o *OPC) connect() bool {
	if o.client != nil {
		return true
	}
	if time.Since(o.lastRetry) < retryInterval {
		return false
	}
	o.lastRetry = time.Now()

	c := goopc.NewClient()
	if err := c.Connect("tcp", o.address); err != nil {
		logger.Logf(logger.Allow, "opc", "connect: %v", err)
		return false
	}
	o.client = c
	o.last = nil

	logger.Logf(logger.Allow, "opc", "connected to %s", o.address)
	return true
}

// Update implements the hardware.Sink interface.
func (o *OPC) Update(frame *framebuffer.Frame) {
	if !o.connect() {
		return
	}

	hash := structhash.Md5(frame, 1)
	if bytes.Equal(hash, o.last) {
		return
	}

	for i := 0; i < frame.Width*frame.Height; i++ {
		p := frame.Pix[i*framebuffer.Depth:]
		o.msg.SetPixelColor(i, p[0], p[1], p[2])
	}

	if err := o.client.Send(o.msg); err != nil {
		logger.Logf(logger.Allow, "opc", "send: %v", err)
		o.client = nil
		return
	}
	o.last = hash
}

// Stop implements the hardware.Sink interface.
func (o *OPC) Stop() {
	o.Base.Stop(nil)
}
