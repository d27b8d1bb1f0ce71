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

// Package usb drives the LED sign over USB. The sign presents a single vendor
// interface with one bulk OUT endpoint. Every frame is written to the endpoint
// as raw RGB bytes in row-major order. A vendor control request resets the
// sign's write pointer to the first LED.
package usb

import (
	"github.com/google/gousb"

	"github.com/ledcylinder/ledcylinder/curated"
	"github.com/ledcylinder/ledcylinder/framebuffer"
	"github.com/ledcylinder/ledcylinder/hardware"
	"github.com/ledcylinder/ledcylinder/logger"
)

// Identifiers of the sign on the USB bus.
const (
	VendorID  gousb.ID = 0xcafe
	ProductID gousb.ID = 0x4010
)

// The dimensions of the sign in LEDs.
const (
	DefaultWidth  = 128
	DefaultHeight = 8
)

const (
	// vendor request, host to device
	requestType = 0x40

	// the request that resets the write pointer
	requestResetPointer = 0

	// the endpoint that frame data is written to
	outEndpoint = 1
)

// Error patterns for the usb package.
const (
	DeviceNotFound = "usb: sign not found (%s:%s)"
	DeviceError    = "usb: %v"
)

// USB implements the hardware.Sink interface for the real sign.
type USB struct {
	hardware.Base

	ctx  *gousb.Context
	dev  *gousb.Device
	done func()
	out  *gousb.OutEndpoint
}

// NewUSB opens the sign. The width and height should normally be
// DefaultWidth and DefaultHeight.
func NewUSB(width int, height int) (*USB, error) {
	u := &USB{
		ctx: gousb.NewContext(),
	}

	var err error

	u.dev, err = u.ctx.OpenDeviceWithVIDPID(VendorID, ProductID)
	if err != nil {
		u.ctx.Close()
		return nil, curated.Errorf(DeviceError, err)
	}
	if u.dev == nil {
		u.ctx.Close()
		return nil, curated.Errorf(DeviceNotFound, VendorID, ProductID)
	}

	// the kernel may have claimed the interface
	err = u.dev.SetAutoDetach(true)
	if err != nil {
		logger.Logf(logger.Allow, "usb", "auto detach: %v", err)
	}

	// configuration 1, interface 0, alternate setting 0
	intf, done, err := u.dev.DefaultInterface()
	if err != nil {
		u.dev.Close()
		u.ctx.Close()
		return nil, curated.Errorf(DeviceError, err)
	}
	u.done = done

	_, err = u.dev.Control(requestType, requestResetPointer, 0, 0, nil)
	if err != nil {
		u.release()
		return nil, curated.Errorf(DeviceError, err)
	}

	u.out, err = intf.OutEndpoint(outEndpoint)
	if err != nil {
		u.release()
		return nil, curated.Errorf(DeviceError, err)
	}

	u.Init(width, height)

	logger.Logf(logger.Allow, "usb", "opened %s", u.dev)

	return u, nil
}

func (u *USB) release() {
	u.done()
	u.dev.Close()
	u.ctx.Close()
}

// Update implements the hardware.Sink interface.
func (u *USB) Update(frame *framebuffer.Frame) {
	n, err := u.out.Write(frame.Pix)
	if err != nil {
		logger.Logf(logger.Allow, "usb", "write: %v", err)
		return
	}
	if n != len(frame.Pix) {
		logger.Logf(logger.Allow, "usb", "short write: %d of %d bytes", n, len(frame.Pix))
	}
}

// Stop implements the hardware.Sink interface.
func (u *USB) Stop() {
	u.Base.Stop(u.release)
}
