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

// Package framebuffer defines the Frame type, the unit of pixel data exchanged
// between pages, the sign controller and the hardware sinks.
//
// A Frame is a fixed size grid of RGB byte triples. Pixel data is stored in a
// single contiguous slice, row by row, three bytes per pixel. This is also the
// byte order expected by the USB sign hardware so a Frame can be written to
// the device without conversion.
package framebuffer

// Depth is the number of bytes per pixel.
const Depth = 3

// Frame represents the RGB values for every LED in the display.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
}

// New creates a new black frame of the specified size.
func New(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*Depth),
	}
}

// NewFilled creates a new frame with every pixel set to the specified colour.
func NewFilled(width, height int, r, g, b uint8) *Frame {
	fr := New(width, height)
	fr.Fill(r, g, b)
	return fr
}

// offset returns the index into Pix of the first byte of the pixel at x, y.
func (fr *Frame) offset(x, y int) int {
	return (y*fr.Width + x) * Depth
}

// At returns the colour of the pixel at x, y.
func (fr *Frame) At(x, y int) (uint8, uint8, uint8) {
	i := fr.offset(x, y)
	return fr.Pix[i], fr.Pix[i+1], fr.Pix[i+2]
}

// Set the colour of the pixel at x, y.
func (fr *Frame) Set(x, y int, r, g, b uint8) {
	i := fr.offset(x, y)
	fr.Pix[i] = r
	fr.Pix[i+1] = g
	fr.Pix[i+2] = b
}

// Fill every pixel with the specified colour.
func (fr *Frame) Fill(r, g, b uint8) {
	for i := 0; i < len(fr.Pix); i += Depth {
		fr.Pix[i] = r
		fr.Pix[i+1] = g
		fr.Pix[i+2] = b
	}
}

// SameSize returns true if both frames have the same dimensions.
func (fr *Frame) SameSize(other *Frame) bool {
	return fr.Width == other.Width && fr.Height == other.Height
}

// Copy sets the pixels of the frame to those of the orig frame. The frames
// must be the same size.
func (fr *Frame) Copy(orig *Frame) {
	copy(fr.Pix, orig.Pix)
}

// Clone returns a new frame with the same size and content.
func (fr *Frame) Clone() *Frame {
	c := New(fr.Width, fr.Height)
	c.Copy(fr)
	return c
}

// Equal returns true if both frames have the same size and content.
func (fr *Frame) Equal(other *Frame) bool {
	if !fr.SameSize(other) {
		return false
	}
	for i := range fr.Pix {
		if fr.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

// Max returns the brightest channel value anywhere in the frame.
func (fr *Frame) Max() uint8 {
	var m uint8
	for _, v := range fr.Pix {
		if v > m {
			m = v
		}
	}
	return m
}

// RollInto writes the frame into dst, circularly shifted along the horizontal
// axis by shift pixels. A positive shift moves the content to the right, with
// the pixels that fall off the right edge reappearing on the left.
//
// dst must be the same size as the frame and must not be the same frame.
func (fr *Frame) RollInto(dst *Frame, shift int) {
	if fr.Width == 0 {
		return
	}

	shift %= fr.Width
	if shift < 0 {
		shift += fr.Width
	}

	row := fr.Width * Depth
	split := (fr.Width - shift) * Depth
	for y := 0; y < fr.Height; y++ {
		src := fr.Pix[y*row : (y+1)*row]
		d := dst.Pix[y*row : (y+1)*row]
		copy(d[shift*Depth:], src[:split])
		copy(d[:shift*Depth], src[split:])
	}
}
