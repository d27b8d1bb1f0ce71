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

// Package page implements the content shown on the sign. A Page is either a
// Static image or a timed Animation. Both variants advance in time with
// Tick() and produce a frame with Render().
//
// Every page scrolls horizontally. The scroll offset is a real value in the
// range [0, width) and is advanced by the scroll increment on every call to
// Render(). The rendered frame is the page content rotated (not cropped) by
// the rounded offset. A page with an increment of zero and an offset of zero
// is rendered without the rotation step.
//
// The frame returned by Render() belongs to the page and is only valid until
// the next call to Render(). It must not be modified.
package page
