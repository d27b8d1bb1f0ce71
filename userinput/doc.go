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

// Package userinput translates key presses from the devices that an operator
// can use to control the sign into sign commands. It is the layer between the
// device readers (the evdev and terminal subpackages, the simulator windows)
// and the command queue.
//
// The same key bindings are used everywhere:
//
//	i	flash while held down
//	o	toggle power
//	escape	quit (simulators only)
package userinput
