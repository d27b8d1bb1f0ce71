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

// Package hardware defines the contract between the sign controller and the
// device that displays its frames. The subpackages contain the
// implementations: a real USB sign, an Open Pixel Control server, an SDL
// window, a terminal and a headless sink for tests and checks.
//
// The controller calls Update() exactly once per tick and polls Running() at
// the top of every tick. Once Running() has returned false it calls Stop()
// and never calls Update() again.
package hardware
