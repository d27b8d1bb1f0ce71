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

// Package sign contains the controller at the centre of the program. The
// controller owns a list of pages, decides which of them is visible, blends
// between pages when the visible page changes, applies the operator overrides
// (flash and blackout) and hands one frame per tick to the hardware sink.
//
// The controller's state is either Single, showing one page, or Transition,
// cross-fading from one page to another:
//
//	Single(i) ---page time expires---> Transition(i, next, fade time)
//	Transition(a, b, remaining) ---remaining expires---> Single(b)
//
// Operator commands arrive through a command.Queue and are applied at the
// start of the next tick. Everything else about the controller, including the
// pages, is owned by the goroutine calling Run() or Step().
package sign
