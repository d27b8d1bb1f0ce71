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

// Package command defines the operator commands accepted by the sign
// controller and the queue used to deliver them.
//
// Commands are produced by any number of input collaborators (a keyboard
// device, the terminal, the web API, MQTT, a simulator window) and consumed by
// the single sign controller goroutine. Producers never touch controller state
// directly. The only thing shared between them is the Queue.
package command
