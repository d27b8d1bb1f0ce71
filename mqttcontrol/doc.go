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

// Package mqttcontrol connects the sign to an MQTT broker. Commands are
// received as plain text messages on the control topic, for example
// "flash_on" or "toggle_power", and the status of the sign is published as
// JSON to the status topic at a regular interval. Status messages are
// retained by the broker so that new subscribers see the most recent status
// immediately.
//
// The connection to the broker is re-established automatically if it is lost.
package mqttcontrol
