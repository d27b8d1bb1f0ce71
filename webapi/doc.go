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

// Package webapi is a HTTP interface to the sign controller. The status of
// the sign is available as JSON from the root path and the flash and output
// of the sign can be controlled with simple GET requests. For example:
//
//	curl http://localhost:8080/flash_on
//	curl http://localhost:8080/
//
// Control requests respond with the text "ok".
//
// The command set of the sign is closed so the /output_on and /output_off
// paths push a TogglePower command only if the output would otherwise end up
// different to the one requested. Toggles pushed by earlier output requests
// that are not yet reflected in the status are taken into account, so
// repeating a request has no further effect. TogglePower commands from
// elsewhere are not tracked.
package webapi
