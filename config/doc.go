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

// Package config holds the startup parameters of the program as a set of
// named preferences. Values come from three places, in increasing order of
// precedence: the defaults set by NewConfig(), a YAML file read by
// LoadFile() and the command line.
//
// The YAML file mirrors the dotted keys. For example:
//
//	display:
//	  width: 64
//	  brightness: 128
//	sign:
//	  fade: 500ms
//	mqtt:
//	  broker: tcp://localhost:1883
//
// Durations can be given as a number of seconds or in the form accepted by
// time.ParseDuration().
package config
