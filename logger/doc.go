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

// Package logger is the central log for ledcylinder. Every component logs
// through it with a tag naming the component and a detail string.
//
// The log is bounded. Once the maximum number of entries has been reached the
// oldest entries are discarded, so a sign running for weeks does not grow its
// log without limit. Consecutive identical entries are collapsed into one
// entry with a repeat count.
//
// Entries can be echoed to an io.Writer as they arrive with SetEcho(). This is
// how the -log command line flag is implemented.
//
// The Permission argument to Log() and Logf() allows a caller to suppress
// logging in contexts where it would be too noisy. Most callers should use
// logger.Allow.
package logger
