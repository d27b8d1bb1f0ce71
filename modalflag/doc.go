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

// Package modalflag wraps the flag package from the standard library to
// handle programs with several modes of operation, each with its own flags.
//
// Arguments are given once with NewArgs() and are then consumed by successive
// calls to Parse(). The flags for a mode are added before the call to Parse()
// for that mode:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "CHECK", "PERFORMANCE")
//
//	p, err := md.Parse()
//	if p != modalflag.ParseContinue {
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		fps := md.AddInt("fps", 60, "frames per second")
//		p, err := md.Parse()
//		...
//	}
//
// A mode is selected by the first argument after the flags of the previous
// mode. If the argument does not name one of the sub-modes then the first
// sub-mode is the default. Mode names are not case sensitive and Mode()
// always returns them in upper case. Path() returns every mode selected so
// far, which is useful for error messages.
//
// The -help flag is handled by Parse(), which writes a usage message for the
// current mode to Output and returns ParseHelp.
//
// Flags can also be taken from the environment by setting the EnvPrefix field.
// A flag that is not given on the command line is set from the environment
// variable named by EnvName(), if that variable exists:
//
//	md := modalflag.Modes{Output: os.Stdout, EnvPrefix: "LEDCYLINDER_"}
//
// With this prefix, LEDCYLINDER_FPS=30 sets the fps flag to 30 unless -fps is
// given on the command line. Values on the command line always take
// precedence. Flags set from the environment are reported by Visit() in the
// same way as flags set on the command line.
package modalflag
