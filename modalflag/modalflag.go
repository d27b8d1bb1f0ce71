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

package modalflag

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// separates the modes in the string returned by Path()
const modeSeparator = "/"

// Modes parses command line arguments that are divided into modes, each mode
// having its own set of flags. Output should be set before the first call to
// Parse() otherwise help messages will not be seen.
type Modes struct {
	// destination for help messages
	Output io.Writer

	// flags that are not set on the command line are taken from the
	// environment if EnvPrefix is not empty. the environment variable for a
	// flag is the prefix followed by the flag name in upper case, with any
	// hyphens replaced by underscores. for example, with a prefix of
	// "LEDCYLINDER_" the flag "page-time" is read from LEDCYLINDER_PAGE_TIME
	EnvPrefix string

	// Parse() has been called since the most recent NewMode()
	parsed bool

	// flags for the current mode. replaced by NewMode()
	flags *flag.FlagSet

	// the full argument list and the index of the first argument that has not
	// been consumed by a previous mode
	args    []string
	argsIdx int

	// the sub-modes available to the next call to Parse(). the first entry is
	// the default
	subModes []string

	// every mode selected so far. never reset
	path []string

	// text appended to the help message of the current mode
	additionalHelp string
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the most recently selected mode.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every mode selected so far, separated by a slash.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs sets the arguments to be parsed and begins a new mode.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.NewMode()
}

// NewMode begins a new mode. Flags and sub-modes added after this call
// apply to the remaining arguments.
func (md *Modes) NewMode() {
	md.subModes = []string{}
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.parsed = false
	md.additionalHelp = ""
}

// AdditionalHelp sets text to be printed after the list of flags when help is
// requested for the current mode.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// Parsed returns true if Parse() has been called since the most recent call
// to NewArgs() or NewMode(). A failed Parse() still counts.
func (md *Modes) Parsed() bool {
	return md.parsed
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// parsing succeeded. if sub-modes were added then Mode() returns the
	// selected mode
	ParseContinue ParseResult = iota

	// help was requested and has been written to Output. the caller should
	// stop without printing anything else
	ParseHelp

	// the arguments could not be parsed. the error is returned alongside
	// this value
	ParseError
)

// Parse the arguments for the current mode. Typical use:
//
//	p, err := md.Parse()
//	switch p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
// When sub-modes have been added, the first argument after the flags selects
// the mode. If it does not name a sub-mode the default sub-mode is selected
// and the argument is left for the next call to Parse().
func (md *Modes) Parse() (ParseResult, error) {
	md.parsed = true

	hw := &helpWriter{}
	md.flags.SetOutput(hw)

	err := md.flags.Parse(md.args[md.argsIdx:])
	if err == flag.ErrHelp {
		hw.Help(md.Output, md.Path(), md.subModes, md.additionalHelp, md.envNames())
		return ParseHelp, nil
	}

	if err != nil {
		// an unrecognised flag may belong to the default sub-mode
		if len(md.subModes) == 0 {
			return ParseError, err
		}
		md.path = append(md.path, md.subModes[0])
		return ParseContinue, nil
	}

	if err := md.fromEnvironment(); err != nil {
		return ParseError, err
	}

	if len(md.subModes) > 0 {
		mode := md.subModes[0]
		arg := strings.ToUpper(md.flags.Arg(0))
		for _, m := range md.subModes {
			if m == arg {
				mode = arg
				md.argsIdx++
				break // for loop
			}
		}
		md.path = append(md.path, mode)
	}

	return ParseContinue, nil
}

// EnvName returns the name of the environment variable for the named flag.
// Returns the empty string if EnvPrefix has not been set.
func (md *Modes) EnvName(name string) string {
	if md.EnvPrefix == "" {
		return ""
	}
	return fmt.Sprintf("%s%s", md.EnvPrefix, strings.ToUpper(strings.ReplaceAll(name, "-", "_")))
}

// the environment variable names for every flag in the current mode
func (md *Modes) envNames() []string {
	if md.EnvPrefix == "" {
		return nil
	}
	var names []string
	md.flags.VisitAll(func(f *flag.Flag) {
		names = append(names, md.EnvName(f.Name))
	})
	return names
}

// set flags that were not specified on the command line from the environment
func (md *Modes) fromEnvironment() error {
	if md.EnvPrefix == "" {
		return nil
	}

	set := make(map[string]bool)
	md.flags.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	var err error
	md.flags.VisitAll(func(f *flag.Flag) {
		if err != nil || set[f.Name] {
			return
		}
		env := md.EnvName(f.Name)
		if v, ok := os.LookupEnv(env); ok {
			if e := md.flags.Set(f.Name, v); e != nil {
				err = fmt.Errorf("invalid value %q for %s: %w", v, env, e)
			}
		}
	})

	return err
}

// RemainingArgs returns the arguments that are neither flags nor a sub-mode.
func (md *Modes) RemainingArgs() []string {
	return md.flags.Args()
}

// GetArg returns the numbered argument from RemainingArgs().
func (md *Modes) GetArg(i int) string {
	return md.flags.Arg(i)
}

// AddSubModes adds to the sub-modes available to the next call to Parse().
// The first sub-mode added is the default. Sub-modes are not case sensitive.
func (md *Modes) AddSubModes(submodes ...string) {
	for _, m := range submodes {
		md.subModes = append(md.subModes, strings.ToUpper(m))
	}
}

// AddDefaultSubMode adds a sub-mode and makes it the default.
func (md *Modes) AddDefaultSubMode(defSubMode string) {
	md.subModes = append([]string{strings.ToUpper(defSubMode)}, md.subModes...)
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddDuration flag for next call to Parse().
func (md *Modes) AddDuration(name string, value time.Duration, usage string) *time.Duration {
	return md.flags.Duration(name, value, usage)
}

// AddFloat64 flag for next call to Parse().
func (md *Modes) AddFloat64(name string, value float64, usage string) *float64 {
	return md.flags.Float64(name, value, usage)
}

// AddInt flag for next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// Visit calls fn for every flag that has been set, either on the command line
// or from the environment, in lexicographical order.
func (md *Modes) Visit(fn func(flag string)) {
	md.flags.Visit(func(f *flag.Flag) {
		fn(f.Name)
	})
}
