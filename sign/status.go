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

package sign

import (
	"encoding/json"
)

// Status is a snapshot of the controller's externally visible state. It is
// safe to read from any goroutine.
type Status struct {
	// one entry in the Single state. the outgoing and incoming page in the
	// Transition state
	Pages []int

	// false during blackout
	Output bool

	Flash bool

	// the measured frame rate. zero until the controller has been running
	// for a short while
	FPS float32
}

// Transition returns true if the status was taken during a cross-fade.
func (s Status) Transition() bool {
	return len(s.Pages) == 2
}

type statusJSON struct {
	Page   any  `json:"page"`
	Output bool `json:"output"`
	Flash  bool `json:"flash"`
}

// MarshalJSON implements the json.Marshaler interface. The page field is a
// single number in the Single state and a pair of numbers during a
// transition.
func (s Status) MarshalJSON() ([]byte, error) {
	j := statusJSON{
		Output: s.Output,
		Flash:  s.Flash,
	}
	if len(s.Pages) == 1 {
		j.Page = s.Pages[0]
	} else {
		j.Page = s.Pages
	}
	return json.Marshal(j)
}
