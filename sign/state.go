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
	"fmt"
	"time"
)

// Kind distinguishes the two variants of State.
type Kind int

// List of valid Kind values.
const (
	Single Kind = iota
	Transition
)

func (k Kind) String() string {
	switch k {
	case Single:
		return "Single"
	case Transition:
		return "Transition"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// State is the display state of the controller. When Kind is Single only the
// Page field is meaningful. When Kind is Transition only From, To and
// Remaining are meaningful.
type State struct {
	Kind Kind

	// the visible page in the Single state
	Page int

	// the outgoing and incoming pages in the Transition state and the time
	// remaining in the transition
	From      int
	To        int
	Remaining time.Duration
}

// SingleState returns a State in the Single variant.
func SingleState(page int) State {
	return State{Kind: Single, Page: page}
}

// TransitionState returns a State in the Transition variant.
func TransitionState(from int, to int, remaining time.Duration) State {
	return State{Kind: Transition, From: from, To: to, Remaining: remaining}
}

func (s State) String() string {
	switch s.Kind {
	case Single:
		return fmt.Sprintf("Single(%d)", s.Page)
	case Transition:
		return fmt.Sprintf("Transition(%d, %d, %s)", s.From, s.To, s.Remaining)
	}
	return fmt.Sprintf("invalid state (%s)", s.Kind)
}
