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

	"github.com/ledcylinder/ledcylinder/curated"
)

// InvalidParams is returned by NewController() when the parameters are not
// usable.
const InvalidParams = "sign: invalid parameters: %s"

// MaxFPS is the highest frame rate accepted by NewController().
const MaxFPS = 1000

// Params are the startup parameters of the controller. They do not change
// after the controller has been created.
type Params struct {
	// the number of frames produced every second
	FPS int

	// how long each page is shown before moving to the next
	PageTime time.Duration

	// the duration of the cross-fade between pages
	FadeTime time.Duration

	// choose the next page at random rather than in order
	RandomizePages bool
}

// DT returns the duration of one tick.
func (p Params) DT() time.Duration {
	return time.Second / time.Duration(p.FPS)
}

func (p Params) validate() error {
	if p.FPS <= 0 {
		return curated.Errorf(InvalidParams, "fps must be positive")
	}
	if p.FPS > MaxFPS {
		return curated.Errorf(InvalidParams, fmt.Sprintf("fps must be no more than %d", MaxFPS))
	}
	if p.PageTime <= 0 {
		return curated.Errorf(InvalidParams, "page time must be positive")
	}
	if p.FadeTime <= 0 {
		return curated.Errorf(InvalidParams, "fade time must be positive")
	}
	return nil
}
