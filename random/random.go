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

package random

import (
	"math/rand"
	"time"
)

// the base seed for all random numbers
var baseSeed int64

// initialise base seed
func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// Random is a random number generator local to the instance. It is not safe
// for concurrent use. The sign controller is the only user.
type Random struct {
	rng *rand.Rand

	// use zero seed rather than the random base seed. this is only really
	// useful for tests where random numbers must be predictable
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom() *Random {
	return &Random{}
}

// new RNG from the standard library. created lazily so that ZeroSeed can be
// set after NewRandom()
func (rnd *Random) rand() *rand.Rand {
	if rnd.rng == nil {
		if rnd.ZeroSeed {
			rnd.rng = rand.New(rand.NewSource(0))
		} else {
			rnd.rng = rand.New(rand.NewSource(baseSeed))
		}
	}
	return rnd.rng
}

// Intn returns a number in the range [0, n). Panics if n <= 0.
func (rnd *Random) Intn(n int) int {
	return rnd.rand().Intn(n)
}

// Except returns a number in the range [0, n) that is never equal to except.
// Every other value is equally likely. If n is one then except is returned
// because there is nothing else to choose.
func (rnd *Random) Except(n int, except int) int {
	if n <= 1 {
		return except
	}
	r := rnd.Intn(n - 1)
	if r >= except {
		r++
	}
	return r
}
