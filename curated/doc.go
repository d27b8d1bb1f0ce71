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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with Errorf(),
// which takes a formatting pattern and placeholder values in the same way as
// fmt.Errorf().
//
// The pattern is remembered and is what distinguishes one curated error from
// another. Packages in ledcylinder declare their patterns as exported
// constants so that callers can test for them:
//
//	const EmptyAnimation = "animation: no frames in %s"
//
//	err := curated.Errorf(EmptyAnimation, "nyan.ani")
//	if curated.Is(err, EmptyAnimation) {
//		...
//	}
//
// Has() is similar to Is() but searches the whole chain of wrapped curated
// errors:
//
//	f := curated.Errorf("loader: %v", err)
//	curated.Is(f, EmptyAnimation)  // false
//	curated.Has(f, EmptyAnimation) // true
//
// Error() normalises the message so that an identical leading part is not
// repeated. This means that a chain built from several layers of the same
// component reads cleanly:
//
//	loader: loader: file not found -> loader: file not found
//
// Curated errors also implement Unwrap(), returning the first error in the
// placeholder values, so the standard errors.Is() and errors.As() functions
// see through to wrapped errors from the standard library.
package curated
