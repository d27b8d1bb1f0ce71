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

// Package test bundles helper functions for use with the standard go test
// harness.
//
// The Expect functions report a failure with t.Errorf() and let the test
// continue. The Demand functions stop the test immediately with t.Fatalf().
// Use Demand when the rest of the test makes no sense without the value, for
// example a constructor that returns nil on error.
//
// The nil value is considered a success. This matches how errors are usually
// returned and means that ExpectSuccess(t, err) reads naturally.
//
// The Writer type implements io.Writer and should be used to capture output.
// The RingWriter type does the same but keeps only the most recent output.
package test
