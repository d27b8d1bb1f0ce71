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

package prefs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledcylinder/ledcylinder/curated"
)

// Error patterns for the Dict type.
const (
	DuplicateKey = "prefs: duplicate key (%s)"
	UnknownKey   = "prefs: unknown key (%s)"
	SetError     = "prefs: %s: %v"
)

// Dict is a collection of named preferences. Keys are conventionally dotted
// paths, for example "display.width".
type Dict struct {
	entries map[string]Pref
}

// NewDict is the preferred method of initialisation for the Dict type.
func NewDict() *Dict {
	return &Dict{
		entries: make(map[string]Pref),
	}
}

// Add a preference to the Dict. Keys must be unique.
func (d *Dict) Add(key string, p Pref) error {
	if _, ok := d.entries[key]; ok {
		return curated.Errorf(DuplicateKey, key)
	}
	d.entries[key] = p
	return nil
}

// Lookup returns the preference for the key.
func (d *Dict) Lookup(key string) (Pref, bool) {
	p, ok := d.entries[key]
	return p, ok
}

// Set the value of the preference with the key. The error from the
// preference's Set() function is returned, wrapped with the key.
func (d *Dict) Set(key string, v Value) error {
	p, ok := d.entries[key]
	if !ok {
		return curated.Errorf(UnknownKey, key)
	}
	if err := p.Set(v); err != nil {
		return curated.Errorf(SetError, key, err)
	}
	return nil
}

// Keys returns the keys of the Dict in sorted order.
func (d *Dict) Keys() []string {
	keys := make([]string, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ApplyCommandLine sets every preference that has a value in the top group of
// the command line stack. Values are consumed from the stack as they are
// applied. The first error stops the process.
func (d *Dict) ApplyCommandLine() error {
	for _, k := range d.Keys() {
		if ok, v := GetCommandLinePref(k); ok {
			if err := d.Set(k, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// String returns every key and value, one per line, in key order.
func (d *Dict) String() string {
	s := strings.Builder{}
	for _, k := range d.Keys() {
		s.WriteString(fmt.Sprintf("%s :: %s\n", k, d.entries[k].String()))
	}
	return s.String()
}
