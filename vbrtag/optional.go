// SPDX-License-Identifier: EPL-2.0

package vbrtag

import "strconv"

// Optional is an integer field that may be absent from a tag. The zero
// value is absent.
type Optional struct {
	value int
	ok    bool
}

// Some returns a present Optional holding v.
func Some(v int) Optional { return Optional{value: v, ok: true} }

// Get returns the value and whether it is present.
func (o Optional) Get() (int, bool) { return o.value, o.ok }

// Valid reports whether the value is present.
func (o Optional) Valid() bool { return o.ok }

// Or returns the value, or def when absent.
func (o Optional) Or(def int) int {
	if o.ok {
		return o.value
	}
	return def
}

func (o Optional) String() string {
	if !o.ok {
		return "absent"
	}
	return strconv.Itoa(o.value)
}
