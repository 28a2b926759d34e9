// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

// CompositeID is the id of calendars returned by Compose.
const CompositeID = "composite"

// Compose returns a calendar evaluating the top-level cycles of all cals, in
// order. The day number of an instant of the composite calendar is the sum
// of the day numbers of the calendars it is made of.
//
// Cycle ids must be unique across all cals; this is not checked. The
// calendars are not modified.
func Compose(cals ...*Calendar) *Calendar {
	def := &Definition{ID: CompositeID, Type: "calendar"}
	for _, c := range cals {
		def.Cycles = append(def.Cycles, c.def.Cycles...)
	}
	return New(def)
}
