// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// An Instant is a point in time broken down into cycle indices, like
// {year: 2001, yearMonth: 0, monthDay: 0}.
//
// Instants returned by [Calendar.InstantFor] have every cycle of the
// calendar populated. Instants passed to [Calendar.DayNumberFor] may be
// partial; cycles missing from them contribute nothing.
type Instant struct {
	// DayNumber is the day number the instant was derived from. It is
	// informational and ignored by DayNumberFor.
	DayNumber decimal.Decimal
	// Indexes maps cycle ids to their zero-based index.
	Indexes map[string]int
}

// Index returns the index of the cycle with the given id, and whether it is
// present.
func (in Instant) Index(id string) (int, bool) {
	v, ok := in.Indexes[id]
	return v, ok
}

// With returns a copy of in, with the index of id set to v.
func (in Instant) With(id string, v int) Instant {
	out := in.Clone()
	if out.Indexes == nil {
		out.Indexes = make(map[string]int)
	}
	out.Indexes[id] = v
	return out
}

// Clone returns a deep copy of in.
func (in Instant) Clone() Instant {
	return Instant{
		DayNumber: in.DayNumber,
		Indexes:   maps.Clone(in.Indexes),
	}
}

// Equal reports whether in and other have the same day number and the same
// indexes.
func (in Instant) Equal(other Instant) bool {
	return in.DayNumber.Equal(other.DayNumber) && maps.Equal(in.Indexes, other.Indexes)
}

// IDs returns the ids of all populated cycles, sorted.
func (in Instant) IDs() []string {
	return slices.Sorted(maps.Keys(in.Indexes))
}

// String returns the instant as space separated id=index pairs, sorted by
// id and preceded by the day number.
//
// The returned string is meant for debugging.
func (in Instant) String() string {
	var b strings.Builder
	b.WriteString("dayNumber=")
	b.WriteString(in.DayNumber.String())
	for _, id := range in.IDs() {
		b.WriteByte(' ')
		b.WriteString(id)
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(in.Indexes[id]))
	}
	return b.String()
}
