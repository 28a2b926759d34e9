// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompose(t *testing.T) {
	g, j := gregorian(t), loadCalendar(t, "julian.json")
	nG, nJ := len(g.Definition().Cycles), len(j.Definition().Cycles)

	c := Compose(g, j)
	if c.ID() != CompositeID {
		t.Errorf("Compose().ID() = %q, want %q", c.ID(), CompositeID)
	}
	if got := len(c.Definition().Cycles); got != nG+nJ {
		t.Errorf("Compose() has %d top-level cycles, want %d", got, nG+nJ)
	}
	if len(g.Definition().Cycles) != nG || len(j.Definition().Cycles) != nJ {
		t.Error("Compose modified its inputs")
	}

	in, err := c.InstantFor(dec("2451910.5"))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{
		"year": 2001, "yearMonth": 0, "monthDay": 0,
		"julianYear": 2000, "julianYearMonth": 11, "julianMonthDay": 18,
	}
	for id, v := range want {
		if got, ok := in.Index(id); !ok || got != v {
			t.Errorf("InstantFor(2451910.5): %s = %d, %v, want %d", id, got, ok, v)
		}
	}

	// Every index of the composite is the index of one of its parts.
	gi, err := g.InstantFor(dec("2451910.5"))
	if err != nil {
		t.Fatal(err)
	}
	ji, err := j.InstantFor(dec("2451910.5"))
	if err != nil {
		t.Fatal(err)
	}
	parts := make(map[string]int)
	for id, v := range gi.Indexes {
		parts[id] = v
	}
	for id, v := range ji.Indexes {
		parts[id] = v
	}
	if diff := cmp.Diff(parts, in.Indexes); diff != "" {
		t.Errorf("Compose(g, j).InstantFor differs from its parts (-want +got):\n%s", diff)
	}
}

func TestComposeDayNumber(t *testing.T) {
	g, j := gregorian(t), loadCalendar(t, "julian.json")
	c := Compose(g, j)

	// The day numbers of the parts add up.
	in := Instant{Indexes: map[string]int{
		"year": 2001, "yearMonth": 0, "monthDay": 0,
		"julianYear": 2000, "julianYearMonth": 11, "julianMonthDay": 18,
	}}
	got, err := c.DayNumberFor(in)
	if err != nil {
		t.Fatal(err)
	}
	if want := dec("4903821"); !got.Equal(want) {
		t.Errorf("DayNumberFor(%v) = %v, want %v", in, got, want)
	}

	// Parts missing from the instant contribute nothing.
	got, err = c.DayNumberFor(Instant{Indexes: map[string]int{"julianYear": 2000, "julianYearMonth": 11, "julianMonthDay": 18}})
	if err != nil {
		t.Fatal(err)
	}
	if want := dec("2451910.5"); !got.Equal(want) {
		t.Errorf("DayNumberFor(julian only) = %v, want %v", got, want)
	}
}

func TestComposeEmpty(t *testing.T) {
	c := Compose()
	in, err := c.InstantFor(dec("1"))
	if err != nil || len(in.Indexes) != 0 {
		t.Errorf("Compose().InstantFor(1) = %v, %v, want empty instant", in, err)
	}
}
