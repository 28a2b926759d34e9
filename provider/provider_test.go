// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package provider

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/shopspring/decimal"

	"gonih.org/calendar"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	var m Memory
	if _, err := m.Calendar(ctx, "gregorian"); !errors.Is(err, ErrNotFound) {
		t.Errorf("empty Memory.Calendar = _, %v, want ErrNotFound", err)
	}

	g := &calendar.Definition{ID: "gregorian", Version: 1}
	m.AddCalendar(g)
	m.AddCulture(&calendar.CultureDefinition{ID: "en-US"})
	if got, err := m.Calendar(ctx, "gregorian"); err != nil || got != g {
		t.Errorf("Calendar(gregorian) = %p, %v, want %p, <nil>", got, err, g)
	}
	if _, err := m.Culture(ctx, "de-DE"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Culture(de-DE) = _, %v, want ErrNotFound", err)
	}

	g2 := &calendar.Definition{ID: "gregorian", Version: 2}
	m.AddCalendar(g2)
	if got, _ := m.Calendar(ctx, "gregorian"); got != g2 {
		t.Errorf("AddCalendar did not replace the calendar")
	}

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := m.Culture(cctx, "en-US"); !errors.Is(err, context.Canceled) {
		t.Errorf("Culture with canceled context = _, %v", err)
	}
}

func TestFS(t *testing.T) {
	ctx := context.Background()
	p := NewFS(os.DirFS("../testdata"))

	g, err := p.Calendar(ctx, "gregorian")
	if err != nil {
		t.Fatalf("Calendar(gregorian) = _, %v", err)
	}
	if g.ID != "gregorian" || len(g.Cycles) == 0 {
		t.Errorf("Calendar(gregorian) = %+v", g)
	}
	j, err := p.Calendar(ctx, "julian")
	if err != nil {
		t.Fatalf("Calendar(julian) = _, %v", err)
	}
	if j.ID != "julian" {
		t.Errorf("Calendar(julian).ID = %q", j.ID)
	}
	c, err := p.Culture(ctx, "en-US")
	if err != nil {
		t.Fatalf("Culture(en-US) = _, %v", err)
	}
	if len(c.Temporal.Calendars) != 2 {
		t.Errorf("Culture(en-US).Temporal.Calendars = %q", c.Temporal.Calendars)
	}

	for _, id := range []string{"klingon", "../gregorian", "/gregorian"} {
		if _, err := p.Calendar(ctx, id); err == nil {
			t.Errorf("Calendar(%q) succeeded", id)
		}
	}
	if _, err := p.Calendar(ctx, "klingon"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Calendar(klingon) = _, %v, want ErrNotFound", err)
	}
}

func TestFSErrors(t *testing.T) {
	ctx := context.Background()
	p := NewFS(fstest.MapFS{
		"cultured.yaml":  {Data: []byte("id: cultured\ntype: culture\n")},
		"broken.json":    {Data: []byte(`{"id": `)},
		"nested/a.yml":   {Data: []byte("id: a\ncycles:\n  - {id: n, kind: repeat}\n")},
		"preferred.yaml": {Data: []byte("id: yaml\n")},
		"preferred.json": {Data: []byte(`{"id": "json"}`)},
	})

	if _, err := p.Calendar(ctx, "cultured"); err == nil || !strings.Contains(err.Error(), `type "culture"`) {
		t.Errorf("Calendar(cultured) = _, %v, want type mismatch", err)
	}
	if _, err := p.Culture(ctx, "cultured"); err != nil {
		t.Errorf("Culture(cultured) = _, %v", err)
	}
	if _, err := p.Calendar(ctx, "broken"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Calendar(broken) = _, %v, want decoding error", err)
	}
	if def, err := p.Calendar(ctx, "nested/a"); err != nil || len(def.Cycles) != 1 {
		t.Errorf("Calendar(nested/a) = %+v, %v", def, err)
	}
	if def, err := p.Calendar(ctx, "preferred"); err != nil || def.ID != "yaml" {
		t.Errorf("Calendar(preferred) = %+v, %v, want the yaml file", def, err)
	}
}

// counting counts the definitions requested from a Provider.
type counting struct {
	Provider
	mu    sync.Mutex
	calls map[string]int
}

func (c *counting) Calendar(ctx context.Context, id string) (*calendar.Definition, error) {
	c.mu.Lock()
	c.calls[id]++
	c.mu.Unlock()
	return c.Provider.Calendar(ctx, id)
}

func TestLoader(t *testing.T) {
	ctx := context.Background()
	p := &counting{Provider: NewFS(os.DirFS("../testdata")), calls: make(map[string]int)}
	l := NewLoader(p)

	c, err := l.Culture(ctx, "en-US")
	if err != nil {
		t.Fatalf("Culture(en-US) = _, %v", err)
	}
	if c.Calendar().ID() != calendar.CompositeID {
		t.Errorf("Culture(en-US).Calendar().ID() = %q, want %q", c.Calendar().ID(), calendar.CompositeID)
	}
	in, err := c.Calendar().InstantFor(decimal.RequireFromString("2451911"))
	if err != nil {
		t.Fatal(err)
	}
	if s, err := c.Format(in, "YYYY-MM-DD HH:mm:ss"); err != nil || s != "2001-01-01 12:00:00" {
		t.Errorf("Format = %q, %v", s, err)
	}

	// Cultures with a single calendar use it directly.
	j, err := l.Culture(ctx, "en-julian")
	if err != nil {
		t.Fatalf("Culture(en-julian) = _, %v", err)
	}
	if j.Calendar().ID() != "julian" {
		t.Errorf("Culture(en-julian).Calendar().ID() = %q, want julian", j.Calendar().ID())
	}

	again, err := l.Culture(ctx, "en-US")
	if err != nil || again != c {
		t.Errorf("second Culture(en-US) = %p, %v, want %p", again, err, c)
	}
	g, err := l.Calendar(ctx, "gregorian")
	if err != nil {
		t.Fatal(err)
	}
	if g2, _ := l.Calendar(ctx, "gregorian"); g2 != g {
		t.Error("Calendar(gregorian) is not memoized")
	}
	for id, n := range p.calls {
		if n != 1 {
			t.Errorf("calendar %q loaded %d times", id, n)
		}
	}
}

func TestLoaderErrors(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(
		[]*calendar.Definition{{ID: "gregorian"}},
		[]*calendar.CultureDefinition{
			{ID: "nothing"},
			{ID: "dangling", Temporal: calendar.Temporal{Calendars: []string{"gregorian", "klingon"}}},
		},
	)
	l := NewLoader(m)

	if _, err := l.Culture(ctx, "nothing"); err == nil {
		t.Error("Culture(nothing) succeeded, want error for a culture without calendars")
	}
	if _, err := l.Culture(ctx, "dangling"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Culture(dangling) = _, %v, want ErrNotFound", err)
	}
	if _, err := l.Culture(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Culture(missing) = _, %v, want ErrNotFound", err)
	}

	// Failures are not memoized.
	m.AddCalendar(&calendar.Definition{ID: "klingon"})
	if _, err := l.Culture(ctx, "dangling"); err != nil {
		t.Errorf("Culture(dangling) after adding klingon = _, %v", err)
	}
}
