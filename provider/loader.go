// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package provider

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"gonih.org/calendar"
	"gonih.org/calendar/internal/cache"
	"gonih.org/calendar/internal/logging"
)

// A Loader builds calendars and cultures from the definitions of a
// Provider.
//
// Built calendars and cultures are memoized by id, so repeated loads share
// their caches. A Loader is safe for concurrent use.
type Loader struct {
	p   Provider
	log *slog.Logger

	calendars cache.Cache[string, *calendar.Calendar]
	cultures  cache.Cache[string, *calendar.Culture]
}

// NewLoader returns a Loader for the definitions of p.
func NewLoader(p Provider) *Loader {
	return &Loader{p: p, log: logging.New("provider")}
}

// Calendar returns the calendar with the given id.
func (l *Loader) Calendar(ctx context.Context, id string) (*calendar.Calendar, error) {
	return l.calendars.Get(id, func(id string) (*calendar.Calendar, error) {
		def, err := l.p.Calendar(ctx, id)
		if err != nil {
			return nil, err
		}
		l.log.Debug("loaded calendar", "id", id, "version", def.Version, "cycles", len(def.Cycles))
		return calendar.New(def), nil
	})
}

// Culture returns the culture with the given id. The calendars it refers to
// are loaded concurrently and, if there is more than one, combined using
// calendar.Compose.
func (l *Loader) Culture(ctx context.Context, id string) (*calendar.Culture, error) {
	return l.cultures.Get(id, func(id string) (*calendar.Culture, error) {
		def, err := l.p.Culture(ctx, id)
		if err != nil {
			return nil, err
		}
		l.log.Debug("loaded culture", "id", id, "version", def.Version, "formats", len(def.Temporal.Formats))

		ids := def.Temporal.Calendars
		if len(ids) == 0 {
			return nil, fmt.Errorf("culture %q: no calendars", id)
		}
		cals := make([]*calendar.Calendar, len(ids))
		g, gctx := errgroup.WithContext(ctx)
		for i, cid := range ids {
			g.Go(func() error {
				c, err := l.Calendar(gctx, cid)
				if err != nil {
					return fmt.Errorf("culture %q: %w", id, err)
				}
				cals[i] = c
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		cal := cals[0]
		if len(cals) > 1 {
			cal = calendar.Compose(cals...)
			l.log.Info("composed calendars", "culture", id, "calendars", ids)
		}
		return calendar.NewCulture(def, cal), nil
	})
}
