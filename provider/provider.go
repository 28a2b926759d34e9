// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package provider loads calendar and culture definitions and turns them
// into ready to use calendars and cultures.
package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gonih.org/calendar"
)

// ErrNotFound is returned, wrapped, for unknown component ids.
var ErrNotFound = errors.New("component not found")

// A Provider supplies the definitions of components by id. Versions are
// carried in the definitions, but not interpreted.
type Provider interface {
	Calendar(ctx context.Context, id string) (*calendar.Definition, error)
	Culture(ctx context.Context, id string) (*calendar.CultureDefinition, error)
}

// Memory is a Provider serving definitions from memory.
//
// Its zero value is an empty provider. It is safe for concurrent use.
type Memory struct {
	mu        sync.RWMutex
	calendars map[string]*calendar.Definition
	cultures  map[string]*calendar.CultureDefinition
}

// NewMemory returns a Memory provider serving the given definitions.
func NewMemory(cals []*calendar.Definition, cultures []*calendar.CultureDefinition) *Memory {
	m := new(Memory)
	for _, def := range cals {
		m.AddCalendar(def)
	}
	for _, def := range cultures {
		m.AddCulture(def)
	}
	return m
}

// AddCalendar adds def, replacing any calendar with the same id.
func (m *Memory) AddCalendar(def *calendar.Definition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calendars == nil {
		m.calendars = make(map[string]*calendar.Definition)
	}
	m.calendars[def.ID] = def
}

// AddCulture adds def, replacing any culture with the same id.
func (m *Memory) AddCulture(def *calendar.CultureDefinition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cultures == nil {
		m.cultures = make(map[string]*calendar.CultureDefinition)
	}
	m.cultures[def.ID] = def
}

// Calendar implements Provider.
func (m *Memory) Calendar(ctx context.Context, id string) (*calendar.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	def, ok := m.calendars[id]
	if !ok {
		return nil, fmt.Errorf("calendar %q: %w", id, ErrNotFound)
	}
	return def, nil
}

// Culture implements Provider.
func (m *Memory) Culture(ctx context.Context, id string) (*calendar.CultureDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	def, ok := m.cultures[id]
	if !ok {
		return nil, fmt.Errorf("culture %q: %w", id, ErrNotFound)
	}
	return def, nil
}
