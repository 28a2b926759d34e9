// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"

	"gonih.org/calendar"
)

// extensions are tried in order when looking for a component file.
var extensions = []string{".yaml", ".yml", ".json"}

// FS is a Provider reading definitions from files. The definition with id
// "a/b" is read from "a/b.yaml", "a/b.yml" or "a/b.json", whichever exists
// first.
type FS struct {
	fsys fs.FS
}

// NewFS returns a Provider reading definitions from fsys.
func NewFS(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// Calendar implements Provider.
func (p *FS) Calendar(ctx context.Context, id string) (*calendar.Definition, error) {
	def := new(calendar.Definition)
	if err := p.load(ctx, "calendar", id, def); err != nil {
		return nil, err
	}
	if err := checkType("calendar", id, def.Type); err != nil {
		return nil, err
	}
	return def, nil
}

// Culture implements Provider.
func (p *FS) Culture(ctx context.Context, id string) (*calendar.CultureDefinition, error) {
	def := new(calendar.CultureDefinition)
	if err := p.load(ctx, "culture", id, def); err != nil {
		return nil, err
	}
	if err := checkType("culture", id, def.Type); err != nil {
		return nil, err
	}
	return def, nil
}

// load decodes the first file found for id into v.
func (p *FS) load(ctx context.Context, kind, id string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !fs.ValidPath(id) {
		return fmt.Errorf("%s %q: invalid id", kind, id)
	}
	for _, ext := range extensions {
		name := id + ext
		data, err := fs.ReadFile(p.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("%s %q: %w", kind, id, err)
		}
		if err := decode(name, data, v); err != nil {
			return fmt.Errorf("%s %q: %w", kind, id, err)
		}
		return nil
	}
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

func decode(name string, data []byte, v any) error {
	switch path.Ext(name) {
	case ".json":
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
	default:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
	}
	return nil
}

// checkType rejects components declaring a different type than requested.
// An empty type is accepted.
func checkType(want, id, got string) error {
	if got != "" && got != want {
		return fmt.Errorf("%s %q: component has type %q", want, id, got)
	}
	return nil
}
