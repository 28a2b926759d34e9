// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging sets up structured logging for the commands of this
// module. Library packages only ever call New, so they log through whatever
// the command installed.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Options selects the handler installed by Init.
type Options struct {
	// Level is the minimum level logged. nil means slog.LevelInfo.
	Level slog.Leveler
	// JSON selects JSON output instead of key=value text.
	JSON bool
}

// Init installs a handler writing to w as the slog default. A nil w means
// os.Stderr.
func Init(w io.Writer, o Options) {
	if w == nil {
		w = os.Stderr
	}
	ho := &slog.HandlerOptions{Level: o.Level}
	var h slog.Handler = slog.NewTextHandler(w, ho)
	if o.JSON {
		h = slog.NewJSONHandler(w, ho)
	}
	slog.SetDefault(slog.New(h))
}

// New returns the default logger, tagged with component.
func New(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}
