// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewHasComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, Options{Level: slog.LevelDebug})

	New("provider").Debug("loaded calendar", "id", "gregorian")

	out := buf.String()
	if !strings.Contains(out, "component=provider") {
		t.Errorf("expected component=provider in output, got: %s", out)
	}
	if !strings.Contains(out, "id=gregorian") {
		t.Errorf("expected id=gregorian in output, got: %s", out)
	}
}

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, Options{Level: slog.LevelInfo, JSON: true})

	New("calconv").Info("starting")

	out := buf.String()
	if !strings.Contains(out, `"level":"INFO"`) {
		t.Errorf("expected JSON level field, got: %s", out)
	}
	if !strings.Contains(out, `"component":"calconv"`) {
		t.Errorf("expected JSON component field, got: %s", out)
	}
}

func TestInitLevelGating(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, Options{Level: slog.LevelWarn})

	logger := New("gate")
	logger.Info("suppressed")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Error("Info message should be suppressed at Warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("Warn message should appear at Warn level")
	}
}

func TestInitDefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, Options{})

	logger := New("loader")
	logger.Debug("hidden")
	logger.Info("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "visible") {
		t.Errorf("expected only the Info message at the default level, got: %s", out)
	}
}
