// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "calconv.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("Load of missing file (-want +got):\n%s", diff)
	}
}

func TestLoadNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calconv.yaml")
	data := "data_dir: /srv/calendars\nlog_level: DEBUG\nlog_format: xml\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &Config{
		DataDir:   "/srv/calendars",
		Culture:   "en-US",
		LogLevel:  "debug",
		LogFormat: "text",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load (-want +got):\n%s", diff)
	}
	if got := cfg.Level(); got != slog.LevelDebug {
		t.Errorf("Level() = %v, want %v", got, slog.LevelDebug)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calconv.yaml")
	if err := os.WriteFile(path, []byte("culture: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load of invalid YAML succeeded")
	}
	if _, err := Load(""); err == nil {
		t.Error("Load(\"\") succeeded")
	}
}
