// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the configuration of the calconv command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the configuration of calconv.
type Config struct {
	// DataDir is the directory calendar and culture definitions are read
	// from.
	DataDir string `yaml:"data_dir" json:"data_dir"`

	// Culture is the id of the culture used for formatting and parsing.
	Culture string `yaml:"culture" json:"culture"`

	// LogLevel is one of "debug", "info", "warn" and "error".
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat string `yaml:"log_format" json:"log_format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DataDir:   "testdata",
		Culture:   "en-US",
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Normalize fills in missing values with defaults and canonicalizes the
// rest.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.Culture == "" {
		c.Culture = d.Culture
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = d.LogLevel
	}
	c.LogFormat = strings.ToLower(c.LogFormat)
	switch c.LogFormat {
	case "text", "json":
	default:
		c.LogFormat = d.LogFormat
	}
}

// Level returns the slog level of c.LogLevel.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return l
}

// Load loads the configuration from the YAML file at path. A missing file
// yields the default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Normalize()
	return &cfg, nil
}
