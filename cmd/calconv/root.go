// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gonih.org/calendar"
	"gonih.org/calendar/internal/config"
	"gonih.org/calendar/internal/logging"
	"gonih.org/calendar/provider"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	config    string
	dataDir   string
	culture   string
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "calconv",
	Short: "Convert between day numbers, instants and text",
	Long: "calconv converts Julian Day Numbers into instants of data-driven calendars\n" +
		"and back, and formats and parses them according to a culture.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.config, "config", "calconv.yaml", "Path to the configuration file")
	f.StringVar(&rootFlags.dataDir, "data", "", "Directory with calendar and culture definitions")
	f.StringVar(&rootFlags.culture, "culture", "", "Culture id")
	f.StringVar(&rootFlags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	f.StringVar(&rootFlags.logFormat, "log-format", "", "Log format (text, json)")

	rootCmd.AddCommand(instantCmd)
	rootCmd.AddCommand(dayNumberCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.Version = version
}

// loadConfig reads the configuration file and applies the flags given on
// the command line on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(rootFlags.config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	f := cmd.Flags()
	if f.Changed("data") {
		cfg.DataDir = rootFlags.dataDir
	}
	if f.Changed("culture") {
		cfg.Culture = rootFlags.culture
	}
	if f.Changed("log-level") {
		cfg.LogLevel = rootFlags.logLevel
	}
	if f.Changed("log-format") {
		cfg.LogFormat = rootFlags.logFormat
	}
	cfg.Normalize()
	return cfg, nil
}

// loadCulture sets up logging and loads the configured culture.
func loadCulture(cmd *cobra.Command) (*calendar.Culture, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logging.Init(cmd.ErrOrStderr(), logging.Options{Level: cfg.Level(), JSON: cfg.LogFormat == "json"})
	logging.New("calconv").Debug("configured", "data_dir", cfg.DataDir, "culture", cfg.Culture)

	l := provider.NewLoader(provider.NewFS(os.DirFS(cfg.DataDir)))
	c, err := l.Culture(cmd.Context(), cfg.Culture)
	if err != nil {
		return nil, fmt.Errorf("load culture: %w", err)
	}
	return c, nil
}

// printInstant writes in as one "id index" line per cycle, sorted by id,
// preceded by the day number.
func printInstant(w io.Writer, in calendar.Instant) {
	fmt.Fprintf(w, "dayNumber %s\n", in.DayNumber)
	for _, id := range in.IDs() {
		fmt.Fprintf(w, "%s %d\n", id, in.Indexes[id])
	}
}
