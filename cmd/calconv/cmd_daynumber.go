// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gonih.org/calendar"
)

var dayNumberCmd = &cobra.Command{
	Use:   "daynumber <id=index>...",
	Short: "Print the day number of a (partial) instant",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDayNumber,
}

func runDayNumber(cmd *cobra.Command, args []string) error {
	in, err := parseIndexes(args)
	if err != nil {
		return err
	}
	c, err := loadCulture(cmd)
	if err != nil {
		return err
	}
	day, err := c.Calendar().DayNumberFor(in)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), day)
	return nil
}

// parseIndexes parses arguments of the form id=index into an instant.
func parseIndexes(args []string) (calendar.Instant, error) {
	in := calendar.Instant{Indexes: make(map[string]int, len(args))}
	for _, a := range args {
		id, v, ok := strings.Cut(a, "=")
		if !ok || id == "" {
			return calendar.Instant{}, fmt.Errorf("invalid index %q, want id=index", a)
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return calendar.Instant{}, fmt.Errorf("invalid index %q: %w", a, err)
		}
		in.Indexes[id] = n
	}
	return in, nil
}
