// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"

	"gonih.org/calendar"
)

var parseCmd = &cobra.Command{
	Use:   "parse <text> [template]",
	Short: "Parse text into an instant",
	Long: "Parse text into an instant. Without a template, the templates of the culture\n" +
		"are tried in order, and a plain number is taken to be a day number.",
	Args: cobra.RangeArgs(1, 2),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	c, err := loadCulture(cmd)
	if err != nil {
		return err
	}
	var in calendar.Instant
	if len(args) == 2 {
		in, err = c.ParseTemplate(args[1], args[0])
	} else {
		in, err = c.Parse(args[0])
	}
	if err != nil {
		return err
	}
	printInstant(cmd.OutOrStdout(), in)
	return nil
}
