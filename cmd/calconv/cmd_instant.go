// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var instantCmd = &cobra.Command{
	Use:   "instant <day-number>",
	Short: "Print the instant for a day number",
	Args:  cobra.ExactArgs(1),
	RunE:  runInstant,
}

func runInstant(cmd *cobra.Command, args []string) error {
	day, err := decimal.NewFromString(args[0])
	if err != nil {
		return fmt.Errorf("invalid day number %q: %w", args[0], err)
	}
	c, err := loadCulture(cmd)
	if err != nil {
		return err
	}
	in, err := c.Calendar().InstantFor(day)
	if err != nil {
		return err
	}
	printInstant(cmd.OutOrStdout(), in)
	return nil
}
