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

var formatCmd = &cobra.Command{
	Use:   "format <day-number> <template>",
	Short: "Format the instant of a day number",
	Args:  cobra.ExactArgs(2),
	RunE:  runFormat,
}

func runFormat(cmd *cobra.Command, args []string) error {
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
	s, err := c.Format(in, args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), s)
	return nil
}
