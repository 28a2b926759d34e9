// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the templates of the culture, in parsing order",
	Args:  cobra.NoArgs,
	RunE:  runTemplates,
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	c, err := loadCulture(cmd)
	if err != nil {
		return err
	}
	for _, id := range c.Templates() {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}
