// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// calconv converts between day numbers, instants and text using calendar
// and culture definitions.
//
// Usage:
//
//	calconv instant <day-number>
//	calconv daynumber <id=index>...
//	calconv format <day-number> <template>
//	calconv parse <text> [template]
//	calconv templates
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
