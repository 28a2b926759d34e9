// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"fmt"
	"strings"
)

// ConfigError describes a malformed calendar or format definition. It is
// never the fault of the value being converted, so retrying will not help.
type ConfigError struct {
	Calendar string
	// Template is set instead of Calendar for malformed format templates.
	Template string
	// Cycle is the offending cycle, or the ref of the offending template
	// element.
	Cycle   string
	Message string
}

// Error returns the string representation of a ConfigError.
func (e *ConfigError) Error() string {
	var b strings.Builder
	switch {
	case e.Template != "":
		fmt.Fprintf(&b, "template %q", e.Template)
	case e.Calendar != "":
		fmt.Fprintf(&b, "calendar %q", e.Calendar)
	default:
		b.WriteString("calendar")
	}
	if e.Cycle != "" {
		fmt.Fprintf(&b, ": cycle %q", e.Cycle)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// LookupError describes a rendered value without a lookup entry, or a
// display string that no index renders to.
type LookupError struct {
	// Key is the rendered key that had no entry, if any.
	Key string
	// Ref and Value are the element and the input that could not be mapped
	// back to an index, if any.
	Ref   string
	Value string
}

// Error returns the string representation of a LookupError.
func (e *LookupError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("no lookup entry for %q", e.Key)
	}
	return fmt.Sprintf("cannot parse %q as a value of %q", e.Value, e.Ref)
}

// FormatError describes a problem formatting an instant.
type FormatError struct {
	Template string
	Ref      string
	Message  string
}

// Error returns the string representation of a FormatError.
func (e *FormatError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("formatting as %q: %s: %s", e.Template, e.Ref, e.Message)
	}
	return fmt.Sprintf("formatting as %q: %s", e.Template, e.Message)
}

// ParseError describes a problem parsing an instant from a string.
type ParseError struct {
	Template string
	Value    string
	Message  string
}

// Error returns the string representation of a ParseError.
func (e *ParseError) Error() string {
	if e.Template == "" {
		return fmt.Sprintf("parsing instant %q: %s", e.Value, e.Message)
	}
	return fmt.Sprintf("parsing instant %q as %q: %s", e.Value, e.Template, e.Message)
}

// IndexError describes an instant whose index for a cycle is outside the
// cycle: negative, or past the end of a Sequence.
type IndexError struct {
	Cycle string
	Index int
	// Max is the largest valid index, or -1 for cycles without one.
	Max int
}

// Error returns the string representation of an IndexError.
func (e *IndexError) Error() string {
	if e.Max < 0 {
		return fmt.Sprintf("index %d of cycle %q is negative", e.Index, e.Cycle)
	}
	return fmt.Sprintf("index %d of cycle %q out of range [0, %d]", e.Index, e.Cycle, e.Max)
}
