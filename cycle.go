// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// A Definition is the declarative description of a calendar: a forest of
// cycles evaluated against a day number.
type Definition struct {
	// ID identifies the calendar. It is carried, but not interpreted.
	ID string `yaml:"id" json:"id"`
	// Version is carried, but not interpreted.
	Version int `yaml:"version,omitempty" json:"version,omitempty"`
	// Type is the component type, "calendar" for calendar definitions.
	Type string `yaml:"type,omitempty" json:"type,omitempty"`
	// Cycles are the top-level cycles. Each of them is evaluated
	// independently against the same day number.
	Cycles []Cycle `yaml:"cycles" json:"cycles"`
}

// A Cycle is one named unit of calendrical structure, like a year, a month
// or an hour.
//
// Cycle ids must be unique across all cycles of a calendar, including those
// merged in by [Compose].
type Cycle struct {
	ID   string `yaml:"id" json:"id"`
	Kind Kind   `yaml:"kind" json:"kind"`

	// Children are evaluated after the cycle has produced its own index,
	// against what is left of the day number.
	Children []Cycle `yaml:"children,omitempty" json:"children,omitempty"`

	// Offset is added to the day number before the cycle is evaluated, and
	// subtracted from its contribution in reverse.
	Offset Literal `yaml:"offset,omitempty" json:"offset,omitempty"`

	// FractionalOnly reduces the day number seen by the cycle and its
	// descendants to its fractional part. It only applies going forward.
	FractionalOnly bool `yaml:"fractionalOnly,omitempty" json:"fractionalOnly,omitempty"`

	// Lengths are the candidate magnitudes of Repeat and Sequence cycles.
	Lengths []Length `yaml:"lengths,omitempty" json:"lengths,omitempty"`

	// Ref, Op and Value define a Calculate cycle as instant[Ref] Op Value.
	Ref   string  `yaml:"ref,omitempty" json:"ref,omitempty"`
	Op    Op      `yaml:"op,omitempty" json:"op,omitempty"`
	Value Literal `yaml:"value,omitempty" json:"value,omitempty"`
}

// A Length is one candidate magnitude for an iteration of a Repeat or
// Sequence cycle.
type Length struct {
	// Count is added to the cycle index when the length is chosen.
	Count int `yaml:"count" json:"count"`
	// Magnitude is the number of days the length spans.
	Magnitude Literal `yaml:"magnitude,omitempty" json:"magnitude,omitempty"`
	// Guard, if set, makes the length eligible only when it holds.
	Guard *Condition `yaml:"guard,omitempty" json:"guard,omitempty"`
	// Alternatives, if set, replace Magnitude and Guard: the first
	// alternative whose guard holds supplies the magnitude.
	Alternatives []Alternative `yaml:"alternatives,omitempty" json:"alternatives,omitempty"`
}

// A Condition holds if instant[Ref] Op Value == 0.
type Condition struct {
	Ref   string  `yaml:"ref" json:"ref"`
	Op    Op      `yaml:"op" json:"op"`
	Value Literal `yaml:"value" json:"value"`
}

// An Alternative is a conditional magnitude. An alternative without a guard
// always holds.
type Alternative struct {
	Guard     *Condition `yaml:"guard,omitempty" json:"guard,omitempty"`
	Magnitude Literal    `yaml:"magnitude" json:"magnitude"`
}

// Kind is the kind of a cycle, which determines how it turns a day number
// into an index.
type Kind uint8

const (
	kindInvalid Kind = iota

	// Repeat cycles scan their lengths over and over, taking the first one
	// that fits, until the day number is used up.
	Repeat
	// Sequence cycles walk their lengths once, in order.
	Sequence
	// Calculate cycles derive their index from an already computed cycle.
	Calculate
)

var kindNames = [...]string{
	kindInvalid: "",
	Repeat:      "repeat",
	Sequence:    "sequence",
	Calculate:   "calculate",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if int(k) < len(kindNames) && k != kindInvalid {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k == kindInvalid || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("invalid cycle kind %d", uint8(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Names are matched
// case-insensitively.
func (k *Kind) UnmarshalText(b []byte) error {
	s := string(b)
	for i, n := range kindNames {
		if n != "" && strings.EqualFold(n, s) {
			*k = Kind(i)
			return nil
		}
	}
	return &ConfigError{Message: fmt.Sprintf("unknown cycle kind %q", s)}
}

// Op is an integer operation used by Calculate cycles and conditions.
type Op uint8

const (
	opInvalid Op = iota

	// Mod is the remainder of a truncated division, taking the sign of the
	// dividend.
	Mod
	// Div is floor division.
	Div
)

var opNames = [...]string{
	opInvalid: "",
	Mod:       "mod",
	Div:       "div",
}

// String implements fmt.Stringer.
func (o Op) String() string {
	if int(o) < len(opNames) && o != opInvalid {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o Op) MarshalText() ([]byte, error) {
	if o == opInvalid || int(o) >= len(opNames) {
		return nil, fmt.Errorf("invalid operation %d", uint8(o))
	}
	return []byte(opNames[o]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Op) UnmarshalText(b []byte) error {
	s := string(b)
	for i, n := range opNames {
		if n != "" && strings.EqualFold(n, s) {
			*o = Op(i)
			return nil
		}
	}
	return &ConfigError{Message: fmt.Sprintf("unknown operation %q", s)}
}

// A Literal is a decimal constant, kept as written in a definition. The
// empty Literal means the constant is absent.
//
// Literals decode from JSON numbers and strings and from YAML scalars, so
// definitions can spell out constants with more precision than a float64
// holds.
type Literal string

// UnmarshalJSON implements json.Unmarshaler. null decodes to the empty
// Literal.
func (l *Literal) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*l = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("decimal literal: %w", err)
	}
	*l = Literal(n)
	return nil
}

// MarshalJSON implements json.Marshaler. The empty Literal encodes as null.
func (l Literal) MarshalJSON() ([]byte, error) {
	if l == "" {
		return []byte("null"), nil
	}
	return []byte(l), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *Literal) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: decimal literal must be a scalar", n.Line)
	}
	*l = Literal(strings.TrimSpace(n.Value))
	return nil
}
