// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gonih.org/calendar/internal/cache"
)

// A CultureDefinition describes how instants of one or more calendars are
// written down.
type CultureDefinition struct {
	ID      string `yaml:"id" json:"id"`
	Version int    `yaml:"version,omitempty" json:"version,omitempty"`
	// Type is the component type, "culture" for culture definitions.
	Type     string   `yaml:"type,omitempty" json:"type,omitempty"`
	Temporal Temporal `yaml:"temporal" json:"temporal"`
	// Lookups maps rendered values of lookup elements to display strings,
	// like "month01" to "January".
	Lookups map[string]string `yaml:"lookups,omitempty" json:"lookups,omitempty"`
}

// Temporal is the date and time part of a culture.
type Temporal struct {
	// Calendars are the ids of the calendars the culture uses. If there is
	// more than one, they are combined using Compose, in this order.
	Calendars []string `yaml:"calendars" json:"calendars"`
	// Formats are the templates of the culture. Their order is the order in
	// which Parse tries them.
	Formats []Template `yaml:"formats" json:"formats"`
}

// A Template describes one way to write an instant as text.
type Template struct {
	ID       string    `yaml:"id" json:"id"`
	Elements []Element `yaml:"elements" json:"elements"`
}

// An Element is one component of a Template. An Element without a Ref is
// the literal text Constant.
type Element struct {
	Constant string `yaml:"constant,omitempty" json:"constant,omitempty"`

	// Ref is the id of the cycle rendered by the element.
	Ref string `yaml:"ref,omitempty" json:"ref,omitempty"`
	// MinDigits is the width the index is zero-padded to. MinDigits and
	// MaxDigits bound the number of digits accepted when parsing.
	MinDigits int `yaml:"minDigits,omitempty" json:"minDigits,omitempty"`
	MaxDigits int `yaml:"maxDigits,omitempty" json:"maxDigits,omitempty"`
	// Offset is added to the index before rendering, to display zero-based
	// indexes as one-based numbers.
	Offset int    `yaml:"offset,omitempty" json:"offset,omitempty"`
	Prefix string `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Suffix string `yaml:"suffix,omitempty" json:"suffix,omitempty"`
	// Lookup replaces the rendered value by its entry in the lookup table.
	// Indexes from 0 to MaxValue must all have an entry.
	Lookup   bool `yaml:"lookup,omitempty" json:"lookup,omitempty"`
	MaxValue int  `yaml:"maxValue,omitempty" json:"maxValue,omitempty"`

	// ParseRef is the cycle a parsed value is added to. It defaults to Ref.
	ParseRef string `yaml:"parseRef,omitempty" json:"parseRef,omitempty"`
	// Default seeds indexes not yet parsed before the element is parsed.
	Default map[string]int `yaml:"default,omitempty" json:"default,omitempty"`
	// ParseOffset is subtracted from parsed digits. It defaults to Offset.
	ParseOffset *int `yaml:"parseOffset,omitempty" json:"parseOffset,omitempty"`
	// ParseDayOffset is added to the day number of a parsed instant. It
	// compensates for the offsets of calendars combined into one, which
	// would otherwise all be counted.
	ParseDayOffset Literal `yaml:"parseDayOffset,omitempty" json:"parseDayOffset,omitempty"`
}

func (e *Element) literal() bool {
	return e.Ref == ""
}

func (e *Element) parseRef() string {
	if e.ParseRef != "" {
		return e.ParseRef
	}
	return e.Ref
}

// A Culture formats instants of a calendar as strings and parses them back.
//
// A Culture is safe for concurrent use. The definition must not be modified
// after it is passed to NewCulture.
type Culture struct {
	def *CultureDefinition
	cal *Calendar

	// patterns memoizes the compiled patterns of templates, by template id.
	patterns cache.Cache[string, *regexp.Regexp]
	// offsets memoizes the parse day offsets of elements.
	offsets cache.Cache[string, decimal.Decimal]
}

// NewCulture returns a Culture for def, converting instants using cal.
func NewCulture(def *CultureDefinition, cal *Calendar) *Culture {
	if def == nil {
		def = new(CultureDefinition)
	}
	return &Culture{def: def, cal: cal}
}

// ID returns the id of the culture's definition.
func (c *Culture) ID() string {
	return c.def.ID
}

// Calendar returns the calendar of c.
func (c *Culture) Calendar() *Calendar {
	return c.cal
}

// Definition returns the definition of c. It must not be modified.
func (c *Culture) Definition() *CultureDefinition {
	return c.def
}

// Templates returns the ids of the templates of c, in the order Parse
// tries them.
func (c *Culture) Templates() []string {
	ids := make([]string, 0, len(c.def.Temporal.Formats))
	for _, t := range c.def.Temporal.Formats {
		ids = append(ids, t.ID)
	}
	return ids
}

func (c *Culture) template(id string) (*Template, bool) {
	for i := range c.def.Temporal.Formats {
		if t := &c.def.Temporal.Formats[i]; t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// Format returns a textual representation of in, according to the template
// with the given id. Every cycle the template refers to must be present in
// in.
func (c *Culture) Format(in Instant, id string) (string, error) {
	t, ok := c.template(id)
	if !ok {
		return "", &FormatError{Template: id, Message: "unknown format"}
	}
	var b strings.Builder
	for i := range t.Elements {
		e := &t.Elements[i]
		if e.literal() {
			b.WriteString(e.Constant)
			continue
		}
		v, ok := in.Indexes[e.Ref]
		if !ok {
			return "", &FormatError{Template: id, Ref: e.Ref, Message: "cycle not present in instant"}
		}
		s, err := c.render(e, v)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// render returns the text e renders index v as.
func (c *Culture) render(e *Element, v int) (string, error) {
	s := strconv.Itoa(v + e.Offset)
	if n := e.MinDigits - len(s); n > 0 {
		s = strings.Repeat("0", n) + s
	}
	s = e.Prefix + s + e.Suffix
	if !e.Lookup {
		return s, nil
	}
	name, ok := c.def.Lookups[s]
	if !ok {
		return "", &LookupError{Key: s}
	}
	return name, nil
}

// Parse parses value using the first template that matches it. If none
// does, but value is a decimal number, it is taken to be a day number.
func (c *Culture) Parse(value string) (Instant, error) {
	for i := range c.def.Temporal.Formats {
		t := &c.def.Temporal.Formats[i]
		re, err := c.pattern(t)
		if err != nil {
			return Instant{}, err
		}
		if m := re.FindStringSubmatch(value); m != nil {
			return c.build(t, value, m[1:])
		}
	}
	if d, err := decimal.NewFromString(value); err == nil {
		return c.cal.InstantFor(d)
	}
	return Instant{}, &ParseError{Value: value, Message: "cannot infer format"}
}

// ParseTemplate parses value using the template with the given id.
//
// Elements omitted from the template are assumed to be zero, unless a
// default of an element says otherwise. The returned instant has every
// cycle of the calendar populated.
func (c *Culture) ParseTemplate(id, value string) (Instant, error) {
	t, ok := c.template(id)
	if !ok {
		return Instant{}, &ParseError{Template: id, Value: value, Message: "unknown format"}
	}
	re, err := c.pattern(t)
	if err != nil {
		return Instant{}, err
	}
	m := re.FindStringSubmatch(value)
	if m == nil {
		return Instant{}, &ParseError{Template: id, Value: value, Message: "no match"}
	}
	return c.build(t, value, m[1:])
}

// build assembles the partial instant described by the submatches of t and
// expands it into a full one.
func (c *Culture) build(t *Template, value string, groups []string) (Instant, error) {
	partial := make(map[string]int)
	offset := decimal.Zero
	g := 0
	for i := range t.Elements {
		e := &t.Elements[i]
		if e.literal() {
			continue
		}
		for id, v := range e.Default {
			if _, ok := partial[id]; !ok {
				partial[id] = v
			}
		}
		if g >= len(groups) {
			return Instant{}, &ParseError{Template: t.ID, Value: value, Message: "too few submatches"}
		}
		v, err := c.index(t, e, groups[g])
		if err != nil {
			return Instant{}, err
		}
		g++
		partial[e.parseRef()] += v

		if e.ParseDayOffset != "" {
			d, err := c.dayOffset(t, i, e)
			if err != nil {
				return Instant{}, err
			}
			offset = offset.Add(d)
		}
	}

	// The template might only describe a few cycles. Going through the day
	// number populates the rest and normalizes the ones we got.
	day, err := c.cal.DayNumberFor(Instant{Indexes: partial})
	if err != nil {
		return Instant{}, err
	}
	return c.cal.InstantFor(day.Add(offset))
}

// index converts the submatch s of e back into an index.
func (c *Culture) index(t *Template, e *Element, s string) (int, error) {
	if e.Lookup {
		for i := 0; i <= e.MaxValue; i++ {
			r, err := c.render(e, i)
			if err != nil {
				return 0, err
			}
			if strings.EqualFold(r, s) {
				return i, nil
			}
		}
		return 0, &LookupError{Ref: e.Ref, Value: s}
	}
	digits := strings.TrimLeft(s, "0")
	n := 0
	if digits != "" {
		var err error
		if n, err = strconv.Atoi(digits); err != nil {
			return 0, &ParseError{Template: t.ID, Value: s, Message: fmt.Sprintf("invalid value for %q", e.Ref)}
		}
	}
	if e.ParseOffset != nil {
		return n - *e.ParseOffset, nil
	}
	return n - e.Offset, nil
}

func (c *Culture) dayOffset(t *Template, i int, e *Element) (decimal.Decimal, error) {
	key := t.ID + "/" + strconv.Itoa(i)
	return c.offsets.Get(key, func(string) (decimal.Decimal, error) {
		d, err := decimal.NewFromString(string(e.ParseDayOffset))
		if err != nil {
			return decimal.Zero, &ConfigError{Template: t.ID, Cycle: e.Ref, Message: fmt.Sprintf("invalid parse day offset %q", e.ParseDayOffset)}
		}
		return d, nil
	})
}

// pattern returns the compiled pattern for t.
func (c *Culture) pattern(t *Template) (*regexp.Regexp, error) {
	return c.patterns.Get(t.ID, func(string) (*regexp.Regexp, error) {
		return c.compile(t)
	})
}

// escaper escapes literal text for use in a pattern. Only the characters
// commonly found in date literals are escaped; in particular, parentheses
// in a literal would introduce submatches.
var escaper = strings.NewReplacer(`\`, `\\`, `/`, `\/`, `.`, `\.`)

// compile builds an anchored, case-insensitive pattern with one submatch per
// non-literal element of t.
func (c *Culture) compile(t *Template) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("(?i)^")
	for i := range t.Elements {
		e := &t.Elements[i]
		switch {
		case e.literal():
			b.WriteString(escaper.Replace(e.Constant))
		case e.Lookup:
			if e.MaxValue <= 0 {
				return nil, &ConfigError{Template: t.ID, Cycle: e.Ref, Message: "lookup element without maxValue"}
			}
			b.WriteByte('(')
			for v := 0; v <= e.MaxValue; v++ {
				s, err := c.render(e, v)
				if err != nil {
					return nil, err
				}
				if v > 0 {
					b.WriteByte('|')
				}
				b.WriteString(escaper.Replace(s))
			}
			b.WriteByte(')')
		default:
			if e.MinDigits <= 0 || e.MaxDigits <= 0 {
				return nil, &ConfigError{Template: t.ID, Cycle: e.Ref, Message: "numeric element without minDigits and maxDigits"}
			}
			if e.MinDigits == e.MaxDigits {
				fmt.Fprintf(&b, `(\d{%d})`, e.MinDigits)
			} else {
				fmt.Fprintf(&b, `(\d{%d,%d})`, e.MinDigits, e.MaxDigits)
			}
		}
	}
	b.WriteByte('$')
	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, &ConfigError{Template: t.ID, Message: err.Error()}
	}
	return re, nil
}
