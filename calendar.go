// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package calendar converts between day numbers and instants of calendars
// that are described as data.
//
// A calendar is a forest of cycles: years, months, days, hours, leap rules
// and whatever else a calendar system needs. A day number (a fractional
// Julian Day Number, represented as an arbitrary precision decimal) is fed to
// every top-level cycle, and each cycle turns the part of the day number it
// sees into an index, handing what is left over to its children. The result
// is an [Instant], a mapping from cycle ids to indexes. The conversion is
// exactly invertible: [Calendar.DayNumberFor] sums up the magnitudes an
// instant implies.
//
// There are three kinds of cycles:
//
//   - A [Repeat] cycle scans its lengths from the start, over and over,
//     taking the first one that fits into the remaining day number. This is
//     how years repeat indefinitely, with leap years chosen by guards.
//   - A [Sequence] cycle walks its lengths once, in order. This is how the
//     months of a year are laid out.
//   - A [Calculate] cycle derives its index from one computed earlier, like
//     a century from a year.
//
// Lengths can be conditional on the indexes computed so far, either through
// a guard on the whole length, or through a list of alternatives, the first
// one holding supplying the magnitude. That is how February gets 28 or 29
// days.
//
// A [Culture] renders instants as strings and parses them back, using
// declarative templates and a lookup table for names.
//
// Definitions are plain data and usually loaded from files, see package
// gonih.org/calendar/provider. Malformed definitions are mostly detected
// while converting, by returning a [*ConfigError].
package calendar

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"gonih.org/calendar/internal/cache"
)

// A Calendar converts between day numbers and instants according to a
// Definition.
//
// A Calendar is safe for concurrent use. The definition must not be
// modified after it is passed to New.
type Calendar struct {
	def *Definition

	// consts memoizes the decimal constants of def, keyed by their path in
	// the cycle tree. Cycle ids are only unique within one calendar, so the
	// cache must never be shared between calendars.
	consts cache.Cache[constKey, decimal.Decimal]
}

// constKey identifies a constant by the cycle it belongs to and its path
// below that cycle, like "0/1/guard". Keeping the id separate means ids may
// contain any character without keys colliding.
type constKey struct {
	cycle string
	path  string
}

// New returns a Calendar for def.
func New(def *Definition) *Calendar {
	if def == nil {
		def = new(Definition)
	}
	return &Calendar{def: def}
}

// ID returns the id of the calendar's definition.
func (c *Calendar) ID() string {
	return c.def.ID
}

// Definition returns the definition of c. It must not be modified.
func (c *Calendar) Definition() *Definition {
	return c.def
}

// InstantFor returns the instant for the given day number, with every cycle
// of the calendar populated.
func (c *Calendar) InstantFor(day decimal.Decimal) (Instant, error) {
	in := Instant{DayNumber: day, Indexes: make(map[string]int)}
	s := &state{work: in.Indexes}
	for i := range c.def.Cycles {
		// Every top-level cycle starts from the same day number.
		if err := c.forward(&c.def.Cycles[i], day, s); err != nil {
			return Instant{}, err
		}
	}
	return in, nil
}

// DayNumberFor returns the day number for the given instant. Only cycles
// present in the instant are used, so a partial instant yields the start of
// the period it describes.
//
// Top-level Calculate cycles are not supported and yield a *ConfigError.
func (c *Calendar) DayNumberFor(in Instant) (decimal.Decimal, error) {
	s := &state{work: make(map[string]int), base: in.Indexes}
	sum := decimal.Zero
	for i := range c.def.Cycles {
		cy := &c.def.Cycles[i]
		if cy.Kind == Calculate {
			return decimal.Zero, c.configErr(cy, "cannot compute a day number for a top-level calculate cycle")
		}
		d, err := c.reverse(cy, s)
		if err != nil {
			return decimal.Zero, err
		}
		sum = sum.Add(d)
	}
	return sum, nil
}

// state is the accumulator threaded through one walk of the cycle tree.
//
// Going forward, work is the instant being built and base is nil. In
// reverse, base is the instant being converted and work records the indexes
// as they are replayed, so conditions see the same values they saw going
// forward.
type state struct {
	work map[string]int
	base map[string]int
}

func (s *state) index(id string) (int, bool) {
	if v, ok := s.work[id]; ok {
		return v, true
	}
	v, ok := s.base[id]
	return v, ok
}

func (s *state) set(id string, v int) {
	s.work[id] = v
}

// forward evaluates cy and its children against day.
func (c *Calendar) forward(cy *Cycle, day decimal.Decimal, s *state) error {
	if cy.Offset != "" {
		off, err := c.constant(cy, "offset", cy.Offset)
		if err != nil {
			return err
		}
		day = day.Add(off)
	}
	if cy.FractionalOnly {
		day = fraction(day)
	}

	var err error
	switch cy.Kind {
	case Repeat:
		day, err = c.repeat(cy, day, s)
	case Sequence:
		day, err = c.sequence(cy, day, s)
	case Calculate:
		// Calculate cycles do not consume any of the day number.
		err = c.calculate(cy, s)
	default:
		return c.configErr(cy, "unknown cycle kind %v", cy.Kind)
	}
	if err != nil {
		return err
	}

	for i := range cy.Children {
		if err := c.forward(&cy.Children[i], day, s); err != nil {
			return err
		}
	}
	return nil
}

// repeat evaluates a Repeat cycle and returns the remaining day number.
func (c *Calendar) repeat(cy *Cycle, day decimal.Decimal, s *state) (decimal.Decimal, error) {
	n := 0
	s.set(cy.ID, n)
	for day.Sign() > 0 {
		found := false
		for i := range cy.Lengths {
			m, err := c.magnitude(cy, i, s)
			if err != nil {
				return day, err
			}
			if m.Sign() <= 0 || m.GreaterThan(day) {
				continue
			}
			if cy.Lengths[i].Count < 1 {
				return day, c.configErr(cy, "length %d has non-positive count %d", i, cy.Lengths[i].Count)
			}
			n += cy.Lengths[i].Count
			s.set(cy.ID, n)
			day = day.Sub(m)
			found = true
			break
		}
		if !found {
			break
		}
	}
	return day, nil
}

// sequence evaluates a Sequence cycle and returns the remaining day number.
func (c *Calendar) sequence(cy *Cycle, day decimal.Decimal, s *state) (decimal.Decimal, error) {
	n := 0
	s.set(cy.ID, n)
	for i := range cy.Lengths {
		m, err := c.magnitude(cy, i, s)
		if err != nil {
			return day, err
		}
		if m.Sign() <= 0 || m.GreaterThan(day) {
			break
		}
		n++
		s.set(cy.ID, n)
		day = day.Sub(m)
		if day.Sign() <= 0 {
			break
		}
	}
	return day, nil
}

// calculate evaluates a Calculate cycle, which must refer to a cycle that
// was already computed.
func (c *Calendar) calculate(cy *Cycle, s *state) error {
	v, ok := s.index(cy.Ref)
	if !ok {
		return c.configErr(cy, "refers to %q, which is not computed yet", cy.Ref)
	}
	r, err := c.operate(cy, "value", cy.Op, v, cy.Value)
	if err != nil {
		return err
	}
	s.set(cy.ID, r)
	return nil
}

// reverse returns the contribution of cy and its children to the day number
// of s.base.
func (c *Calendar) reverse(cy *Cycle, s *state) (decimal.Decimal, error) {
	sum := decimal.Zero
	switch cy.Kind {
	case Repeat, Sequence:
		index, ok := s.base[cy.ID]
		if !ok {
			return sum, nil
		}
		var err error
		if cy.Kind == Repeat {
			sum, err = c.repeatSum(cy, index, s)
		} else {
			sum, err = c.sequenceSum(cy, index, s)
		}
		if err != nil {
			return sum, err
		}
	case Calculate:
		// Calculate cycles are views of other cycles and contribute nothing
		// themselves. They are recomputed, as conditions below them may
		// refer to them even if the instant does not carry them.
		if _, ok := s.index(cy.Ref); ok {
			if err := c.calculate(cy, s); err != nil {
				return sum, err
			}
		} else if _, ok := s.base[cy.ID]; !ok {
			return sum, nil
		}
	default:
		return sum, c.configErr(cy, "unknown cycle kind %v", cy.Kind)
	}

	for i := range cy.Children {
		d, err := c.reverse(&cy.Children[i], s)
		if err != nil {
			return sum, err
		}
		sum = sum.Add(d)
	}

	if cy.Offset != "" {
		off, err := c.constant(cy, "offset", cy.Offset)
		if err != nil {
			return sum, err
		}
		sum = sum.Sub(off)
	}
	return sum, nil
}

// repeatSum replays a Repeat cycle up to index and returns the magnitudes it
// accumulated. Repeat cycles have no upper bound, but no instant of them has
// a negative index.
func (c *Calendar) repeatSum(cy *Cycle, index int, s *state) (decimal.Decimal, error) {
	sum := decimal.Zero
	if index < 0 {
		return sum, &IndexError{Cycle: cy.ID, Index: index, Max: -1}
	}
	n := 0
	s.set(cy.ID, n)
	for n <= index {
		found := false
		for i := range cy.Lengths {
			l := &cy.Lengths[i]
			if n+l.Count > index {
				continue
			}
			m, err := c.magnitude(cy, i, s)
			if err != nil {
				return sum, err
			}
			if m.Sign() <= 0 {
				continue
			}
			if l.Count < 1 {
				return sum, c.configErr(cy, "length %d has non-positive count %d", i, l.Count)
			}
			n += l.Count
			s.set(cy.ID, n)
			sum = sum.Add(m)
			found = true
			break
		}
		if !found {
			break
		}
	}
	return sum, nil
}

// sequenceSum returns the sum of the first index lengths of a Sequence
// cycle.
func (c *Calendar) sequenceSum(cy *Cycle, index int, s *state) (decimal.Decimal, error) {
	if index < 0 || index > len(cy.Lengths) {
		return decimal.Zero, &IndexError{Cycle: cy.ID, Index: index, Max: len(cy.Lengths)}
	}
	sum := decimal.Zero
	for i := 0; i < index; i++ {
		s.set(cy.ID, i)
		m, err := c.magnitude(cy, i, s)
		if err != nil {
			return sum, err
		}
		sum = sum.Add(m)
	}
	s.set(cy.ID, index)
	return sum, nil
}

// magnitude resolves the i'th length of cy against the indexes computed so
// far. A length that does not apply has magnitude zero.
func (c *Calendar) magnitude(cy *Cycle, i int, s *state) (decimal.Decimal, error) {
	l := &cy.Lengths[i]
	key := strconv.Itoa(i)
	if len(l.Alternatives) > 0 {
		for j := range l.Alternatives {
			a := &l.Alternatives[j]
			akey := key + "/" + strconv.Itoa(j)
			if a.Guard != nil {
				ok, err := c.holds(cy, akey+"/guard", a.Guard, s)
				if err != nil {
					return decimal.Zero, err
				}
				if !ok {
					continue
				}
			}
			return c.constant(cy, akey, a.Magnitude)
		}
		return decimal.Zero, nil
	}
	if l.Guard != nil {
		ok, err := c.holds(cy, key+"/guard", l.Guard, s)
		if err != nil || !ok {
			return decimal.Zero, err
		}
	}
	return c.constant(cy, key, l.Magnitude)
}

// holds reports whether the condition g is satisfied.
func (c *Calendar) holds(cy *Cycle, key string, g *Condition, s *state) (bool, error) {
	v, ok := s.index(g.Ref)
	if !ok {
		return false, c.configErr(cy, "condition refers to %q, which is not computed yet", g.Ref)
	}
	r, err := c.operate(cy, key, g.Op, v, g.Value)
	if err != nil {
		return false, err
	}
	return r == 0, nil
}

// operate returns v op lit, with lit memoized under key.
func (c *Calendar) operate(cy *Cycle, key string, op Op, v int, lit Literal) (int, error) {
	d, err := c.constant(cy, key, lit)
	if err != nil {
		return 0, err
	}
	r, err := apply(op, v, d)
	if err != nil {
		return 0, c.configErr(cy, "%v", err)
	}
	return r, nil
}

// constant returns the decimal value of lit, memoized under the path key
// below cy. The empty literal is zero.
func (c *Calendar) constant(cy *Cycle, key string, lit Literal) (decimal.Decimal, error) {
	return c.consts.Get(constKey{cy.ID, key}, func(constKey) (decimal.Decimal, error) {
		if lit == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(string(lit))
		if err != nil {
			return decimal.Zero, c.configErr(cy, "invalid constant at %s: %q", key, lit)
		}
		return d, nil
	})
}

func (c *Calendar) configErr(cy *Cycle, format string, args ...any) error {
	return &ConfigError{
		Calendar: c.def.ID,
		Cycle:    cy.ID,
		Message:  fmt.Sprintf(format, args...),
	}
}

var one = decimal.NewFromInt(1)

// apply returns v op d. d must be an integer for the result to be
// meaningful.
func apply(op Op, v int, d decimal.Decimal) (int, error) {
	if d.IsZero() {
		return 0, errors.New("division by zero")
	}
	x := decimal.NewFromInt(int64(v))
	switch op {
	case Mod:
		return int(x.Mod(d).IntPart()), nil
	case Div:
		q, r := x.QuoRem(d, 0)
		if r.Sign() != 0 && (r.Sign() < 0) != (d.Sign() < 0) {
			q = q.Sub(one)
		}
		return int(q.IntPart()), nil
	}
	return 0, fmt.Errorf("unknown operation %v", op)
}

// fraction returns d modulo 1, in [0, 1).
func fraction(d decimal.Decimal) decimal.Decimal {
	return d.Sub(d.Floor())
}
