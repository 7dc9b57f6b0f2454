// Package filter matches property constraints, as used by spawners to pick
// cells and shapes.
package filter

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

// ErrUnknownProp is returned when a constraint names a property the target
// does not expose.
var ErrUnknownProp = errors.New("filter: unknown property")

// Op is a comparison operator.
type Op string

const (
	Eq  Op = "eq"
	Neq Op = "neq"
	Gt  Op = "gt"
	Gte Op = "gte"
	Lt  Op = "lt"
	Lte Op = "lte"
	In  Op = "in"
)

// Constraint compares one property against Value. For In, Value is a list.
type Constraint struct {
	Prop  string `yaml:"prop" json:"prop"`
	Op    Op     `yaml:"op" json:"op"`
	Value any    `yaml:"value" json:"value"`
}

// Props resolves property names on whatever is being filtered.
type Props func(name string) (any, bool)

// Set is a conjunction of constraints.
type Set []Constraint

// Validate checks every constraint names a supported property and a known
// operator.
func (s Set) Validate(supported ...string) error {
	for _, c := range s {
		if !slices.Contains(supported, c.Prop) {
			return fmt.Errorf("%q: %w", c.Prop, ErrUnknownProp)
		}
		switch c.Op {
		case Eq, Neq, Gt, Gte, Lt, Lte, In:
		default:
			return fmt.Errorf("filter: unknown operator %q on %q", c.Op, c.Prop)
		}
	}
	return nil
}

// Match reports whether props satisfies every constraint. An empty set
// matches everything.
func (s Set) Match(props Props) bool {
	for _, c := range s {
		v, ok := props(c.Prop)
		if !ok || !c.match(v) {
			return false
		}
	}
	return true
}

func (c Constraint) match(v any) bool {
	switch c.Op {
	case Eq:
		return equal(v, c.Value)
	case Neq:
		return !equal(v, c.Value)
	case In:
		list, ok := c.Value.([]any)
		if !ok {
			return false
		}
		return slices.ContainsFunc(list, func(x any) bool { return equal(v, x) })
	}
	a, aok := number(v)
	b, bok := number(c.Value)
	if !aok || !bok {
		return false
	}
	switch c.Op {
	case Gt:
		return a > b
	case Gte:
		return a >= b
	case Lt:
		return a < b
	case Lte:
		return a <= b
	}
	return false
}

func equal(a, b any) bool {
	if x, ok := number(a); ok {
		if y, ok := number(b); ok {
			return x == y
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
