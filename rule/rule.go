// Package rule provides a declarative builder for composing named legal
// tests from lower-level predicates, plus data-driven primitives for the
// attribute readings that leaf predicates need.
//
// A higher-level test like the proportionality analysis is expressed as
//
//	rule.Define(reg, "proportionality?",
//		rule.All("suitability?", "necessity?", "balancing?"))
//
// which registers an ordinary composite definition; there is no separate
// runtime type for composed rules.
package rule

import (
	"fmt"

	"github.com/lexkit/lexengine/fact"
	"github.com/lexkit/lexengine/predicate"
)

// Expr is a composite rule expression awaiting registration under a name.
type Expr struct {
	kind     predicate.Kind
	children []string
}

// All is true when every named child predicate is true.
func All(children ...string) Expr {
	return Expr{kind: predicate.KindAnd, children: children}
}

// Any is true when at least one named child predicate is true.
func Any(children ...string) Expr {
	return Expr{kind: predicate.KindOr, children: children}
}

// Not inverts a single named child predicate.
func Not(child string) Expr {
	return Expr{kind: predicate.KindNot, children: []string{child}}
}

// Define registers expr under name in reg. The children need not exist yet;
// the registry resolves references at Seal.
func Define(reg *predicate.Registry, name string, expr Expr, opts ...predicate.Option) error {
	return reg.RegisterComposite(name, expr.kind, expr.children, opts...)
}

// Op is a comparison operator for threshold primitives.
type Op string

// Comparison operators.
const (
	OpGT  Op = ">"
	OpGTE Op = ">="
	OpLT  Op = "<"
	OpLTE Op = "<="
	OpEQ  Op = "=="
	OpNEQ Op = "!="
)

// Valid returns true for a known operator.
func (op Op) Valid() bool {
	switch op {
	case OpGT, OpGTE, OpLT, OpLTE, OpEQ, OpNEQ:
		return true
	}
	return false
}

func (op Op) compare(v, threshold float64) bool {
	switch op {
	case OpGT:
		return v > threshold
	case OpGTE:
		return v >= threshold
	case OpLT:
		return v < threshold
	case OpLTE:
		return v <= threshold
	case OpEQ:
		return v == threshold
	case OpNEQ:
		return v != threshold
	}
	return false
}

// Threshold builds a primitive comparing a numeric attribute against an
// explicit threshold ("age >= 18", "days-since-decision <= 180"). Operator
// and threshold are data, not code, so the comparison is testable apart
// from any boolean composition. An absent or non-numeric attribute is an
// error: "unknown" must never silently read as false.
func Threshold(attr string, op Op, threshold float64) predicate.PrimitiveFunc {
	return func(f *fact.Fact) (bool, error) {
		if !op.Valid() {
			return false, fmt.Errorf("invalid comparison operator %q", op)
		}
		v, ok := f.Number(attr)
		if !ok {
			return false, fmt.Errorf("numeric attribute %q is not set", attr)
		}
		return op.compare(v, threshold), nil
	}
}

// BoolAttr builds a primitive reading a boolean attribute directly. An
// absent attribute is an error, keeping "known false" distinct from
// "unknown".
func BoolAttr(attr string) predicate.PrimitiveFunc {
	return func(f *fact.Fact) (bool, error) {
		v, ok := f.Bool(attr)
		if !ok {
			return false, fmt.Errorf("boolean attribute %q is not set", attr)
		}
		return v, nil
	}
}

// StringEquals builds a primitive testing a string attribute for equality
// with want.
func StringEquals(attr, want string) predicate.PrimitiveFunc {
	return func(f *fact.Fact) (bool, error) {
		v, ok := f.String(attr)
		if !ok {
			return false, fmt.Errorf("string attribute %q is not set", attr)
		}
		return v == want, nil
	}
}
