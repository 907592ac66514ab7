// Package predicate provides named legal predicates and the registries that
// hold them.
//
// A predicate is either primitive (its truth value computed directly from
// fact attributes) or composite (a boolean AND/OR/NOT combination of other
// named predicates). Registries follow a register-then-seal lifecycle:
// registration is rejected after Seal, and Seal validates that every
// composite reference resolves and that the definition graph is acyclic.
// A sealed registry is safe for unlimited concurrent read-only use.
package predicate

import (
	"fmt"

	"github.com/lexkit/lexengine/fact"
)

// Kind classifies a predicate definition.
type Kind string

// Predicate kinds.
const (
	KindPrimitive Kind = "primitive"
	KindAnd       Kind = "and"
	KindOr        Kind = "or"
	KindNot       Kind = "not"
)

// Valid returns true for a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindPrimitive, KindAnd, KindOr, KindNot:
		return true
	}
	return false
}

// Composite returns true for kinds defined over other predicate names.
func (k Kind) Composite() bool {
	return k == KindAnd || k == KindOr || k == KindNot
}

// PrimitiveFunc computes a primitive predicate's truth value from a fact.
// An error return fails the whole evaluation; it is never substituted with
// a default result.
type PrimitiveFunc func(f *fact.Fact) (bool, error)

// Definition is one registered predicate: a globally unique name within its
// registry plus either a primitive evaluator or a composite expression over
// other predicate names.
type Definition struct {
	// Name is the predicate name, unique within a registry.
	Name string

	// Kind classifies the definition.
	Kind Kind

	// Description documents what the predicate tests.
	Description string

	// Primitive is the evaluator for KindPrimitive definitions.
	Primitive PrimitiveFunc

	// Children are the referenced predicate names for composite kinds.
	// KindNot has exactly one child.
	Children []string
}

// validate checks the structural shape of a definition.
func (d *Definition) validate() error {
	if d.Name == "" {
		return fmt.Errorf("predicate name is required")
	}
	if !d.Kind.Valid() {
		return fmt.Errorf("predicate %q: unknown kind %q", d.Name, d.Kind)
	}

	switch d.Kind {
	case KindPrimitive:
		if d.Primitive == nil {
			return fmt.Errorf("predicate %q: primitive evaluator is required", d.Name)
		}
		if len(d.Children) > 0 {
			return fmt.Errorf("predicate %q: primitive must not reference children", d.Name)
		}
	case KindNot:
		if len(d.Children) != 1 {
			return fmt.Errorf("predicate %q: not takes exactly one child, got %d", d.Name, len(d.Children))
		}
	default:
		if len(d.Children) == 0 {
			return fmt.Errorf("predicate %q: %s requires at least one child", d.Name, d.Kind)
		}
	}

	if d.Kind.Composite() {
		if d.Primitive != nil {
			return fmt.Errorf("predicate %q: composite must not carry a primitive evaluator", d.Name)
		}
		seen := make(map[string]bool, len(d.Children))
		for _, child := range d.Children {
			if child == "" {
				return fmt.Errorf("predicate %q: child name must be non-empty", d.Name)
			}
			if seen[child] {
				return fmt.Errorf("predicate %q: child %q referenced twice", d.Name, child)
			}
			seen[child] = true
		}
	}

	return nil
}

// clone returns a copy with its own children slice.
func (d *Definition) clone() *Definition {
	out := *d
	if len(d.Children) > 0 {
		out.Children = append([]string(nil), d.Children...)
	}
	return &out
}

// Option customizes a definition at registration time.
type Option func(*Definition)

// WithDescription sets the human-readable description.
func WithDescription(desc string) Option {
	return func(d *Definition) {
		d.Description = desc
	}
}
