package eval

import (
	"github.com/lexkit/lexengine/predicate"
)

// Status records whether a trace node was actually evaluated or skipped by
// short-circuiting.
type Status string

// Trace node statuses.
const (
	StatusEvaluated Status = "evaluated"
	StatusSkipped   Status = "skipped"
)

// Trace is one node of an evaluation record. The root carries a unique
// EvaluationID; children follow the predicate tree in evaluation order,
// with short-circuited siblings present as skipped nodes. A Trace is owned
// by the caller of Evaluate and never shared between evaluations.
type Trace struct {
	// EvaluationID identifies the top-level Evaluate call. Set on the
	// root node only.
	EvaluationID string `json:"evaluation_id,omitempty"`

	// Predicate is the predicate name this node records.
	Predicate string `json:"predicate"`

	// Kind is the predicate's definition kind.
	Kind predicate.Kind `json:"kind"`

	// FactID identifies the fact the predicate was evaluated against.
	// Empty on skipped nodes: a skipped predicate never saw the fact.
	FactID string `json:"fact_id,omitempty"`

	// Status is evaluated or skipped.
	Status Status `json:"status"`

	// Result is the boolean outcome. Only meaningful when Status is
	// evaluated.
	Result bool `json:"result"`

	// Children are the child traces of a composite node, in definition
	// order.
	Children []*Trace `json:"children,omitempty"`
}

// Evaluated reports whether this node was actually evaluated.
func (t *Trace) Evaluated() bool {
	return t.Status == StatusEvaluated
}

// Decider returns the child that settled a composite outcome early: the
// last evaluated child of an and/or node with at least one skipped
// sibling. Returns nil when every child was evaluated, and for
// primitives, not nodes, and skipped nodes.
func (t *Trace) Decider() *Trace {
	if t.Kind != predicate.KindAnd && t.Kind != predicate.KindOr {
		return nil
	}
	if !t.Evaluated() {
		return nil
	}
	var last *Trace
	skipped := false
	for _, child := range t.Children {
		if child.Evaluated() {
			last = child
		} else {
			skipped = true
		}
	}
	if skipped {
		return last
	}
	return nil
}

// SkippedChildren returns the children that were never evaluated.
func (t *Trace) SkippedChildren() []*Trace {
	var out []*Trace
	for _, child := range t.Children {
		if !child.Evaluated() {
			out = append(out, child)
		}
	}
	return out
}

// clone deep-copies a trace so memoized entries never alias caller-owned
// nodes.
func (t *Trace) clone() *Trace {
	if t == nil {
		return nil
	}
	out := *t
	if len(t.Children) > 0 {
		out.Children = make([]*Trace, len(t.Children))
		for i, child := range t.Children {
			out.Children[i] = child.clone()
		}
	}
	return &out
}
