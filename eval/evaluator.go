// Package eval evaluates named legal predicates against facts, producing a
// boolean outcome and an explanation trace.
//
// Evaluation is pure and synchronous. AND and OR composites short-circuit
// left to right but still record un-evaluated children as skipped so the
// trace stays explainable; NOT always evaluates its single child fully. A
// failing primitive aborts the whole evaluation: a legal test must never
// silently substitute a default result.
package eval

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lexkit/lexengine/fact"
	"github.com/lexkit/lexengine/metrics"
	"github.com/lexkit/lexengine/predicate"
)

// Evaluator walks a sealed registry's predicate tree. It is safe for
// concurrent use.
type Evaluator struct {
	registry *predicate.Registry
	logger   *slog.Logger
	metrics  *metrics.Collector
	memo     *memoCache
}

// Option customizes an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics attaches a metrics collector. Evaluation outcomes, failures,
// and latency are recorded per top-level predicate.
func WithMetrics(c *metrics.Collector) Option {
	return func(e *Evaluator) {
		e.metrics = c
	}
}

// WithMemoization caches (predicate, fact fingerprint) results. Memoized
// and fresh evaluations are indistinguishable to the caller apart from
// latency: the cached trace is deep-copied and restamped with a new
// evaluation ID on every hit.
func WithMemoization() Option {
	return func(e *Evaluator) {
		e.memo = newMemoCache()
	}
}

// New creates an Evaluator over a sealed registry. An unsealed registry is
// rejected: mutation during evaluation would invalidate traces and the
// acyclicity guarantee.
func New(reg *predicate.Registry, opts ...Option) (*Evaluator, error) {
	if reg == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if !reg.Sealed() {
		return nil, fmt.Errorf("registry %q must be sealed before evaluation", reg.Name())
	}

	e := &Evaluator{
		registry: reg,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.metrics.SetPredicateCount(reg.Len())
	return e, nil
}

// Registry returns the registry this evaluator reads from.
func (e *Evaluator) Registry() *predicate.Registry {
	return e.registry
}

// Evaluate resolves name and evaluates it against f. The returned trace
// records every predicate that was evaluated or skipped; it is owned by the
// caller. On error no result is substituted and no trace is returned.
func (e *Evaluator) Evaluate(name string, f *fact.Fact) (bool, *Trace, error) {
	if f == nil {
		return false, nil, fmt.Errorf("fact is required")
	}

	start := time.Now()
	result, trace, err := e.eval(name, f)
	if err != nil {
		e.metrics.ObserveFailure(name)
		e.logger.Debug("evaluation failed",
			slog.String("predicate", name),
			slog.String("fact", f.ID()),
			slog.String("error", err.Error()))
		return false, nil, err
	}

	trace.EvaluationID = uuid.NewString()
	e.metrics.ObserveEvaluation(name, result, time.Since(start))
	e.logger.Debug("evaluation complete",
		slog.String("predicate", name),
		slog.String("fact", f.ID()),
		slog.Bool("result", result),
		slog.String("evaluation_id", trace.EvaluationID))
	return result, trace, nil
}

func (e *Evaluator) eval(name string, f *fact.Fact) (bool, *Trace, error) {
	if hit, ok := e.memo.get(name, f); ok {
		return hit.result, hit.trace.clone(), nil
	}

	def, err := e.registry.Resolve(name)
	if err != nil {
		return false, nil, err
	}

	var (
		result bool
		trace  *Trace
	)
	switch def.Kind {
	case predicate.KindPrimitive:
		result, trace, err = e.evalPrimitive(def, f)
	case predicate.KindAnd:
		result, trace, err = e.evalAnd(def, f)
	case predicate.KindOr:
		result, trace, err = e.evalOr(def, f)
	case predicate.KindNot:
		result, trace, err = e.evalNot(def, f)
	default:
		// Unreachable: Register validates the kind.
		err = fmt.Errorf("predicate %q: unknown kind %q", def.Name, def.Kind)
	}
	if err != nil {
		return false, nil, err
	}

	e.memo.put(name, f, result, trace)
	return result, trace, nil
}

func (e *Evaluator) evalPrimitive(def *predicate.Definition, f *fact.Fact) (result bool, trace *Trace, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, trace = false, nil
			err = &predicate.EvaluationError{
				Predicate: def.Name,
				FactID:    f.ID(),
				Err:       fmt.Errorf("panic: %v", r),
			}
		}
	}()

	ok, err := def.Primitive(f)
	if err != nil {
		return false, nil, &predicate.EvaluationError{
			Predicate: def.Name,
			FactID:    f.ID(),
			Err:       err,
		}
	}

	return ok, &Trace{
		Predicate: def.Name,
		Kind:      predicate.KindPrimitive,
		FactID:    f.ID(),
		Status:    StatusEvaluated,
		Result:    ok,
	}, nil
}

func (e *Evaluator) evalAnd(def *predicate.Definition, f *fact.Fact) (bool, *Trace, error) {
	return e.evalJunction(def, f, false)
}

func (e *Evaluator) evalOr(def *predicate.Definition, f *fact.Fact) (bool, *Trace, error) {
	return e.evalJunction(def, f, true)
}

// evalJunction evaluates children left to right until one returns the
// deciding value (false for AND, true for OR), then records the rest as
// skipped.
func (e *Evaluator) evalJunction(def *predicate.Definition, f *fact.Fact, deciding bool) (bool, *Trace, error) {
	trace := &Trace{
		Predicate: def.Name,
		Kind:      def.Kind,
		FactID:    f.ID(),
		Status:    StatusEvaluated,
		Children:  make([]*Trace, 0, len(def.Children)),
	}

	result := !deciding
	decided := false
	for _, childName := range def.Children {
		if decided {
			trace.Children = append(trace.Children, e.skippedTrace(childName))
			continue
		}
		childResult, childTrace, err := e.eval(childName, f)
		if err != nil {
			return false, nil, err
		}
		trace.Children = append(trace.Children, childTrace)
		if childResult == deciding {
			result = deciding
			decided = true
		}
	}

	trace.Result = result
	return result, trace, nil
}

func (e *Evaluator) evalNot(def *predicate.Definition, f *fact.Fact) (bool, *Trace, error) {
	childResult, childTrace, err := e.eval(def.Children[0], f)
	if err != nil {
		return false, nil, err
	}

	result := !childResult
	return result, &Trace{
		Predicate: def.Name,
		Kind:      predicate.KindNot,
		FactID:    f.ID(),
		Status:    StatusEvaluated,
		Result:    result,
		Children:  []*Trace{childTrace},
	}, nil
}

// skippedTrace records a child that short-circuiting made irrelevant. The
// kind is resolved so explanations can still classify the node; the fact is
// not touched.
func (e *Evaluator) skippedTrace(name string) *Trace {
	kind := predicate.Kind("")
	if def, err := e.registry.Resolve(name); err == nil {
		kind = def.Kind
	}
	return &Trace{
		Predicate: name,
		Kind:      kind,
		Status:    StatusSkipped,
	}
}
