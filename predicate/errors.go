package predicate

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for classifying registry and evaluation failures.

// DuplicateNameError reports a registration conflict. It is never resolved
// silently; the caller must rename or namespace the predicate.
type DuplicateNameError struct {
	Registry string
	Name     string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("predicate %q already registered in registry %q", e.Name, e.Registry)
}

// UnknownPredicateError reports a reference to an unregistered name, at
// validation or evaluation time.
type UnknownPredicateError struct {
	Registry string
	Name     string
}

func (e *UnknownPredicateError) Error() string {
	return fmt.Sprintf("unknown predicate %q in registry %q", e.Name, e.Registry)
}

// CyclicDefinitionError reports a cycle in the composite predicate graph,
// detected at seal time. Cycle holds the full path, first node repeated at
// the end.
type CyclicDefinitionError struct {
	Registry string
	Cycle    []string
}

func (e *CyclicDefinitionError) Error() string {
	return fmt.Sprintf("cyclic predicate definition in registry %q: %s",
		e.Registry, strings.Join(e.Cycle, " -> "))
}

// SealedError reports an attempted mutation of a sealed registry. It always
// indicates a caller lifecycle bug.
type SealedError struct {
	Registry string
	Name     string
}

func (e *SealedError) Error() string {
	return fmt.Sprintf("registry %q is sealed; cannot register predicate %q", e.Registry, e.Name)
}

// EvaluationError wraps a failure inside a primitive evaluator with the
// predicate name and fact identifier. No default result is substituted.
type EvaluationError struct {
	Predicate string
	FactID    string
	Err       error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("predicate %q failed on fact %q: %v", e.Predicate, e.FactID, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// IsDuplicateName returns true if the error is a registration conflict.
func IsDuplicateName(err error) bool {
	var dup *DuplicateNameError
	return errors.As(err, &dup)
}

// IsUnknown returns true if the error is an unknown-predicate reference.
func IsUnknown(err error) bool {
	var unknown *UnknownPredicateError
	return errors.As(err, &unknown)
}

// IsCyclic returns true if the error is a cyclic definition.
func IsCyclic(err error) bool {
	var cyclic *CyclicDefinitionError
	return errors.As(err, &cyclic)
}

// IsSealed returns true if the error is a post-seal mutation attempt.
func IsSealed(err error) bool {
	var sealed *SealedError
	return errors.As(err, &sealed)
}

// IsEvaluation returns true if the error came from inside a primitive
// evaluator.
func IsEvaluation(err error) bool {
	var eval *EvaluationError
	return errors.As(err, &eval)
}
