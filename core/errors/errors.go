// Package errors provides the typed error surface of the reconciliation engine.
// Every failure an engine operation can report maps to one of the sentinel
// errors below, so callers can branch with errors.Is without string matching.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Sentinel errors for the engine. Structured error types below implement
// errors.Is against these, so both granular and coarse checks work.
var (
	// ErrNotFound indicates that a requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidVariationIndex indicates a criteria variation index outside
	// the range declared on the link.
	ErrInvalidVariationIndex = errors.New("invalid variation index")

	// ErrInvalidStatusTransition indicates a set status change that the
	// state machine does not permit.
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrMalformedFieldPath indicates a field path that cannot be parsed or
	// resolved against the declared document type.
	ErrMalformedFieldPath = errors.New("malformed field path")

	// ErrRuleInconsistency indicates a rule whose links or comparisons
	// reference groups the rule does not declare, or whose graph is invalid.
	ErrRuleInconsistency = errors.New("rule inconsistency")
)

// NotFoundError represents an error when a resource is not found.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// VariationIndexError reports a variation selection outside a link's range.
type VariationIndexError struct {
	FromGroupID string
	ToGroupID   string
	Index       int
	Count       int
}

// Error implements the error interface.
func (e *VariationIndexError) Error() string {
	return fmt.Sprintf("variation index %d out of range for link %s->%s (%d variations)",
		e.Index, e.FromGroupID, e.ToGroupID, e.Count)
}

// Is implements errors.Is support.
func (e *VariationIndexError) Is(target error) bool {
	return target == ErrInvalidVariationIndex
}

// StatusTransitionError reports a forbidden set status change.
type StatusTransitionError struct {
	SetID string
	From  string
	To    string
}

// Error implements the error interface.
func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("set %s cannot transition from %s to %s", e.SetID, e.From, e.To)
}

// Is implements errors.Is support.
func (e *StatusTransitionError) Is(target error) bool {
	return target == ErrInvalidStatusTransition
}

// FieldPathError reports a field path that failed to parse or resolve.
type FieldPathError struct {
	Path    string
	Message string
}

// Error implements the error interface.
func (e *FieldPathError) Error() string {
	return fmt.Sprintf("field path %q: %s", e.Path, e.Message)
}

// Is implements errors.Is support.
func (e *FieldPathError) Is(target error) bool {
	return target == ErrMalformedFieldPath
}

// NewFieldPathError creates a new FieldPathError.
func NewFieldPathError(path, message string) *FieldPathError {
	return &FieldPathError{Path: path, Message: message}
}

// RuleInconsistencyError reports a structurally invalid rule.
type RuleInconsistencyError struct {
	RuleID  string
	Message string
}

// Error implements the error interface.
func (e *RuleInconsistencyError) Error() string {
	if e.RuleID != "" {
		return fmt.Sprintf("rule %s: %s", e.RuleID, e.Message)
	}
	return fmt.Sprintf("rule: %s", e.Message)
}

// Is implements errors.Is support.
func (e *RuleInconsistencyError) Is(target error) bool {
	return target == ErrRuleInconsistency
}

// NewRuleInconsistencyError creates a new RuleInconsistencyError.
func NewRuleInconsistencyError(ruleID, message string) *RuleInconsistencyError {
	return &RuleInconsistencyError{RuleID: ruleID, Message: message}
}
