/*
errors.go - Centralized error types for the workforce domain

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages return these (usually wrapped) so the API layer can map
  them to HTTP status codes with errors.Is.

ERROR CATEGORIES:
  1. Validation errors - per-field form rule violations, collected
  2. State errors - not found, invalid status transition
  3. Store errors - wrapped driver failures (not defined here)

VALIDATION:
  Rules are checked all at once and every failing field is reported, the
  same way a form shows one message per input:

    v := core.NewValidator()
    v.Required("date", in.Date)
    v.Check("amount", amount.IsPositive(), core.ErrNonPositive, "Amount must be greater than 0")
    if err := v.Err(); err != nil {
        return err // *ValidationError
    }

  Each field error wraps a sentinel, so
  errors.Is(err, core.ErrBalanceExceeded) works on the aggregate.

SEE ALSO:
  - api/handlers.go: writeDomainError maps these to status codes
*/
package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation matches any *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrRequired is returned when a mandatory field is missing or blank.
	ErrRequired = errors.New("required field missing")

	// ErrInvalidValue is returned when a field cannot be parsed or is not an allowed value.
	ErrInvalidValue = errors.New("invalid value")

	// ErrNonPositive is returned when an amount must be greater than zero.
	ErrNonPositive = errors.New("value must be positive")

	// ErrDateOrder is returned when a range ends before it starts.
	ErrDateOrder = errors.New("end date before start date")

	// ErrBalanceExceeded is returned when a leave request exceeds the remaining allowance.
	ErrBalanceExceeded = errors.New("vacation balance exceeded")

	// ErrHoursExceeded is returned when worked hours pass the daily maximum.
	ErrHoursExceeded = errors.New("worked hours exceed maximum")

	// ErrNotFound is returned when a referenced record doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition is returned when a status change is not allowed
	// from the record's current status (e.g. approving a rejected request).
	ErrInvalidTransition = errors.New("invalid status transition")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// FieldError is one failing input.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

func (e *FieldError) Unwrap() error { return e.Err }

// ValidationError aggregates every failing field of one input.
type ValidationError struct {
	Errors []*FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, fe := range e.Errors {
		errs[i] = fe
	}
	return errs
}

// Fields returns field -> message, the shape forms render inline.
func (e *ValidationError) Fields() map[string]string {
	out := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		out[fe.Field] = fe.Message
	}
	return out
}

// NotFoundError names the missing record.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s %q not found", e.Kind, e.ID) }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// TransitionError describes a rejected status change.
type TransitionError struct {
	Kind string
	ID   string
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move %s %q from %s to %s", e.Kind, e.ID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// =============================================================================
// VALIDATOR - Collects field errors
// =============================================================================

// Validator accumulates field errors. A field keeps the most recent failure,
// matching how a form replaces an input's message.
type Validator struct {
	errs map[string]*FieldError
}

func NewValidator() *Validator {
	return &Validator{errs: make(map[string]*FieldError)}
}

// Add records a failure for field.
func (v *Validator) Add(field string, err error, message string) {
	v.errs[field] = &FieldError{Field: field, Message: message, Err: err}
}

// Check records a failure when ok is false. Returns ok.
func (v *Validator) Check(field string, ok bool, err error, message string) bool {
	if !ok {
		v.Add(field, err, message)
	}
	return ok
}

// Required fails when value is blank.
func (v *Validator) Required(field, value, message string) bool {
	return v.Check(field, strings.TrimSpace(value) != "", ErrRequired, message)
}

// Has reports whether field already failed.
func (v *Validator) Has(field string) bool {
	_, ok := v.errs[field]
	return ok
}

// Err returns nil when nothing failed, otherwise a *ValidationError with
// fields in name order.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	names := make([]string, 0, len(v.errs))
	for name := range v.errs {
		names = append(names, name)
	}
	sort.Strings(names)

	ve := &ValidationError{Errors: make([]*FieldError, len(names))}
	for i, name := range names {
		ve.Errors[i] = v.errs[name]
	}
	return ve
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidValue) ||
		errors.Is(err, ErrRequired)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict returns true if the error is a rejected status change.
func IsConflict(err error) bool {
	return errors.Is(err, ErrInvalidTransition)
}
