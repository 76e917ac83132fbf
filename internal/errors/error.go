// Package errors provides the error kinds returned by catalog operations.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidArgument marks malformed or missing input rejected before any storage access.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("validation failed")

// ErrNotFound is matched by every entity-specific not found error.
var ErrNotFound = errors.New("not found")

var ErrStoreNotFound = fmt.Errorf("store %w", ErrNotFound)
var ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)

var ErrReadOnly = errors.New("write attempted in a read-only unit of work")

var ErrTransactionBegin = errors.New("failed to begin transaction")
var ErrTransactionCommit = errors.New("failed to commit transaction")
var ErrTransactionRollback = errors.New("failed to rollback transaction")

// InvalidArgument wraps ErrInvalidArgument with a description of the offending input.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// ValidationError lists the fields of a well-formed request that violate a rule.
// Fields maps the field name to the violated rule, e.g. "name" -> "notblank".
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns nil when fields is empty.
func NewValidationError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
