// Package apperror defines the three error classes the engine surfaces:
// validation failures (caller input is wrong), not-found (a referenced
// record does not exist), and persistence failures (the store itself).
// Deleting a record that does not exist is deliberately NOT an error.
package apperror

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a referenced identifier that does not exist.
var ErrNotFound = errors.New("record not found")

// NotFound wraps ErrNotFound with the offending identifier.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

// ValidationError reports input rejected before any write happened.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError for a field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Persistence wraps a store failure with the operation that hit it.
// These surface as-is; there is no retry path for a local file.
func Persistence(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
