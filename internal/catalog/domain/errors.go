package domain

import (
	"errors"
	"fmt"
)

// Domain error kinds surfaced to callers. Messages are static per kind;
// lower-level store errors are wrapped, never exposed verbatim.
var (
	ErrInvalidID      = errors.New("invalid product id")
	ErrNotFound       = errors.New("product not found")
	ErrConflict       = errors.New("product code or slug already exists")
	ErrCreationFailed = errors.New("failed to create product")
	ErrUnavailable    = errors.New("catalog dependency unavailable")
)

// ValidationError reports a missing or malformed input field, rejected
// before any store access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a field validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
