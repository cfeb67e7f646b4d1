package errors

import (
	stdErrors "errors"
	"fmt"
)

// MissingRequiredFieldError is returned by a builder when a field without a
// default was never set.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// NewMissingRequiredFieldError creates a MissingRequiredFieldError for field.
func NewMissingRequiredFieldError(field string) *MissingRequiredFieldError {
	return &MissingRequiredFieldError{Field: field}
}

// IsMissingRequiredFieldError reports whether err is a MissingRequiredFieldError (even when wrapped).
func IsMissingRequiredFieldError(err error) bool {
	var target *MissingRequiredFieldError
	return stdErrors.As(err, &target)
}

// InvalidFieldError is returned by a builder when a field was set to a value
// outside its allowed range.
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// NewInvalidFieldError creates an InvalidFieldError.
func NewInvalidFieldError(field, reason string) *InvalidFieldError {
	return &InvalidFieldError{Field: field, Reason: reason}
}

// IsInvalidFieldError reports whether err is an InvalidFieldError (even when wrapped).
func IsInvalidFieldError(err error) bool {
	var target *InvalidFieldError
	return stdErrors.As(err, &target)
}
