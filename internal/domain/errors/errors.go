package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidReference   = errors.New("referenced document does not exist")
	ErrInUse              = errors.New("document is referenced")
	ErrTooManyRequests    = errors.New("too many requests")
)

// ValidationError carries the offending field and a caller facing message.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError builds ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is reports ValidationError as ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// DuplicateError reports a unique constraint violation on Field.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, ErrAlreadyExists)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ReferenceError reports a write pointing at a missing document.
type ReferenceError struct {
	Field string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, ErrInvalidReference)
}

func (e *ReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}
