package service

import (
	"errors"
	"fmt"
)

var (
	// ErrCourseNotFound is returned when a course lookup matches nothing.
	ErrCourseNotFound = errors.New("course not found")

	// ErrSubmissionNotFound is returned when a contact submission does not exist.
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrValidation is matched by every ValidationError.
	ErrValidation = errors.New("validation failed")
)

// ValidationError rejects user input before it reaches the store. Message is
// shown to the admin as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
