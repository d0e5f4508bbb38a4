package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidRating is returned when a grading outcome is not valid.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrInvalidScope is returned when a due-set scope is not valid.
	ErrInvalidScope = errors.New("invalid scope")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
