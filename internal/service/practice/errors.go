// Package practice implements the practice session pipeline: selecting the
// due set, driving a session through it exercise by exercise, applying the
// scheduling transitions, and keeping the user's streak current.
package practice

import (
	"errors"
	"fmt"
)

// Common error types for the practice service
var (
	// ErrNoActiveSession indicates the user has not started a session, or
	// abandoned it (sessions are ephemeral and never recovered).
	ErrNoActiveSession = errors.New("no active practice session")

	// ErrSessionComplete indicates the session snapshot is exhausted;
	// starting a new session picks up whatever is due now.
	ErrSessionComplete = errors.New("practice session already complete")

	// ErrSubmissionInFlight indicates a submission arrived while another
	// was still being processed for the same session. The duplicate is
	// rejected rather than interleaved so an item is never double-graded.
	ErrSubmissionInFlight = errors.New("another submission is in flight")

	// ErrInvalidRating indicates an unrecognized grading outcome at the
	// service boundary.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrEmptyDueSet indicates nothing is due, so no session was started.
	ErrEmptyDueSet = errors.New("no items due for review")
)

// ServiceError wraps errors from the practice service with the operation
// that failed, so consumers can differentiate with errors.As rather than
// string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "start_session", "submit").
	Operation string
	// Err is the underlying error that caused the failure.
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s operation failed: %v", e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// newServiceError creates a ServiceError for the given operation.
func newServiceError(operation string, err error) *ServiceError {
	return &ServiceError{Operation: operation, Err: err}
}
