package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors (e.g., ErrReviewStateNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors

	// ErrItemNotFound indicates that the requested item does not exist.
	ErrItemNotFound = fmt.Errorf("%w: item", ErrNotFound)

	// ErrReviewStateNotFound indicates that no review state exists yet for
	// the user and item. Callers treat this as "never reviewed".
	ErrReviewStateNotFound = fmt.Errorf("%w: review state", ErrNotFound)

	// ErrStreakNotFound indicates that the user has no streak record yet.
	ErrStreakNotFound = fmt.Errorf("%w: streak", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError wraps a low-level persistence failure with the entity and
// operation that produced it, so callers can report persistence failures
// without string matching.
type StoreError struct {
	Entity    string // e.g., "review_state", "streak"
	Operation string // e.g., "upsert", "get"
	Err       error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Entity, e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError for the given entity and operation.
func NewStoreError(entity, operation string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Err:       err,
	}
}
