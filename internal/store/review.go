package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/parla-app/parla-api/internal/domain"
)

// ReviewStateStore defines the interface for review state persistence.
type ReviewStateStore interface {
	// Get retrieves the review state for a user and item ref.
	// Returns ErrReviewStateNotFound if the state does not exist, which is
	// the normal case for items that have never been graded.
	Get(ctx context.Context, userID uuid.UUID, ref domain.ItemRef) (*domain.ReviewState, error)

	// GetMany retrieves the review states for the given refs, keyed by ref.
	// Refs without state are simply absent from the result, not an error.
	GetMany(ctx context.Context, userID uuid.UUID, refs []domain.ItemRef) (map[domain.ItemRef]*domain.ReviewState, error)

	// Upsert inserts or replaces the review state identified by the state's
	// user ID and item ref. It handles domain validation internally and
	// returns validation errors if the state is invalid.
	Upsert(ctx context.Context, state *domain.ReviewState) error
}
