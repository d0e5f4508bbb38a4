package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/parla-app/parla-api/internal/domain"
)

// StreakStore defines the interface for streak persistence.
type StreakStore interface {
	// Get retrieves the streak for a user.
	// Returns ErrStreakNotFound if the user has no streak yet.
	Get(ctx context.Context, userID uuid.UUID) (*domain.Streak, error)

	// Upsert inserts or replaces the user's streak. It handles domain
	// validation internally and returns validation errors if the streak
	// is invalid.
	Upsert(ctx context.Context, streak *domain.Streak) error
}
