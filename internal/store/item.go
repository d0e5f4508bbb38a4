package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/parla-app/parla-api/internal/domain"
)

// ItemStore defines read access to the vocabulary item pools. Items are
// authored by external collaborators; the scheduling core never writes them.
type ItemStore interface {
	// GetDueItems retrieves the items in scope that are eligible for review
	// at now: items the user has never reviewed, plus items whose next
	// review time has passed. Ordering is not guaranteed; the due-set
	// selector orders the result deterministically.
	GetDueItems(ctx context.Context, userID uuid.UUID, scope domain.Scope, now time.Time) ([]domain.Item, error)

	// GetDistractorPool retrieves the items usable as multiple-choice
	// distractors for the user. Only text fields are needed; media
	// references may be left empty.
	GetDistractorPool(ctx context.Context, userID uuid.UUID) ([]domain.Item, error)
}
