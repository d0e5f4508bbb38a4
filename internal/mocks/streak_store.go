package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/domain"
	"github.com/parla-app/parla-api/internal/store"
)

// MockStreakStore implements store.StreakStore for testing
type MockStreakStore struct {
	// Function fields for customizable behavior
	GetFn    func(ctx context.Context, userID uuid.UUID) (*domain.Streak, error)
	UpsertFn func(ctx context.Context, streak *domain.Streak) error

	// Data for default implementation
	mu          sync.Mutex
	Streaks     map[uuid.UUID]*domain.Streak
	UpsertError error
}

// NewMockStreakStore creates a new mock store with initialized defaults
func NewMockStreakStore() *MockStreakStore {
	return &MockStreakStore{
		Streaks: make(map[uuid.UUID]*domain.Streak),
	}
}

// Get implements the StreakStore interface
func (m *MockStreakStore) Get(ctx context.Context, userID uuid.UUID) (*domain.Streak, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	streak, exists := m.Streaks[userID]
	if !exists {
		return nil, store.ErrStreakNotFound
	}
	copied := *streak
	return &copied, nil
}

// Upsert implements the StreakStore interface
func (m *MockStreakStore) Upsert(ctx context.Context, streak *domain.Streak) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, streak)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UpsertError != nil {
		return m.UpsertError
	}

	copied := *streak
	m.Streaks[streak.UserID] = &copied
	return nil
}

// Ensure mock satisfies the interface
var _ store.StreakStore = (*MockStreakStore)(nil)
