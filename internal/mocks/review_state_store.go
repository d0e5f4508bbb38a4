package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/domain"
	"github.com/parla-app/parla-api/internal/store"
)

// MockReviewStateStore implements store.ReviewStateStore for testing
type MockReviewStateStore struct {
	// Function fields for customizable behavior
	GetFn     func(ctx context.Context, userID uuid.UUID, ref domain.ItemRef) (*domain.ReviewState, error)
	GetManyFn func(ctx context.Context, userID uuid.UUID, refs []domain.ItemRef) (map[domain.ItemRef]*domain.ReviewState, error)
	UpsertFn  func(ctx context.Context, state *domain.ReviewState) error

	// Data for default implementation
	mu          sync.Mutex
	States      map[domain.ItemRef]*domain.ReviewState
	UpsertCalls int
	UpsertError error
}

// NewMockReviewStateStore creates a new mock store with initialized defaults
func NewMockReviewStateStore() *MockReviewStateStore {
	return &MockReviewStateStore{
		States: make(map[domain.ItemRef]*domain.ReviewState),
	}
}

// Get implements the ReviewStateStore interface
func (m *MockReviewStateStore) Get(
	ctx context.Context,
	userID uuid.UUID,
	ref domain.ItemRef,
) (*domain.ReviewState, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID, ref)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	state, exists := m.States[ref]
	if !exists || state.UserID != userID {
		return nil, store.ErrReviewStateNotFound
	}
	return state.Clone(), nil
}

// GetMany implements the ReviewStateStore interface
func (m *MockReviewStateStore) GetMany(
	ctx context.Context,
	userID uuid.UUID,
	refs []domain.ItemRef,
) (map[domain.ItemRef]*domain.ReviewState, error) {
	if m.GetManyFn != nil {
		return m.GetManyFn(ctx, userID, refs)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[domain.ItemRef]*domain.ReviewState)
	for _, ref := range refs {
		if state, exists := m.States[ref]; exists && state.UserID == userID {
			out[ref] = state.Clone()
		}
	}
	return out, nil
}

// Upsert implements the ReviewStateStore interface
func (m *MockReviewStateStore) Upsert(ctx context.Context, state *domain.ReviewState) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, state)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpsertCalls++
	if m.UpsertError != nil {
		return m.UpsertError
	}

	m.States[state.ItemRef] = state.Clone()
	return nil
}

// Ensure mock satisfies the interface
var _ store.ReviewStateStore = (*MockReviewStateStore)(nil)
