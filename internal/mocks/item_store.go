package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/domain"
	"github.com/parla-app/parla-api/internal/store"
)

// MockItemStore implements store.ItemStore for testing
type MockItemStore struct {
	// Function fields for customizable behavior
	GetDueItemsFn       func(ctx context.Context, userID uuid.UUID, scope domain.Scope, now time.Time) ([]domain.Item, error)
	GetDistractorPoolFn func(ctx context.Context, userID uuid.UUID) ([]domain.Item, error)

	// Data for default implementation
	DueItems      []domain.Item
	Pool          []domain.Item
	DueItemsError error
	PoolError     error
}

// NewMockItemStore creates a new mock store with initialized defaults
func NewMockItemStore() *MockItemStore {
	return &MockItemStore{}
}

// GetDueItems implements the ItemStore interface
func (m *MockItemStore) GetDueItems(
	ctx context.Context,
	userID uuid.UUID,
	scope domain.Scope,
	now time.Time,
) ([]domain.Item, error) {
	if m.GetDueItemsFn != nil {
		return m.GetDueItemsFn(ctx, userID, scope, now)
	}

	if m.DueItemsError != nil {
		return nil, m.DueItemsError
	}

	// Default implementation filters by source scope only; due-time
	// filtering belongs to the real store's query.
	var out []domain.Item
	for _, item := range m.DueItems {
		if scope.Includes(item.Source()) {
			out = append(out, item)
		}
	}
	return out, nil
}

// GetDistractorPool implements the ItemStore interface
func (m *MockItemStore) GetDistractorPool(ctx context.Context, userID uuid.UUID) ([]domain.Item, error) {
	if m.GetDistractorPoolFn != nil {
		return m.GetDistractorPoolFn(ctx, userID)
	}

	if m.PoolError != nil {
		return nil, m.PoolError
	}

	return m.Pool, nil
}

// Ensure mock satisfies the interface
var _ store.ItemStore = (*MockItemStore)(nil)
