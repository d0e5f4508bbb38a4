package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	// Function fields for customizable behavior
	GenerateTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Data for default implementation
	Token         string
	UserID        uuid.UUID
	ValidateError error
}

// NewMockJWTService creates a new mock with initialized defaults
func NewMockJWTService() *MockJWTService {
	return &MockJWTService{
		Token: "mock-token",
	}
}

// GenerateToken implements the JWTService interface
func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	m.UserID = userID
	return m.Token, nil
}

// ValidateToken implements the JWTService interface
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}

	if m.ValidateError != nil {
		return nil, m.ValidateError
	}

	if tokenString != m.Token {
		return nil, auth.ErrInvalidToken
	}

	return &auth.Claims{
		UserID:    m.UserID,
		Subject:   m.UserID.String(),
		IssuedAt:  time.Now().Add(-time.Minute),
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

// Ensure mock satisfies the interface
var _ auth.JWTService = (*MockJWTService)(nil)
