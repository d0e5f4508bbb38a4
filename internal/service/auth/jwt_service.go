// Package auth provides JWT token verification for the API boundary.
// Account management and login flows live in an external collaborator;
// this service only needs to turn a bearer token into a user identity
// (or establish that there is none).
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common token validation errors
var (
	// ErrInvalidToken is returned when a token fails signature or format checks.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token's expiry has passed.
	ErrExpiredToken = errors.New("token expired")

	// ErrTokenNotYetValid is returned when a token's not-before is in the future.
	ErrTokenNotYetValid = errors.New("token not yet valid")
)

// JWTService defines operations for JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for the user. Used by
	// tests and local tooling; production tokens come from the identity
	// collaborator, signed with the same shared secret.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken validates an access token string and extracts the
	// claims, or returns ErrInvalidToken / ErrExpiredToken /
	// ErrTokenNotYetValid on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims carries the token fields the application cares about.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
