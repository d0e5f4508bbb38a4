package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/api/shared"
	"github.com/parla-app/parla-api/internal/redact"
	"github.com/parla-app/parla-api/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// bearerToken extracts the token from an Authorization header of the form
// "Bearer <token>". The empty string means the header is absent or not a
// well-formed bearer credential.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" || strings.ContainsRune(token, ' ') {
		return ""
	}
	return token
}

// Authenticate validates JWT tokens from the Authorization header and
// adds the user ID to the request context for authorized requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Missing or malformed authorization header")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			status, message := http.StatusUnauthorized, "Invalid token"
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				message = "Token expired"
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
				// keep the generic message
			default:
				slog.Error("failed to validate token", "error", redact.Error(err))
				status, message = http.StatusInternalServerError, "Authentication error"
			}
			shared.RespondWithError(w, r, status, message)
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the user ID from the request context.
// Returns the user ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	return userID, ok
}
