package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/api/shared"
	"github.com/parla-app/parla-api/internal/platform/logger"
	"github.com/parla-app/parla-api/internal/service/practice"
)

// StreakHandler handles streak-related HTTP requests
type StreakHandler struct {
	practiceService practice.Service
	logger          *slog.Logger
}

// NewStreakHandler creates a new StreakHandler
func NewStreakHandler(practiceService practice.Service, logger *slog.Logger) *StreakHandler {
	if practiceService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("practiceService cannot be nil for StreakHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StreakHandler")
	}

	return &StreakHandler{
		practiceService: practiceService,
		logger:          logger.With(slog.String("component", "streak_handler")),
	}
}

// GetStreak handles GET /streak requests
// It returns the authenticated user's streak, zero-valued when they have
// never completed a graded review.
func (h *StreakHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	streak, err := h.practiceService.GetStreak(r.Context(), userID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get streak"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, streakToResponse(streak))
}
