// Package api provides HTTP handlers for the API.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/parla-app/parla-api/internal/api/shared"
	"github.com/parla-app/parla-api/internal/domain"
	"github.com/parla-app/parla-api/internal/platform/logger"
	"github.com/parla-app/parla-api/internal/redact"
	"github.com/parla-app/parla-api/internal/service/practice"
)

// PracticeHandler handles practice-session HTTP requests
type PracticeHandler struct {
	practiceService practice.Service
	logger          *slog.Logger
}

// NewPracticeHandler creates a new PracticeHandler
func NewPracticeHandler(practiceService practice.Service, logger *slog.Logger) *PracticeHandler {
	if practiceService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("practiceService cannot be nil for PracticeHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PracticeHandler")
	}

	return &PracticeHandler{
		practiceService: practiceService,
		logger:          logger.With(slog.String("component", "practice_handler")),
	}
}

// StartSession handles POST /practice/sessions requests
// It snapshots the authenticated user's due items and begins a session.
func (h *PracticeHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	// The body is optional; an absent or empty body means the full scope.
	req := StartSessionRequest{}
	if r.Body != nil && r.ContentLength != 0 {
		if err := shared.DecodeJSON(r, &req); err != nil {
			log.Warn("invalid request format",
				slog.String("error", redact.Error(err)),
				slog.String("user_id", userID.String()))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	scope := domain.Scope(req.Scope)
	if req.Scope == "" {
		scope = domain.ScopeBoth
	}

	view, err := h.practiceService.StartSession(r.Context(), userID, scope)

	// Special case: nothing due right now
	if errors.Is(err, practice.ErrEmptyDueSet) {
		log.Debug("no items due", slog.String("user_id", userID.String()))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to start practice session"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("practice session started",
		slog.String("user_id", userID.String()),
		slog.Int("size", view.Size))
	shared.RespondWithJSON(w, r, http.StatusCreated, sessionToResponse(view))
}

// GetCurrentSession handles GET /practice/sessions/current requests
// It returns the in-flight session's progress and current exercise.
func (h *PracticeHandler) GetCurrentSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	view, err := h.practiceService.CurrentExercise(r.Context(), userID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get practice session"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(view))
}

// SubmitAnswer handles POST /practice/sessions/answer requests
// It grades the current exercise and advances the session.
func (h *PracticeHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	result, err := h.practiceService.Submit(r.Context(), userID, domain.Rating(req.Rating))
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit answer"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	response := SubmitResponse{
		State:         stateToResponse(result.State),
		Stats:         statsToResponse(result.Stats),
		Completed:     result.Completed,
		Streak:        streakToResponse(result.Streak),
		StreakPending: result.StreakErr != nil,
		Next:          exerciseToResponse(result.Next),
	}

	log.Debug("answer submitted",
		slog.String("user_id", userID.String()),
		slog.String("item_ref", response.State.ItemRef),
		slog.String("rating", req.Rating),
		slog.Bool("completed", result.Completed))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
