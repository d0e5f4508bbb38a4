package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/parla-app/parla-api/internal/domain"
	"github.com/parla-app/parla-api/internal/service/auth"
	"github.com/parla-app/parla-api/internal/service/practice"
	"github.com/parla-app/parla-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// No session to operate on
	case errors.Is(err, practice.ErrNoActiveSession):
		return http.StatusNotFound

	// Session in a state the operation cannot act on
	case errors.Is(err, practice.ErrSessionComplete),
		errors.Is(err, practice.ErrSubmissionInFlight):
		return http.StatusConflict

	// Not found errors
	case errors.Is(err, store.ErrItemNotFound),
		errors.Is(err, store.ErrReviewStateNotFound),
		errors.Is(err, store.ErrStreakNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, practice.ErrInvalidRating),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidScope),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Special case: nothing due is success with no body
	case errors.Is(err, practice.ErrEmptyDueSet):
		return http.StatusNoContent

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, practice.ErrNoActiveSession):
		return "No active practice session"

	case errors.Is(err, practice.ErrSessionComplete):
		return "Practice session already complete"

	case errors.Is(err, practice.ErrSubmissionInFlight):
		return "A submission is already being processed"

	case errors.Is(err, practice.ErrInvalidRating):
		return "Invalid rating"

	case errors.Is(err, domain.ErrInvalidScope):
		return "Invalid scope"

	case errors.Is(err, store.ErrItemNotFound):
		return "Item not found"

	case errors.Is(err, store.ErrReviewStateNotFound):
		return "Review state not found"

	case errors.Is(err, store.ErrStreakNotFound):
		return "Streak not found"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'SubmitAnswerRequest.Rating' Error:Field
		// validation for 'Rating' failed on the 'oneof' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
