package api

import (
	"errors"
	"net/http"

	"github.com/kindredapp/kindred-api/internal/domain"
	"github.com/kindredapp/kindred-api/internal/service/matching"
	"github.com/kindredapp/kindred-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Bad request errors
	case errors.Is(err, matching.ErrInvalidUserID),
		errors.Is(err, matching.ErrInvalidMaxResults),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, matching.ErrUserNotFound),
		errors.Is(err, store.ErrProfileNotFound),
		errors.Is(err, store.ErrMatchNotFound),
		errors.Is(err, store.ErrPreferencesNotFound):
		return http.StatusNotFound

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
	case errors.Is(err, matching.ErrInvalidUserID):
		return "Invalid user ID"

	case errors.Is(err, matching.ErrInvalidMaxResults):
		return "max_results must be between 1 and 100"

	case errors.Is(err, domain.ErrValidation):
		return "Invalid profile data"

	case errors.Is(err, matching.ErrUserNotFound),
		errors.Is(err, store.ErrProfileNotFound):
		return "User not found"

	case errors.Is(err, store.ErrMatchNotFound):
		return "Match not found"

	case errors.Is(err, store.ErrPreferencesNotFound):
		return "Preferences not found"

	default:
		return "An unexpected error occurred"
	}
}
