// Package api provides HTTP handlers for the API.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/kindredapp/kindred-api/internal/api/shared"
	"github.com/kindredapp/kindred-api/internal/events"
	"github.com/kindredapp/kindred-api/internal/platform/logger"
	"github.com/kindredapp/kindred-api/internal/service/matching"
)

// MatchRanker defines the ranking operation the handler delegates to.
// It is implemented by matching.Ranker.
type MatchRanker interface {
	Rank(ctx context.Context, userID uuid.UUID, maxResults int) ([]matching.RankedCandidate, error)
}

// RankResponse represents the response data for a ranking request
type RankResponse struct {
	UserID  string                     `json:"user_id"`
	Results []matching.RankedCandidate `json:"results"`
	Count   int                        `json:"count"`
}

// LearnRequest represents a request to run a preference learning session
type LearnRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// LearnResponse acknowledges an accepted learning request
type LearnResponse struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// MatchHandler handles match-related HTTP requests
type MatchHandler struct {
	ranker  MatchRanker
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewMatchHandler creates a new MatchHandler
func NewMatchHandler(
	ranker MatchRanker,
	emitter events.EventEmitter,
	log *slog.Logger,
) *MatchHandler {
	if ranker == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("ranker cannot be nil for MatchHandler")
	}
	if emitter == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("event emitter cannot be nil for MatchHandler")
	}
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for MatchHandler")
	}

	return &MatchHandler{
		ranker:  ranker,
		emitter: emitter,
		logger:  log.With(slog.String("component", "match_handler")),
	}
}

// RankMatches handles GET /matches/rank requests.
// It scores the candidate pool for the given user and returns the
// preference-weighted ranking.
func (h *MatchHandler) RankMatches(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, err := uuid.Parse(r.URL.Query().Get("user_id"))
	if err != nil || userID == uuid.Nil {
		log.Debug("invalid user_id query parameter", slog.String("user_id", r.URL.Query().Get("user_id")))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return
	}

	maxResults := 0
	if raw := r.URL.Query().Get("max_results"); raw != "" {
		maxResults, err = strconv.Atoi(raw)
		if err != nil {
			log.Debug("invalid max_results query parameter", slog.String("max_results", raw))
			shared.RespondWithError(w, r, http.StatusBadRequest, "max_results must be an integer")
			return
		}
	}

	log.Debug("ranking matches",
		slog.String("user_id", userID.String()),
		slog.Int("max_results", maxResults))

	results, err := h.ranker.Rank(r.Context(), userID, maxResults)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to rank matches"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("successfully ranked matches",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(results)))

	shared.RespondWithJSON(w, r, http.StatusOK, RankResponse{
		UserID:  userID.String(),
		Results: results,
		Count:   len(results),
	})
}

// LearnPreferences handles POST /preferences/learn requests.
// The learning session runs in the background; the handler only
// validates the request and emits the task request event, responding
// with 202 Accepted.
func (h *MatchHandler) LearnPreferences(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LearnRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("failed to decode learn request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Debug("learn request failed validation", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "user_id is required and must be a valid UUID")
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil || userID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return
	}

	event, err := events.NewPreferenceLearningEvent(userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to request learning session", err)
		return
	}

	if err := h.emitter.EmitEvent(r.Context(), event); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable,
			"Learning session could not be scheduled", err)
		return
	}

	log.Info("learning session scheduled",
		slog.String("user_id", userID.String()),
		slog.String("event_id", event.ID.String()))

	shared.RespondWithJSON(w, r, http.StatusAccepted, LearnResponse{
		UserID:  userID.String(),
		Message: "Learning session scheduled",
		TraceID: shared.GetTraceID(r.Context()),
	})
}
