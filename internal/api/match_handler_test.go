package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/kindredapp/kindred-api/internal/api"
	"github.com/kindredapp/kindred-api/internal/events"
	"github.com/kindredapp/kindred-api/internal/service/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRanker implements api.MatchRanker for testing
type mockRanker struct {
	results []matching.RankedCandidate
	err     error

	calls      int
	lastUserID uuid.UUID
	lastMax    int
}

func (m *mockRanker) Rank(
	ctx context.Context,
	userID uuid.UUID,
	maxResults int,
) ([]matching.RankedCandidate, error) {
	m.calls++
	m.lastUserID = userID
	m.lastMax = maxResults
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

// mockEmitter implements events.EventEmitter for testing
type mockEmitter struct {
	err    error
	events []*events.TaskRequestEvent
}

func (m *mockEmitter) EmitEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	m.events = append(m.events, event)
	return m.err
}

func newTestHandler(ranker api.MatchRanker, emitter events.EventEmitter) *api.MatchHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return api.NewMatchHandler(ranker, emitter, logger)
}

func TestRankMatches(t *testing.T) {
	userID := uuid.New()
	candidate := uuid.New()

	testCases := []struct {
		name           string
		query          string
		ranker         *mockRanker
		expectedStatus int
		expectedCount  int
		expectedMax    int
	}{
		{
			name:  "happy path",
			query: "?user_id=" + userID.String() + "&max_results=5",
			ranker: &mockRanker{results: []matching.RankedCandidate{
				{CandidateID: candidate, BaseScore: 80, AdjustedScore: 85},
			}},
			expectedStatus: http.StatusOK,
			expectedCount:  1,
			expectedMax:    5,
		},
		{
			name:           "missing max_results defaults to zero",
			query:          "?user_id=" + userID.String(),
			ranker:         &mockRanker{results: []matching.RankedCandidate{}},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
			expectedMax:    0,
		},
		{
			name:           "missing user_id",
			query:          "",
			ranker:         &mockRanker{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed user_id",
			query:          "?user_id=not-a-uuid",
			ranker:         &mockRanker{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-integer max_results",
			query:          "?user_id=" + userID.String() + "&max_results=lots",
			ranker:         &mockRanker{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "out-of-range max_results",
			query:          "?user_id=" + userID.String() + "&max_results=500",
			ranker:         &mockRanker{err: matching.ErrInvalidMaxResults},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown user",
			query:          "?user_id=" + userID.String(),
			ranker:         &mockRanker{err: matching.ErrUserNotFound},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "internal error",
			query:          "?user_id=" + userID.String(),
			ranker:         &mockRanker{err: errors.New("store exploded")},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTestHandler(tc.ranker, &mockEmitter{})

			req := httptest.NewRequest(http.MethodGet, "/api/matches/rank"+tc.query, nil)
			rec := httptest.NewRecorder()

			handler.RankMatches(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)

			if tc.expectedStatus == http.StatusOK {
				var resp api.RankResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, userID.String(), resp.UserID)
				assert.Equal(t, tc.expectedCount, resp.Count)
				assert.Len(t, resp.Results, tc.expectedCount)
				assert.Equal(t, tc.expectedMax, tc.ranker.lastMax)
				assert.Equal(t, userID, tc.ranker.lastUserID)
			}

			if tc.expectedStatus >= http.StatusBadRequest {
				var resp map[string]interface{}
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				errMsg, _ := resp["error"].(string)
				assert.NotEmpty(t, errMsg)
				// Internal details must never leak to the client
				assert.NotContains(t, errMsg, "store exploded")
			}
		})
	}
}

func TestLearnPreferences(t *testing.T) {
	userID := uuid.New()

	t.Run("accepted", func(t *testing.T) {
		emitter := &mockEmitter{}
		handler := newTestHandler(&mockRanker{}, emitter)

		body, err := json.Marshal(api.LearnRequest{UserID: userID.String()})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/preferences/learn", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.LearnPreferences(rec, req)

		assert.Equal(t, http.StatusAccepted, rec.Code)

		require.Len(t, emitter.events, 1)
		assert.Equal(t, events.EventTypePreferenceLearning, emitter.events[0].Type)

		var payload events.PreferenceLearningPayload
		require.NoError(t, emitter.events[0].UnmarshalPayload(&payload))
		assert.Equal(t, userID.String(), payload.UserID)
	})

	t.Run("malformed body", func(t *testing.T) {
		emitter := &mockEmitter{}
		handler := newTestHandler(&mockRanker{}, emitter)

		req := httptest.NewRequest(http.MethodPost, "/api/preferences/learn", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()

		handler.LearnPreferences(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, emitter.events)
	})

	t.Run("missing user_id", func(t *testing.T) {
		emitter := &mockEmitter{}
		handler := newTestHandler(&mockRanker{}, emitter)

		req := httptest.NewRequest(http.MethodPost, "/api/preferences/learn", bytes.NewReader([]byte("{}")))
		rec := httptest.NewRecorder()

		handler.LearnPreferences(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, emitter.events)
	})

	t.Run("invalid user_id", func(t *testing.T) {
		emitter := &mockEmitter{}
		handler := newTestHandler(&mockRanker{}, emitter)

		body := []byte(`{"user_id":"not-a-uuid"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/preferences/learn", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.LearnPreferences(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, emitter.events)
	})

	t.Run("emitter failure", func(t *testing.T) {
		emitter := &mockEmitter{err: errors.New("queue full")}
		handler := newTestHandler(&mockRanker{}, emitter)

		body, err := json.Marshal(api.LearnRequest{UserID: userID.String()})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/preferences/learn", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.LearnPreferences(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
