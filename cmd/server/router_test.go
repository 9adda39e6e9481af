package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kindredapp/kindred-api/internal/config"
	"github.com/kindredapp/kindred-api/internal/domain"
	"github.com/kindredapp/kindred-api/internal/events"
	"github.com/kindredapp/kindred-api/internal/mocks"
	"github.com/kindredapp/kindred-api/internal/service/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApplication builds an application with mocked stores and oracle
// so router wiring can be exercised without Postgres, Redis, or Gemini.
func newTestApplication(t *testing.T, profileStore *mocks.MockProfileStore) *application {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	prefStore := &mocks.MockPreferenceStore{}
	oracleMock := &mocks.MockOracle{Result: 70}

	scorer := matching.NewScorer(oracleMock, nil, nil, logger)
	ranker := matching.NewRanker(profileStore, prefStore, scorer, nil, logger)

	return &application{
		config: &config.Config{
			Server: config.ServerConfig{Port: 8080, LogLevel: "info"},
		},
		logger:       logger,
		ranker:       ranker,
		eventEmitter: events.NewInMemoryEventEmitter(logger),
	}
}

// testProfile builds a valid profile for router-level tests.
func testProfile(id uuid.UUID) *domain.Profile {
	now := time.Now().UTC()
	return &domain.Profile{
		ID:              id,
		DisplayName:     "Test User",
		Interests:       []string{"hiking", "jazz"},
		Location:        "Portland",
		GenderIdentity:  "woman",
		AcceptedGenders: []string{"woman", "man"},
		Age:             30,
		AgeMin:          25,
		AgeMax:          35,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApplication(t, &mocks.MockProfileStore{})
	router := app.setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRankRouteWiring(t *testing.T) {
	userID := uuid.New()
	profileStore := &mocks.MockProfileStore{Profile: testProfile(userID)}
	app := newTestApplication(t, profileStore)
	router := app.setupRouter()

	req := httptest.NewRequest(
		http.MethodGet,
		"/api/matches/rank?user_id="+userID.String(),
		nil,
	)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		UserID string `json:"user_id"`
		Count  int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, userID.String(), resp.UserID)
	assert.Zero(t, resp.Count, "empty candidate pool should rank to zero results")
	assert.Equal(t, 1, profileStore.GetByIDCalls.Count)
}

func TestLearnRouteWiring(t *testing.T) {
	app := newTestApplication(t, &mocks.MockProfileStore{})
	router := app.setupRouter()

	body := `{"user_id": "` + uuid.New().String() + `"}`
	req := httptest.NewRequest(
		http.MethodPost,
		"/api/preferences/learn",
		strings.NewReader(body),
	)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestUnknownRouteReturns404(t *testing.T) {
	app := newTestApplication(t, &mocks.MockProfileStore{})
	router := app.setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
