package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/kindredapp/kindred-api/internal/domain"
)

// MockMatchHistoryStore implements store.MatchHistoryStore for testing
type MockMatchHistoryStore struct {
	// Custom behavior function
	GetMatchesForUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.MatchRecord, error)

	// Default response values
	Matches []*domain.MatchRecord
	Err     error

	// Call tracking for verification
	GetMatchesForUserCalls struct {
		mu      sync.Mutex
		Count   int
		UserIDs []uuid.UUID
	}
}

// GetMatchesForUser implements the store.MatchHistoryStore interface
func (m *MockMatchHistoryStore) GetMatchesForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.MatchRecord, error) {
	m.GetMatchesForUserCalls.mu.Lock()
	m.GetMatchesForUserCalls.Count++
	m.GetMatchesForUserCalls.UserIDs = append(m.GetMatchesForUserCalls.UserIDs, userID)
	m.GetMatchesForUserCalls.mu.Unlock()

	if m.GetMatchesForUserFn != nil {
		return m.GetMatchesForUserFn(ctx, userID)
	}

	return m.Matches, m.Err
}
