package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/kindredapp/kindred-api/internal/domain"
)

// MockProfileStore implements store.ProfileStore for testing
type MockProfileStore struct {
	// Custom behavior functions
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetCandidatePoolFn func(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Profile, error)

	// Default response values
	Profile *domain.Profile
	Pool    []*domain.Profile
	Err     error

	// Call tracking for verification
	GetByIDCalls struct {
		mu    sync.Mutex
		Count int
		IDs   []uuid.UUID
	}

	GetCandidatePoolCalls struct {
		mu      sync.Mutex
		Count   int
		UserIDs []uuid.UUID
		Limits  []int
	}
}

// GetByID implements the store.ProfileStore interface
func (m *MockProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	m.GetByIDCalls.mu.Lock()
	m.GetByIDCalls.Count++
	m.GetByIDCalls.IDs = append(m.GetByIDCalls.IDs, id)
	m.GetByIDCalls.mu.Unlock()

	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	return m.Profile, m.Err
}

// GetCandidatePool implements the store.ProfileStore interface
func (m *MockProfileStore) GetCandidatePool(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.Profile, error) {
	m.GetCandidatePoolCalls.mu.Lock()
	m.GetCandidatePoolCalls.Count++
	m.GetCandidatePoolCalls.UserIDs = append(m.GetCandidatePoolCalls.UserIDs, userID)
	m.GetCandidatePoolCalls.Limits = append(m.GetCandidatePoolCalls.Limits, limit)
	m.GetCandidatePoolCalls.mu.Unlock()

	if m.GetCandidatePoolFn != nil {
		return m.GetCandidatePoolFn(ctx, userID, limit)
	}

	return m.Pool, m.Err
}
