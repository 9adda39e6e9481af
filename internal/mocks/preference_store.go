package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/kindredapp/kindred-api/internal/domain"
)

// MockPreferenceStore implements store.PreferenceStore for testing
type MockPreferenceStore struct {
	// Custom behavior functions
	GetFn         func(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error)
	GetOrCreateFn func(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error)
	UpdateFn      func(ctx context.Context, prefs *domain.UserPreferences) error

	// Default response values
	Preferences *domain.UserPreferences
	Err         error

	// Call tracking for verification
	GetCalls struct {
		mu      sync.Mutex
		Count   int
		UserIDs []uuid.UUID
	}

	GetOrCreateCalls struct {
		mu      sync.Mutex
		Count   int
		UserIDs []uuid.UUID
	}

	UpdateCalls struct {
		mu      sync.Mutex
		Count   int
		Updated []*domain.UserPreferences
	}
}

// Get implements the store.PreferenceStore interface
func (m *MockPreferenceStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error) {
	m.GetCalls.mu.Lock()
	m.GetCalls.Count++
	m.GetCalls.UserIDs = append(m.GetCalls.UserIDs, userID)
	m.GetCalls.mu.Unlock()

	if m.GetFn != nil {
		return m.GetFn(ctx, userID)
	}

	return m.Preferences, m.Err
}

// GetOrCreate implements the store.PreferenceStore interface
func (m *MockPreferenceStore) GetOrCreate(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.UserPreferences, error) {
	m.GetOrCreateCalls.mu.Lock()
	m.GetOrCreateCalls.Count++
	m.GetOrCreateCalls.UserIDs = append(m.GetOrCreateCalls.UserIDs, userID)
	m.GetOrCreateCalls.mu.Unlock()

	if m.GetOrCreateFn != nil {
		return m.GetOrCreateFn(ctx, userID)
	}

	if m.Preferences == nil && m.Err == nil {
		prefs, err := domain.NewUserPreferences(userID)
		if err != nil {
			return nil, err
		}
		return prefs, nil
	}

	return m.Preferences, m.Err
}

// Update implements the store.PreferenceStore interface
func (m *MockPreferenceStore) Update(ctx context.Context, prefs *domain.UserPreferences) error {
	m.UpdateCalls.mu.Lock()
	m.UpdateCalls.Count++
	m.UpdateCalls.Updated = append(m.UpdateCalls.Updated, prefs)
	m.UpdateCalls.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, prefs)
	}

	return m.Err
}
