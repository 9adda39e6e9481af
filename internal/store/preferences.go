package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/kindredapp/kindred-api/internal/domain"
)

// PreferenceStore defines the interface for learned user preference
// persistence. Preferences are created lazily on the first learning run
// and are never deleted.
type PreferenceStore interface {
	// Get retrieves the preferences for the given user.
	// Returns ErrPreferencesNotFound if no learning session has ever run
	// for them; readers treat that as "no preferences", not a failure.
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error)

	// GetOrCreate retrieves the preferences for the given user, creating
	// an empty record if none exists yet. The first call for a user is
	// idempotent.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error)

	// Update persists the full preference state. Concurrent updates for
	// the same user resolve last-writer-wins; callers should avoid
	// issuing concurrent learning sessions for one user.
	Update(ctx context.Context, prefs *domain.UserPreferences) error
}
