package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/kindredapp/kindred-api/internal/domain"
)

// ProfileStore defines the interface for profile persistence as consumed
// by the match engine. Profiles are owned by the profile subsystem; the
// engine only reads them.
type ProfileStore interface {
	// GetByID retrieves a profile by its unique ID.
	// Returns ErrProfileNotFound if the profile does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)

	// GetCandidatePool retrieves up to limit candidate profiles for the
	// given user. Exclusion of the user themself, blocked users, and
	// already-matched users is the store's responsibility, not the
	// ranker's. The pool order is stable for a given store state; ranking
	// ties preserve it.
	GetCandidatePool(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Profile, error)
}
