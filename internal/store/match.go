package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/kindredapp/kindred-api/internal/domain"
)

// MatchHistoryStore defines the interface for match record persistence.
// Match records are created and status-transitioned by the surrounding
// application; the engine reads them to learn preferences.
type MatchHistoryStore interface {
	// GetMatchesForUser retrieves all match records in which the given
	// user is one of the two parties, in creation order. An empty history
	// is a valid result, not an error.
	GetMatchesForUser(ctx context.Context, userID uuid.UUID) ([]*domain.MatchRecord, error)
}
