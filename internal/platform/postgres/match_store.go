package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kindredapp/kindred-api/internal/domain"
	"github.com/kindredapp/kindred-api/internal/store"
)

// PostgresMatchStore implements the store.MatchHistoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMatchStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMatchStore creates a new PostgreSQL implementation of the
// MatchHistoryStore interface.
func NewPostgresMatchStore(db store.DBTX, logger *slog.Logger) *PostgresMatchStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMatchStore{
		db:     db,
		logger: logger.With(slog.String("component", "match_store")),
	}
}

// Ensure PostgresMatchStore implements store.MatchHistoryStore interface
var _ store.MatchHistoryStore = (*PostgresMatchStore)(nil)

// GetMatchesForUser implements store.MatchHistoryStore.GetMatchesForUser.
// An empty history yields an empty slice, not an error.
func (s *PostgresMatchStore) GetMatchesForUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.MatchRecord, error) {
	query := `
		SELECT id, user_a_id, user_b_id, compatibility_score, status, created_at, updated_at
		FROM matches
		WHERE user_a_id = $1 OR user_b_id = $1
		ORDER BY created_at, id
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, store.NewStoreError("match", "list", "failed to query match history", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.WarnContext(ctx, "failed to close rows", "error", cerr)
		}
	}()

	var matches []*domain.MatchRecord
	for rows.Next() {
		var match domain.MatchRecord
		err := rows.Scan(
			&match.ID,
			&match.UserAID,
			&match.UserBID,
			&match.CompatibilityScore,
			&match.Status,
			&match.CreatedAt,
			&match.UpdatedAt,
		)
		if err != nil {
			return nil, store.NewStoreError("match", "list", "failed to scan match record", err)
		}
		matches = append(matches, &match)
	}

	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("match", "list", "failed to iterate match history", err)
	}

	return matches, nil
}
