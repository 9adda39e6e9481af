package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kindredapp/kindred-api/internal/domain"
	"github.com/kindredapp/kindred-api/internal/store"
)

// PostgresProfileStore implements the store.ProfileStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a new PostgreSQL implementation of the
// ProfileStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
func NewPostgresProfileStore(db store.DBTX, logger *slog.Logger) *PostgresProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

// Ensure PostgresProfileStore implements store.ProfileStore interface
var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// GetByID implements store.ProfileStore.GetByID.
// Returns store.ErrProfileNotFound if the profile does not exist.
func (s *PostgresProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT id, display_name, bio, interests, location, gender_identity,
		       accepted_genders, age, age_min, age_max, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	profile, err := scanProfile(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProfileNotFound
		}
		return nil, store.NewStoreError("profile", "get", "failed to query profile", err)
	}

	return profile, nil
}

// GetCandidatePool implements store.ProfileStore.GetCandidatePool.
// It excludes the requesting user and anyone they already share a match
// record with; the pool order is deterministic (newest profiles first,
// ID as tie-break) so ranking ties remain stable.
func (s *PostgresProfileStore) GetCandidatePool(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.Profile, error) {
	query := `
		SELECT p.id, p.display_name, p.bio, p.interests, p.location, p.gender_identity,
		       p.accepted_genders, p.age, p.age_min, p.age_max, p.created_at, p.updated_at
		FROM profiles p
		WHERE p.id != $1
		  AND NOT EXISTS (
			SELECT 1 FROM matches m
			WHERE (m.user_a_id = $1 AND m.user_b_id = p.id)
			   OR (m.user_b_id = $1 AND m.user_a_id = p.id)
		  )
		ORDER BY p.created_at DESC, p.id
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, store.NewStoreError("profile", "list", "failed to query candidate pool", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			s.logger.WarnContext(ctx, "failed to close rows", "error", cerr)
		}
	}()

	var pool []*domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, store.NewStoreError("profile", "list", "failed to scan candidate", err)
		}
		pool = append(pool, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("profile", "list", "failed to iterate candidates", err)
	}

	return pool, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanProfile maps one database row onto a domain.Profile, decoding the
// JSONB-encoded tag lists.
func scanProfile(row rowScanner) (*domain.Profile, error) {
	var (
		profile          domain.Profile
		interestsJSON    []byte
		acceptedGendJSON []byte
	)

	err := row.Scan(
		&profile.ID,
		&profile.DisplayName,
		&profile.Bio,
		&interestsJSON,
		&profile.Location,
		&profile.GenderIdentity,
		&acceptedGendJSON,
		&profile.Age,
		&profile.AgeMin,
		&profile.AgeMax,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(interestsJSON, &profile.Interests); err != nil {
		return nil, fmt.Errorf("failed to decode interests: %w", err)
	}

	if err := json.Unmarshal(acceptedGendJSON, &profile.AcceptedGenders); err != nil {
		return nil, fmt.Errorf("failed to decode accepted genders: %w", err)
	}

	return &profile, nil
}
