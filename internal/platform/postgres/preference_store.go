package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kindredapp/kindred-api/internal/domain"
	"github.com/kindredapp/kindred-api/internal/store"
)

// PostgresPreferenceStore implements the store.PreferenceStore interface
// using a PostgreSQL database as the storage backend. Updates follow
// last-writer-wins semantics: the final persisted state of concurrent
// learning sessions is whichever Update lands last.
type PostgresPreferenceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPreferenceStore creates a new PostgreSQL implementation of
// the PreferenceStore interface.
func NewPostgresPreferenceStore(db store.DBTX, logger *slog.Logger) *PostgresPreferenceStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPreferenceStore{
		db:     db,
		logger: logger.With(slog.String("component", "preference_store")),
	}
}

// Ensure PostgresPreferenceStore implements store.PreferenceStore interface
var _ store.PreferenceStore = (*PostgresPreferenceStore)(nil)

// GetOrCreate implements store.PreferenceStore.GetOrCreate.
// The first call for a user inserts an empty preference record; a
// concurrent first call that loses the insert race falls back to reading
// the winner's row.
func (s *PostgresPreferenceStore) GetOrCreate(
	ctx context.Context,
	userID uuid.UUID,
) (*domain.UserPreferences, error) {
	prefs, err := s.Get(ctx, userID)
	if err == nil {
		return prefs, nil
	}
	if !errors.Is(err, store.ErrPreferencesNotFound) {
		return nil, err
	}

	fresh, err := domain.NewUserPreferences(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if err := s.insert(ctx, fresh); err != nil {
		if isUniqueViolation(err) {
			// Lost a create race; the winner's row is authoritative.
			return s.Get(ctx, userID)
		}
		return nil, store.NewStoreError("preferences", "create", "failed to insert preferences", err)
	}

	s.logger.DebugContext(ctx, "created empty preferences", "user_id", userID.String())
	return fresh, nil
}

// Update implements store.PreferenceStore.Update.
func (s *PostgresPreferenceStore) Update(ctx context.Context, prefs *domain.UserPreferences) error {
	if err := prefs.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	weightsJSON, traitsJSON, err := encodePreferenceMaps(prefs)
	if err != nil {
		return store.NewStoreError("preferences", "update", "failed to encode preference maps", err)
	}

	query := `
		UPDATE user_preferences
		SET interest_weights = $2,
		    trait_preferences = $3,
		    accepted_count = $4,
		    rejected_count = $5,
		    average_accepted_score = $6,
		    learning_sessions = $7,
		    last_learned_at = $8,
		    updated_at = $9
		WHERE user_id = $1
	`

	result, err := s.db.ExecContext(ctx, query,
		prefs.UserID,
		weightsJSON,
		traitsJSON,
		prefs.AcceptedCount,
		prefs.RejectedCount,
		prefs.AverageAcceptedScore,
		prefs.LearningSessions,
		nullableTime(prefs.LastLearnedAt),
		time.Now().UTC(),
	)
	if err != nil {
		return store.NewStoreError("preferences", "update", "failed to update preferences", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError("preferences", "update", "failed to read rows affected", err)
	}
	if affected == 0 {
		return store.ErrPreferencesNotFound
	}

	return nil
}

// Get implements store.PreferenceStore.Get.
// Returns store.ErrPreferencesNotFound when no row exists for the user.
func (s *PostgresPreferenceStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error) {
	query := `
		SELECT user_id, interest_weights, trait_preferences, accepted_count,
		       rejected_count, average_accepted_score, learning_sessions,
		       last_learned_at, created_at, updated_at
		FROM user_preferences
		WHERE user_id = $1
	`

	var (
		prefs         domain.UserPreferences
		weightsJSON   []byte
		traitsJSON    []byte
		lastLearnedAt sql.NullTime
	)

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&prefs.UserID,
		&weightsJSON,
		&traitsJSON,
		&prefs.AcceptedCount,
		&prefs.RejectedCount,
		&prefs.AverageAcceptedScore,
		&prefs.LearningSessions,
		&lastLearnedAt,
		&prefs.CreatedAt,
		&prefs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPreferencesNotFound
		}
		return nil, store.NewStoreError("preferences", "get", "failed to query preferences", err)
	}

	if err := json.Unmarshal(weightsJSON, &prefs.InterestWeights); err != nil {
		return nil, store.NewStoreError("preferences", "get", "failed to decode interest weights", err)
	}

	if err := json.Unmarshal(traitsJSON, &prefs.TraitPreferences); err != nil {
		return nil, store.NewStoreError("preferences", "get", "failed to decode trait preferences", err)
	}

	if lastLearnedAt.Valid {
		prefs.LastLearnedAt = lastLearnedAt.Time
	}

	return &prefs, nil
}

// insert writes a brand-new preference row.
func (s *PostgresPreferenceStore) insert(ctx context.Context, prefs *domain.UserPreferences) error {
	weightsJSON, traitsJSON, err := encodePreferenceMaps(prefs)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO user_preferences (
			user_id, interest_weights, trait_preferences, accepted_count,
			rejected_count, average_accepted_score, learning_sessions,
			last_learned_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = s.db.ExecContext(ctx, query,
		prefs.UserID,
		weightsJSON,
		traitsJSON,
		prefs.AcceptedCount,
		prefs.RejectedCount,
		prefs.AverageAcceptedScore,
		prefs.LearningSessions,
		nullableTime(prefs.LastLearnedAt),
		prefs.CreatedAt,
		prefs.UpdatedAt,
	)
	return err
}

// encodePreferenceMaps serializes the two learned maps for JSONB columns.
func encodePreferenceMaps(prefs *domain.UserPreferences) ([]byte, []byte, error) {
	weights := prefs.InterestWeights
	if weights == nil {
		weights = map[string]float64{}
	}
	weightsJSON, err := json.Marshal(weights)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal interest weights: %w", err)
	}

	traits := prefs.TraitPreferences
	if traits == nil {
		traits = map[string]float64{}
	}
	traitsJSON, err := json.Marshal(traits)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal trait preferences: %w", err)
	}

	return weightsJSON, traitsJSON, nil
}

// nullableTime maps the zero time onto SQL NULL.
func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
