package matching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/kindredapp/kindred-api/internal/domain"
	"github.com/kindredapp/kindred-api/internal/domain/compat"
	"github.com/kindredapp/kindred-api/internal/platform/logger"
	"github.com/kindredapp/kindred-api/internal/store"
)

// Ranking limits.
const (
	// DefaultMaxResults is used when a request passes maxResults of 0.
	DefaultMaxResults = 10

	// maxResultsLimit caps how many results may be requested.
	maxResultsLimit = 100

	// poolMultiplier oversamples the candidate pool so per-candidate
	// scoring failures and ties still leave ranking headroom.
	poolMultiplier = 2

	// defaultScoringWorkers bounds the concurrent per-candidate scoring
	// fan-out.
	defaultScoringWorkers = 4
)

// RankedCandidate is one entry of a ranking result.
type RankedCandidate struct {
	CandidateID        uuid.UUID                  `json:"candidate_id"`
	BaseScore          int                        `json:"base_score"`
	AdjustedScore      int                        `json:"adjusted_score"`
	Breakdown          *domain.CompatibilityScore `json:"breakdown"`
	PreferencesApplied bool                       `json:"preferences_applied"`
}

// Ranker combines the scorer and the learned preferences to rank a
// candidate pool for a requesting user.
type Ranker struct {
	profiles store.ProfileStore
	prefs    store.PreferenceStore
	scorer   *Scorer
	params   *compat.Params
	workers  int
	logger   *slog.Logger
}

// NewRanker creates a new Ranker.
func NewRanker(
	profiles store.ProfileStore,
	prefs store.PreferenceStore,
	scorer *Scorer,
	params *compat.Params,
	log *slog.Logger,
) *Ranker {
	if profiles == nil {
		panic("profile store cannot be nil")
	}
	if prefs == nil {
		panic("preference store cannot be nil")
	}
	if scorer == nil {
		panic("scorer cannot be nil")
	}
	if params == nil {
		params = compat.NewDefaultParams()
	}
	if log == nil {
		log = slog.Default()
	}

	return &Ranker{
		profiles: profiles,
		prefs:    prefs,
		scorer:   scorer,
		params:   params,
		workers:  defaultScoringWorkers,
		logger:   log.With(slog.String("component", "match_ranker")),
	}
}

// Rank scores and orders a candidate pool for the given user. maxResults
// of 0 selects DefaultMaxResults; values outside [1,100] are rejected
// before any I/O. The requester being unresolvable is a hard error; a
// single candidate failing to score is logged and skipped. Fewer than
// maxResults entries are returned when the pool is exhausted.
func (r *Ranker) Rank(ctx context.Context, userID uuid.UUID, maxResults int) ([]RankedCandidate, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	if userID == uuid.Nil {
		return nil, ErrInvalidUserID
	}

	if maxResults == 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults < 1 || maxResults > maxResultsLimit {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxResults, maxResults)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	requester, err := r.profiles.GetByID(ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to load requester profile: %w", err)
	}

	pool, err := r.profiles.GetCandidatePool(ctx, userID, poolMultiplier*maxResults)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate pool: %w", err)
	}

	prefs, err := r.loadPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	preferencesApplied := prefs != nil && prefs.HasLearnedData()

	scores, err := r.scorePool(ctx, log, requester, pool)
	if err != nil {
		return nil, err
	}

	// Assemble in pool order so the stable sort preserves it across ties.
	ranked := make([]RankedCandidate, 0, len(pool))
	for i, candidate := range pool {
		if scores[i] == nil {
			continue
		}

		base := scores[i].Overall()
		boost := 0.0
		if preferencesApplied {
			boost = compat.PreferenceBoost(base, candidate.Interests, prefs, r.params)
		}

		ranked = append(ranked, RankedCandidate{
			CandidateID:        candidate.ID,
			BaseScore:          base,
			AdjustedScore:      compat.AdjustedScore(base, boost),
			Breakdown:          scores[i],
			PreferencesApplied: preferencesApplied,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AdjustedScore > ranked[j].AdjustedScore
	})

	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}

	log.Debug("ranked candidate pool",
		slog.String("user_id", userID.String()),
		slog.Int("pool_size", len(pool)),
		slog.Int("results", len(ranked)),
		slog.Bool("preferences_applied", preferencesApplied))

	return ranked, nil
}

// loadPreferences fetches learned preferences; absence is not an error,
// ranking just proceeds unweighted.
func (r *Ranker) loadPreferences(ctx context.Context, userID uuid.UUID) (*domain.UserPreferences, error) {
	prefs, err := r.prefs.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrPreferencesNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return prefs, nil
}

// scorePool scores every candidate with a bounded worker pool. Results
// are placed by pool index, so the final ordering depends only on
// adjusted scores and pool order, never on completion order. A candidate
// that fails to score leaves a nil slot and is skipped by the caller.
func (r *Ranker) scorePool(
	ctx context.Context,
	log *slog.Logger,
	requester *domain.Profile,
	pool []*domain.Profile,
) ([]*domain.CompatibilityScore, error) {
	scores := make([]*domain.CompatibilityScore, len(pool))
	if len(pool) == 0 {
		return scores, nil
	}

	workers := r.workers
	if workers > len(pool) {
		workers = len(pool)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				score, err := r.scorer.Score(ctx, requester, pool[i])
				if err != nil {
					log.Warn("skipping unscoreable candidate",
						slog.String("candidate_id", pool[i].ID.String()),
						slog.String("error", err.Error()))
					continue
				}
				scores[i] = score
			}
		}()
	}

	for i := range pool {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	// Cancellation mid-fanout surfaces as per-candidate skips; report it
	// as the operation-level outcome instead of a truncated ranking.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return scores, nil
}
