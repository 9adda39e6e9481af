package matching

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kindredapp/kindred-api/internal/domain"
	"github.com/kindredapp/kindred-api/internal/platform/logger"
	"github.com/kindredapp/kindred-api/internal/store"
)

// Thresholds for the coarse personality-preference heuristic. This is a
// frequency heuristic, not a fitted model.
const (
	highAcceptedAverage = 75.0
	lowRejectedAverage  = 60.0
)

// LearningSummary describes one completed learning session.
type LearningSummary struct {
	UserID                 uuid.UUID `json:"user_id"`
	AcceptedSeen           int       `json:"accepted_seen"`
	RejectedSeen           int       `json:"rejected_seen"`
	InterestWeightsLearned int       `json:"interest_weights_learned"`
	TraitPreferencesSet    int       `json:"trait_preferences_set"`
	LearningSessions       int       `json:"learning_sessions"`
	AverageAcceptedScore   float64   `json:"average_accepted_score"`
}

// Learner derives weighted interest and personality preferences from a
// user's accept/reject match history. All updates are applied to the
// in-memory preference state and persisted exactly once at the end of a
// session, so a failure mid-computation writes nothing partial.
type Learner struct {
	matches  store.MatchHistoryStore
	profiles store.ProfileStore
	prefs    store.PreferenceStore
	logger   *slog.Logger
}

// NewLearner creates a new Learner.
func NewLearner(
	matches store.MatchHistoryStore,
	profiles store.ProfileStore,
	prefs store.PreferenceStore,
	log *slog.Logger,
) *Learner {
	if matches == nil {
		panic("match history store cannot be nil")
	}
	if profiles == nil {
		panic("profile store cannot be nil")
	}
	if prefs == nil {
		panic("preference store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Learner{
		matches:  matches,
		profiles: profiles,
		prefs:    prefs,
		logger:   log.With(slog.String("component", "preference_learner")),
	}
}

// Learn runs one learning session for the given user. A user with zero
// match history still completes a session: the session counter advances
// and the state is persisted, which makes the first call idempotent
// bootstrap rather than a failure. Store errors propagate unmodified.
func (l *Learner) Learn(ctx context.Context, userID uuid.UUID) (*LearningSummary, error) {
	log := logger.FromContextOrDefault(ctx, l.logger)

	if userID == uuid.Nil {
		return nil, ErrInvalidUserID
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefs, err := l.prefs.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	history, err := l.matches.GetMatchesForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load match history: %w", err)
	}

	var accepted, rejected []*domain.MatchRecord
	for _, match := range history {
		switch match.Status {
		case domain.MatchStatusAccepted:
			accepted = append(accepted, match)
		case domain.MatchStatusRejected:
			rejected = append(rejected, match)
		}
	}

	for _, match := range accepted {
		if err := prefs.RecordAcceptance(match.CompatibilityScore); err != nil {
			return nil, fmt.Errorf("failed to record acceptance for match %s: %w", match.ID, err)
		}
	}

	rejectedAvg := 0.0
	for i, match := range rejected {
		prefs.RecordRejection()
		rejectedAvg += (float64(match.CompatibilityScore) - rejectedAvg) / float64(i+1)
	}

	weightsLearned, err := l.learnInterestWeights(ctx, log, userID, prefs, accepted)
	if err != nil {
		return nil, err
	}

	traitsSet, err := l.applyTraitHeuristic(prefs, len(rejected), rejectedAvg)
	if err != nil {
		return nil, err
	}

	prefs.CompleteLearningSession(time.Now().UTC())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := l.prefs.Update(ctx, prefs); err != nil {
		return nil, fmt.Errorf("failed to persist preferences: %w", err)
	}

	log.Debug("learning session completed",
		slog.String("user_id", userID.String()),
		slog.Int("accepted_seen", len(accepted)),
		slog.Int("rejected_seen", len(rejected)),
		slog.Int("interest_weights_learned", weightsLearned),
		slog.Int("learning_sessions", prefs.LearningSessions))

	return &LearningSummary{
		UserID:                 userID,
		AcceptedSeen:           len(accepted),
		RejectedSeen:           len(rejected),
		InterestWeightsLearned: weightsLearned,
		TraitPreferencesSet:    traitsSet,
		LearningSessions:       prefs.LearningSessions,
		AverageAcceptedScore:   prefs.AverageAcceptedScore,
	}, nil
}

// learnInterestWeights tallies interest-tag frequency across the
// counterpart profiles of all accepted matches and overwrites each tag's
// weight with frequency/totalAccepted, capped at 1.0. A counterpart whose
// profile has vanished is a secondary subject: it is logged and skipped,
// never fatal.
func (l *Learner) learnInterestWeights(
	ctx context.Context,
	log *slog.Logger,
	userID uuid.UUID,
	prefs *domain.UserPreferences,
	accepted []*domain.MatchRecord,
) (int, error) {
	if len(accepted) == 0 {
		return 0, nil
	}

	tagCounts := make(map[string]int)
	for _, match := range accepted {
		otherID, ok := match.OtherUser(userID)
		if !ok {
			continue
		}

		if err := ctx.Err(); err != nil {
			return 0, err
		}

		other, err := l.profiles.GetByID(ctx, otherID)
		if err != nil {
			if store.IsNotFoundError(err) {
				log.Warn("skipping accepted match with vanished counterpart",
					slog.String("match_id", match.ID.String()),
					slog.String("counterpart_id", otherID.String()))
				continue
			}
			return 0, fmt.Errorf("failed to load counterpart profile %s: %w", otherID, err)
		}

		for _, tag := range other.Interests {
			tagCounts[tag]++
		}
	}

	total := float64(len(accepted))
	for tag, count := range tagCounts {
		weight := float64(count) / total
		if weight > 1.0 {
			weight = 1.0
		}
		if err := prefs.UpdateInterestWeight(tag, weight); err != nil {
			return 0, fmt.Errorf("failed to update weight for tag %q: %w", tag, err)
		}
	}

	return len(tagCounts), nil
}

// applyTraitHeuristic sets the coarse personality-trait preferences from
// the session's score averages.
func (l *Learner) applyTraitHeuristic(
	prefs *domain.UserPreferences,
	rejectedSeen int,
	rejectedAvg float64,
) (int, error) {
	set := 0

	if prefs.AcceptedCount > 0 && prefs.AverageAcceptedScore > highAcceptedAverage {
		for trait, value := range map[string]float64{"compatible": 0.8, "similar": 0.7} {
			if err := prefs.UpdateTraitPreference(trait, value); err != nil {
				return 0, fmt.Errorf("failed to set trait preference %q: %w", trait, err)
			}
			set++
		}
	}

	if rejectedSeen > 0 && rejectedAvg < lowRejectedAverage {
		for trait, value := range map[string]float64{"incompatible": -0.8, "different": -0.5} {
			if err := prefs.UpdateTraitPreference(trait, value); err != nil {
				return 0, fmt.Errorf("failed to set trait preference %q: %w", trait, err)
			}
			set++
		}
	}

	return set, nil
}
