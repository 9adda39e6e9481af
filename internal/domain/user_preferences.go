package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for UserPreferences
var (
	ErrEmptyPreferencesUserID = errors.New("preferences user ID cannot be empty")
	ErrEmptyInterestTag       = errors.New("interest tag cannot be empty")
	ErrEmptyTraitName         = errors.New("trait name cannot be empty")
	ErrInvalidAcceptedScore   = errors.New("accepted match score must be in [0,100]")
)

// UserPreferences is the per-user learned state derived from accept/reject
// history. It is created lazily on the first learning run, mutated only by
// the preference learner, and only ever additively updated, never reset.
type UserPreferences struct {
	UserID uuid.UUID `json:"user_id"`

	// InterestWeights maps interest tags to learned weights in [0,1].
	InterestWeights map[string]float64 `json:"interest_weights"`

	// TraitPreferences maps personality traits to learned preference
	// values in [-1,1]; negative values indicate aversion.
	TraitPreferences map[string]float64 `json:"trait_preferences"`

	AcceptedCount        int       `json:"accepted_count"`
	RejectedCount        int       `json:"rejected_count"`
	AverageAcceptedScore float64   `json:"average_accepted_score"`
	LearningSessions     int       `json:"learning_sessions"`
	LastLearnedAt        time.Time `json:"last_learned_at"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// NewUserPreferences creates empty preferences for the given user.
// Returns an error if validation fails.
func NewUserPreferences(userID uuid.UUID) (*UserPreferences, error) {
	now := time.Now().UTC()
	prefs := &UserPreferences{
		UserID:           userID,
		InterestWeights:  make(map[string]float64),
		TraitPreferences: make(map[string]float64),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	return prefs, nil
}

// Validate checks if the UserPreferences has valid data.
// Returns an error if any field fails validation.
func (p *UserPreferences) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyPreferencesUserID
	}

	for tag, w := range p.InterestWeights {
		if tag == "" {
			return ErrEmptyInterestTag
		}
		if w < 0 || w > 1 {
			return ErrWeightOutOfRange
		}
	}

	for trait, v := range p.TraitPreferences {
		if trait == "" {
			return ErrEmptyTraitName
		}
		if v < -1 || v > 1 {
			return ErrTraitPreferenceOutOfRange
		}
	}

	return nil
}

// UpdateInterestWeight sets the learned weight for an interest tag,
// overwriting any prior value. Returns ErrWeightOutOfRange if the weight
// falls outside [0,1]; out-of-range writes are rejected, not clamped.
func (p *UserPreferences) UpdateInterestWeight(tag string, weight float64) error {
	if tag == "" {
		return ErrEmptyInterestTag
	}

	if weight < 0 || weight > 1 {
		return ErrWeightOutOfRange
	}

	if p.InterestWeights == nil {
		p.InterestWeights = make(map[string]float64)
	}
	p.InterestWeights[tag] = weight
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateTraitPreference sets the learned preference for a personality
// trait, overwriting any prior value. Returns ErrTraitPreferenceOutOfRange
// if the value falls outside [-1,1].
func (p *UserPreferences) UpdateTraitPreference(trait string, value float64) error {
	if trait == "" {
		return ErrEmptyTraitName
	}

	if value < -1 || value > 1 {
		return ErrTraitPreferenceOutOfRange
	}

	if p.TraitPreferences == nil {
		p.TraitPreferences = make(map[string]float64)
	}
	p.TraitPreferences[trait] = value
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// RecordAcceptance counts one accepted match and folds its compatibility
// score into the running average using the incremental-mean formula
// avg' = avg + (score - avg)/newCount.
func (p *UserPreferences) RecordAcceptance(score int) error {
	if score < 0 || score > 100 {
		return ErrInvalidAcceptedScore
	}

	p.AcceptedCount++
	p.AverageAcceptedScore += (float64(score) - p.AverageAcceptedScore) / float64(p.AcceptedCount)
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// RecordRejection counts one rejected match. Rejected scores do not feed
// the accepted-score average.
func (p *UserPreferences) RecordRejection() {
	p.RejectedCount++
	p.UpdatedAt = time.Now().UTC()
}

// CompleteLearningSession marks one learning session as finished, even if
// the session had no match history to learn from.
func (p *UserPreferences) CompleteLearningSession(now time.Time) {
	p.LearningSessions++
	p.LastLearnedAt = now
	p.UpdatedAt = now
}

// HasLearnedData reports whether at least one learning session has run.
// Ranking treats preferences without learned data as absent and proceeds
// unweighted.
func (p *UserPreferences) HasLearnedData() bool {
	return p.LearningSessions > 0
}
