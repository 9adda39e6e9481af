package domain

import (
	"errors"
	"math"
)

// Fixed blend weights for the overall compatibility score.
const (
	interestWeight    = 0.30
	personalityWeight = 0.30
	lifestyleWeight   = 0.25
	valueWeight       = 0.15
)

// ErrEmptyFactorName is returned when a custom factor score is added
// without a name.
var ErrEmptyFactorName = errors.New("factor name cannot be empty")

// CompatibilityScore holds the four named sub-scores produced for a profile
// pair plus any caller-attached custom factor scores. Sub-scores are
// validated to [0,100] at construction; out-of-range values are rejected
// rather than clamped.
type CompatibilityScore struct {
	InterestScore    int  `json:"interest_score"`
	PersonalityScore int  `json:"personality_score"`
	LifestyleScore   int  `json:"lifestyle_score"`
	ValueScore       int  `json:"value_score"`
	UsedFallback     bool `json:"used_fallback"`

	// FactorScores holds additional named factor scores attached by callers.
	// They are validated to [0,100] and stored for introspection, but are
	// NOT blended into the overall score. Known limitation: the relationship
	// between custom factors and the overall blend is intentionally left
	// undefined until a weighting scheme exists for them.
	FactorScores map[string]int `json:"factor_scores,omitempty"`
}

// NewCompatibilityScore creates a CompatibilityScore from the four
// sub-scores. Returns ErrScoreOutOfRange if any sub-score falls outside
// [0,100].
func NewCompatibilityScore(interest, personality, lifestyle, value int) (*CompatibilityScore, error) {
	for _, s := range []int{interest, personality, lifestyle, value} {
		if s < 0 || s > 100 {
			return nil, ErrScoreOutOfRange
		}
	}

	return &CompatibilityScore{
		InterestScore:    interest,
		PersonalityScore: personality,
		LifestyleScore:   lifestyle,
		ValueScore:       value,
	}, nil
}

// AddFactorScore attaches a custom named factor score to this result.
// Returns ErrScoreOutOfRange if the score falls outside [0,100].
func (c *CompatibilityScore) AddFactorScore(name string, score int) error {
	if name == "" {
		return ErrEmptyFactorName
	}

	if score < 0 || score > 100 {
		return ErrScoreOutOfRange
	}

	if c.FactorScores == nil {
		c.FactorScores = make(map[string]int)
	}
	c.FactorScores[name] = score
	return nil
}

// Overall derives the blended compatibility score:
// round(0.30*interest + 0.30*personality + 0.25*lifestyle + 0.15*value),
// clamped to [0,100].
func (c *CompatibilityScore) Overall() int {
	blended := interestWeight*float64(c.InterestScore) +
		personalityWeight*float64(c.PersonalityScore) +
		lifestyleWeight*float64(c.LifestyleScore) +
		valueWeight*float64(c.ValueScore)

	overall := int(math.Round(blended))
	if overall < 0 {
		return 0
	}
	if overall > 100 {
		return 100
	}
	return overall
}
