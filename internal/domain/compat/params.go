package compat

import "errors"

// ErrInvalidLifestyleBudget is returned when the lifestyle point budget
// does not sum to 100.
var ErrInvalidLifestyleBudget = errors.New("lifestyle point budget must sum to 100")

// Params defines all configurable parameters for the compatibility and
// ranking math. The lifestyle contributors carry a fixed point budget that
// must sum to 100 so the lifestyle factor stays on the same [0,100] scale
// as the other factors.
type Params struct {
	// Lifestyle point budget
	LocationPoints          int // awarded when both profiles share a location
	AgeContainmentPoints    int // split evenly across the two containment directions
	GenderReciprocityPoints int // split evenly across the two acceptance directions

	// Fallback scoring when the intelligence oracle is unavailable.
	// fallback = round(FallbackBase + FallbackOverlapScale * overlapRatio)
	FallbackBase         float64
	FallbackOverlapScale float64

	// Preference boost
	InterestBoostScale float64 // boost contributed per unit of learned weight
	SimilarScoreBonus  float64 // flat bonus when baseScore is near the accepted average
	SimilarScoreWindow float64 // half-width of the "near the accepted average" window
	MaxBoost           float64 // upper clamp for the total boost
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		LocationPoints:          40,
		AgeContainmentPoints:    30,
		GenderReciprocityPoints: 30,

		FallbackBase:         50,
		FallbackOverlapScale: 35,

		InterestBoostScale: 10,
		SimilarScoreBonus:  5,
		SimilarScoreWindow: 10,
		MaxBoost:           15,
	}
}

// Validate checks that the parameters describe a coherent scoring scheme.
func (p *Params) Validate() error {
	if p.LocationPoints+p.AgeContainmentPoints+p.GenderReciprocityPoints != 100 {
		return ErrInvalidLifestyleBudget
	}

	if p.MaxBoost < 0 || p.InterestBoostScale < 0 || p.SimilarScoreBonus < 0 || p.SimilarScoreWindow < 0 {
		return errors.New("boost parameters cannot be negative")
	}

	return nil
}
