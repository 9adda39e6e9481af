// Package compat implements the pure scoring math behind the match engine:
// interest-overlap ratios, the locally computed lifestyle factor, the
// deterministic fallback used when the intelligence oracle is unavailable,
// and the preference boost applied during ranking. Everything here is
// side-effect free; orchestration and I/O live in the matching service.
package compat

import (
	"math"
	"strings"

	"github.com/kindredapp/kindred-api/internal/domain"
)

// InterestOverlapRatio computes the Jaccard similarity of two interest-tag
// sets: shared / union. Two identical sets (including two empty sets) score
// 1.0; disjoint non-empty sets score 0.
func InterestOverlapRatio(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	shared := 0
	for tag := range a {
		if b[tag] {
			shared++
		}
	}

	union := len(a) + len(b) - shared
	if union == 0 {
		return 1.0
	}

	return float64(shared) / float64(union)
}

// InterestScore scales the overlap ratio of the two profiles' interest-tag
// sets to [0,100]. Identical sets score 100, disjoint sets score 0.
func InterestScore(a, b *domain.Profile) int {
	ratio := InterestOverlapRatio(a.InterestSet(), b.InterestSet())
	return int(math.Round(ratio * 100))
}

// FallbackScore derives a deterministic stand-in for an oracle sub-score
// from the interest-overlap ratio. It is an availability measure, not a
// quality substitute: the same value is reused for both oracle-backed
// factors of a pair.
func FallbackScore(overlapRatio float64, params *Params) int {
	score := int(math.Round(params.FallbackBase + params.FallbackOverlapScale*overlapRatio))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// LifestyleScore computes the locally derived lifestyle factor from
// location match, mutual age-range containment, and gender-identity
// reciprocity. Each contributor has a fixed point budget; the contributors
// sum to at most 100.
func LifestyleScore(a, b *domain.Profile, params *Params) int {
	score := 0

	if a.Location != "" && strings.EqualFold(a.Location, b.Location) {
		score += params.LocationPoints
	}

	agePoints := params.AgeContainmentPoints / 2
	if a.AcceptsAge(b.Age) {
		score += agePoints
	}
	if b.AcceptsAge(a.Age) {
		score += agePoints
	}

	genderPoints := params.GenderReciprocityPoints / 2
	if a.Accepts(b.GenderIdentity) {
		score += genderPoints
	}
	if b.Accepts(a.GenderIdentity) {
		score += genderPoints
	}

	return score
}

// PreferenceBoost computes the bounded ranking boost for one candidate.
//
// For every candidate interest tag with a learned weight, the boost
// accumulates weight*InterestBoostScale; the accumulated sum is divided by
// the count of matched tags, so the boost is an average and a candidate
// cannot inflate it with many weakly relevant tags. When the base score
// lands within SimilarScoreWindow of the user's average accepted score, a
// flat SimilarScoreBonus is added. The total is clamped to [0, MaxBoost].
func PreferenceBoost(
	baseScore int,
	candidateInterests []string,
	prefs *domain.UserPreferences,
	params *Params,
) float64 {
	if prefs == nil || !prefs.HasLearnedData() {
		return 0
	}

	boost := 0.0
	matched := 0
	for _, tag := range candidateInterests {
		if weight, ok := prefs.InterestWeights[tag]; ok {
			boost += weight * params.InterestBoostScale
			matched++
		}
	}
	if matched > 0 {
		boost /= float64(matched)
	}

	if prefs.AcceptedCount > 0 &&
		math.Abs(float64(baseScore)-prefs.AverageAcceptedScore) < params.SimilarScoreWindow {
		boost += params.SimilarScoreBonus
	}

	if boost < 0 {
		return 0
	}
	if boost > params.MaxBoost {
		return params.MaxBoost
	}
	return boost
}

// AdjustedScore applies a rounded boost to the base score, capped at 100.
func AdjustedScore(baseScore int, boost float64) int {
	adjusted := baseScore + int(math.Round(boost))
	if adjusted > 100 {
		return 100
	}
	return adjusted
}
