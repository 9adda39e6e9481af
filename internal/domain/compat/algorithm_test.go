package compat

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/kindredapp/kindred-api/internal/domain"
)

func testProfile(interests []string, location string, age, ageMin, ageMax int, gender string, accepts []string) *domain.Profile {
	profile, err := domain.NewProfile(
		uuid.New(),
		"Test",
		"",
		interests,
		location,
		gender,
		accepts,
		age, ageMin, ageMax,
	)
	if err != nil {
		panic(err)
	}
	return profile
}

func toSet(tags ...string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, tag := range tags {
		set[tag] = true
	}
	return set
}

func TestInterestOverlapRatio(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name     string
		a, b     map[string]bool
		expected float64
	}{
		{
			name:     "both empty sets are identical",
			a:        toSet(),
			b:        toSet(),
			expected: 1.0,
		},
		{
			name:     "identical sets",
			a:        toSet("hiking", "jazz"),
			b:        toSet("hiking", "jazz"),
			expected: 1.0,
		},
		{
			name:     "disjoint sets",
			a:        toSet("hiking"),
			b:        toSet("opera"),
			expected: 0.0,
		},
		{
			name:     "one empty set",
			a:        toSet("hiking"),
			b:        toSet(),
			expected: 0.0,
		},
		{
			name: "partial overlap",
			a:    toSet("a", "b", "c"),
			b:    toSet("b", "c", "d"),
			// 2 shared / 4 union
			expected: 0.5,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := InterestOverlapRatio(tc.a, tc.b)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Expected ratio %f, got %f", tc.expected, got)
			}

			// Overlap is symmetric
			if rev := InterestOverlapRatio(tc.b, tc.a); math.Abs(rev-got) > 1e-9 {
				t.Errorf("Expected symmetric ratio, got %f and %f", got, rev)
			}
		})
	}
}

func TestInterestScore(t *testing.T) {
	t.Parallel() // Enable parallel execution

	a := testProfile([]string{"a", "b", "c"}, "Portland", 30, 25, 35, "woman", []string{"man"})
	b := testProfile([]string{"b", "c", "d"}, "Portland", 30, 25, 35, "man", []string{"woman"})

	if got := InterestScore(a, b); got != 50 {
		t.Errorf("Expected score 50, got %d", got)
	}

	identical := testProfile([]string{"a", "b", "c"}, "Portland", 30, 25, 35, "man", []string{"woman"})
	if got := InterestScore(a, identical); got != 100 {
		t.Errorf("Expected score 100 for identical interests, got %d", got)
	}
}

func TestFallbackScore(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		overlap  float64
		expected int
	}{
		{
			name:     "no overlap",
			overlap:  0,
			expected: 50,
		},
		{
			name:     "full overlap",
			overlap:  1,
			expected: 85,
		},
		{
			name:    "mid overlap",
			overlap: 0.5,
			// round(50 + 17.5)
			expected: 68,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FallbackScore(tc.overlap, params); got != tc.expected {
				t.Errorf("Expected fallback %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestLifestyleScore(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	base := func() *domain.Profile {
		return testProfile(nil, "Portland", 30, 25, 35, "woman", []string{"man", "woman"})
	}

	testCases := []struct {
		name     string
		a, b     *domain.Profile
		expected int
	}{
		{
			name:     "full alignment",
			a:        base(),
			b:        base(),
			expected: 100,
		},
		{
			name: "different location",
			a:    base(),
			b:    testProfile(nil, "Austin", 30, 25, 35, "woman", []string{"man", "woman"}),
			expected: 60,
		},
		{
			name: "location match is case-insensitive",
			a:    base(),
			b:    testProfile(nil, "portland", 30, 25, 35, "woman", []string{"man", "woman"}),
			expected: 100,
		},
		{
			name: "one-sided age containment",
			a:    base(),
			// b is 40, outside a's 25-35; a is 30, inside b's 25-45
			b:        testProfile(nil, "Portland", 40, 25, 45, "woman", []string{"man", "woman"}),
			expected: 85,
		},
		{
			name: "one-sided gender acceptance",
			a:    base(),
			b:    testProfile(nil, "Portland", 30, 25, 35, "woman", []string{"man"}),
			expected: 85,
		},
		{
			name: "nothing aligns",
			a:    testProfile(nil, "Portland", 30, 25, 35, "woman", []string{"woman"}),
			b:    testProfile(nil, "Austin", 50, 45, 55, "man", []string{"man"}),
			expected: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := LifestyleScore(tc.a, tc.b, params)
			if got != tc.expected {
				t.Errorf("Expected lifestyle %d, got %d", tc.expected, got)
			}

			// The factor is symmetric
			if rev := LifestyleScore(tc.b, tc.a, params); rev != got {
				t.Errorf("Expected symmetric score, got %d and %d", got, rev)
			}
		})
	}
}

func TestLifestyleScoreEmptyLocation(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	a := testProfile(nil, "", 30, 25, 35, "woman", []string{"man", "woman"})
	b := testProfile(nil, "", 30, 25, 35, "woman", []string{"man", "woman"})

	// Two empty locations do not count as a match.
	if got := LifestyleScore(a, b, params); got != 60 {
		t.Errorf("Expected lifestyle 60, got %d", got)
	}
}

func TestPreferenceBoost(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	learned := func(weights map[string]float64, avgAccepted float64, acceptedCount int) *domain.UserPreferences {
		prefs, err := domain.NewUserPreferences(uuid.New())
		if err != nil {
			panic(err)
		}
		for tag, w := range weights {
			if err := prefs.UpdateInterestWeight(tag, w); err != nil {
				panic(err)
			}
		}
		prefs.AcceptedCount = acceptedCount
		prefs.AverageAcceptedScore = avgAccepted
		prefs.LearningSessions = 1
		return prefs
	}

	testCases := []struct {
		name      string
		baseScore int
		interests []string
		prefs     *domain.UserPreferences
		expected  float64
	}{
		{
			name:      "nil preferences",
			baseScore: 70,
			interests: []string{"hiking"},
			prefs:     nil,
			expected:  0,
		},
		{
			name:      "no matched tags",
			baseScore: 70,
			interests: []string{"opera"},
			prefs:     learned(map[string]float64{"hiking": 0.9}, 20, 1),
			expected:  0,
		},
		{
			name:      "single matched tag",
			baseScore: 70,
			interests: []string{"hiking", "opera"},
			prefs:     learned(map[string]float64{"hiking": 0.9}, 20, 1),
			expected:  9,
		},
		{
			name:      "matched tags average, not sum",
			baseScore: 70,
			interests: []string{"hiking", "jazz"},
			prefs:     learned(map[string]float64{"hiking": 0.8, "jazz": 0.4}, 20, 1),
			// (8 + 4) / 2
			expected: 6,
		},
		{
			name:      "similar score bonus",
			baseScore: 70,
			interests: []string{"hiking"},
			prefs:     learned(map[string]float64{"hiking": 0.9}, 75, 1),
			// 9 + 5 flat bonus, |70-75| < 10
			expected: 14,
		},
		{
			name:      "clamped to max boost",
			baseScore: 70,
			interests: []string{"hiking", "jazz"},
			prefs:     learned(map[string]float64{"hiking": 1.0, "jazz": 1.0}, 72, 1),
			// avg 10 + bonus 5 = 15, already at the clamp
			expected: 15,
		},
		{
			name:      "no learned sessions means no boost",
			baseScore: 70,
			interests: []string{"hiking"},
			prefs: func() *domain.UserPreferences {
				p := learned(map[string]float64{"hiking": 0.9}, 20, 1)
				p.LearningSessions = 0
				return p
			}(),
			expected: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := PreferenceBoost(tc.baseScore, tc.interests, tc.prefs, params)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Expected boost %f, got %f", tc.expected, got)
			}
		})
	}
}

func TestAdjustedScore(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name     string
		base     int
		boost    float64
		expected int
	}{
		{
			name:     "zero boost",
			base:     75,
			boost:    0,
			expected: 75,
		},
		{
			name:     "boost applied",
			base:     75,
			boost:    9,
			expected: 84,
		},
		{
			name:     "fractional boost rounds",
			base:     75,
			boost:    8.5,
			expected: 84,
		},
		{
			name:     "capped at 100",
			base:     95,
			boost:    15,
			expected: 100,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AdjustedScore(tc.base, tc.boost); got != tc.expected {
				t.Errorf("Expected adjusted %d, got %d", tc.expected, got)
			}
		})
	}
}
