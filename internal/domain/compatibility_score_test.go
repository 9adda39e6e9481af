package domain

import (
	"testing"
)

func TestNewCompatibilityScore(t *testing.T) {
	t.Parallel() // Enable parallel execution

	score, err := NewCompatibilityScore(80, 70, 90, 60)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if score.InterestScore != 80 || score.PersonalityScore != 70 ||
		score.LifestyleScore != 90 || score.ValueScore != 60 {
		t.Errorf("Sub-scores not stored as given: %+v", score)
	}

	if score.UsedFallback {
		t.Error("Expected UsedFallback to default to false")
	}

	// Out-of-range sub-scores are rejected, not clamped.
	for _, bad := range [][4]int{
		{-1, 70, 90, 60},
		{80, 101, 90, 60},
		{80, 70, -5, 60},
		{80, 70, 90, 200},
	} {
		_, err := NewCompatibilityScore(bad[0], bad[1], bad[2], bad[3])
		if err != ErrScoreOutOfRange {
			t.Errorf("Sub-scores %v: expected error %v, got %v", bad, ErrScoreOutOfRange, err)
		}
	}
}

func TestCompatibilityScoreOverall(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name                                    string
		interest, personality, lifestyle, value int
		expected                                int
	}{
		{
			name:     "all zero",
			expected: 0,
		},
		{
			name:        "all max",
			interest:    100,
			personality: 100,
			lifestyle:   100,
			value:       100,
			expected:    100,
		},
		{
			name:        "weighted blend",
			interest:    80,
			personality: 60,
			lifestyle:   40,
			value:       20,
			// 0.30*80 + 0.30*60 + 0.25*40 + 0.15*20 = 55
			expected: 55,
		},
		{
			name:        "rounding up",
			interest:    100,
			personality: 80,
			lifestyle:   100,
			value:       90,
			// 30 + 24 + 25 + 13.5 = 92.5, rounds to 93
			expected: 93,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			score, err := NewCompatibilityScore(tc.interest, tc.personality, tc.lifestyle, tc.value)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			if got := score.Overall(); got != tc.expected {
				t.Errorf("Expected overall %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestAddFactorScore(t *testing.T) {
	t.Parallel() // Enable parallel execution

	score, err := NewCompatibilityScore(50, 50, 50, 50)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := score.AddFactorScore("humor", 88); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if score.FactorScores["humor"] != 88 {
		t.Errorf("Expected factor score 88, got %d", score.FactorScores["humor"])
	}

	// Custom factors are stored but not blended into the overall score.
	if got := score.Overall(); got != 50 {
		t.Errorf("Expected overall 50 regardless of custom factors, got %d", got)
	}

	if err := score.AddFactorScore("", 10); err != ErrEmptyFactorName {
		t.Errorf("Expected error %v, got %v", ErrEmptyFactorName, err)
	}

	if err := score.AddFactorScore("humor", 101); err != ErrScoreOutOfRange {
		t.Errorf("Expected error %v, got %v", ErrScoreOutOfRange, err)
	}

	if score.FactorScores["humor"] != 88 {
		t.Error("Expected rejected write to leave the prior value in place")
	}
}
