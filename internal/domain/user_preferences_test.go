package domain

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewUserPreferences(t *testing.T) {
	t.Parallel() // Enable parallel execution
	userID := uuid.New()

	prefs, err := NewUserPreferences(userID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if prefs.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, prefs.UserID)
	}

	if prefs.InterestWeights == nil || prefs.TraitPreferences == nil {
		t.Error("Expected initialized preference maps")
	}

	if prefs.HasLearnedData() {
		t.Error("Expected fresh preferences to carry no learned data")
	}

	// Test empty user ID
	if _, err := NewUserPreferences(uuid.Nil); err != ErrEmptyPreferencesUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyPreferencesUserID, err)
	}
}

func TestUpdateInterestWeight(t *testing.T) {
	t.Parallel() // Enable parallel execution
	prefs, err := NewUserPreferences(uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := prefs.UpdateInterestWeight("hiking", 0.7); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if prefs.InterestWeights["hiking"] != 0.7 {
		t.Errorf("Expected weight 0.7, got %f", prefs.InterestWeights["hiking"])
	}

	// Overwrites, never accumulates
	if err := prefs.UpdateInterestWeight("hiking", 0.2); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if prefs.InterestWeights["hiking"] != 0.2 {
		t.Errorf("Expected weight 0.2 after overwrite, got %f", prefs.InterestWeights["hiking"])
	}

	// Boundary values are accepted
	for _, w := range []float64{0, 1} {
		if err := prefs.UpdateInterestWeight("hiking", w); err != nil {
			t.Errorf("Weight %f: expected no error, got %v", w, err)
		}
	}

	// Out-of-range weights are rejected, not clamped
	for _, w := range []float64{-0.1, 1.1} {
		if err := prefs.UpdateInterestWeight("hiking", w); err != ErrWeightOutOfRange {
			t.Errorf("Weight %f: expected error %v, got %v", w, ErrWeightOutOfRange, err)
		}
	}
	if prefs.InterestWeights["hiking"] != 1 {
		t.Error("Expected rejected write to leave the prior value in place")
	}

	if err := prefs.UpdateInterestWeight("", 0.5); err != ErrEmptyInterestTag {
		t.Errorf("Expected error %v, got %v", ErrEmptyInterestTag, err)
	}
}

func TestUpdateTraitPreference(t *testing.T) {
	t.Parallel() // Enable parallel execution
	prefs, err := NewUserPreferences(uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Negative values indicate aversion and are valid
	if err := prefs.UpdateTraitPreference("clingy", -0.9); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if prefs.TraitPreferences["clingy"] != -0.9 {
		t.Errorf("Expected preference -0.9, got %f", prefs.TraitPreferences["clingy"])
	}

	for _, v := range []float64{-1.1, 1.1} {
		if err := prefs.UpdateTraitPreference("clingy", v); err != ErrTraitPreferenceOutOfRange {
			t.Errorf("Value %f: expected error %v, got %v", v, ErrTraitPreferenceOutOfRange, err)
		}
	}

	if err := prefs.UpdateTraitPreference("", 0.5); err != ErrEmptyTraitName {
		t.Errorf("Expected error %v, got %v", ErrEmptyTraitName, err)
	}
}

func TestRecordAcceptance(t *testing.T) {
	t.Parallel() // Enable parallel execution
	prefs, err := NewUserPreferences(uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Incremental mean over 80, 90, 70
	for _, score := range []int{80, 90, 70} {
		if err := prefs.RecordAcceptance(score); err != nil {
			t.Fatalf("Score %d: expected no error, got %v", score, err)
		}
	}

	if prefs.AcceptedCount != 3 {
		t.Errorf("Expected 3 acceptances, got %d", prefs.AcceptedCount)
	}

	if math.Abs(prefs.AverageAcceptedScore-80.0) > 1e-9 {
		t.Errorf("Expected average 80, got %f", prefs.AverageAcceptedScore)
	}

	for _, score := range []int{-1, 101} {
		if err := prefs.RecordAcceptance(score); err != ErrInvalidAcceptedScore {
			t.Errorf("Score %d: expected error %v, got %v", score, ErrInvalidAcceptedScore, err)
		}
	}
	if prefs.AcceptedCount != 3 {
		t.Error("Expected rejected scores to leave the count unchanged")
	}
}

func TestRecordRejection(t *testing.T) {
	t.Parallel() // Enable parallel execution
	prefs, err := NewUserPreferences(uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	prefs.RecordRejection()
	prefs.RecordRejection()

	if prefs.RejectedCount != 2 {
		t.Errorf("Expected 2 rejections, got %d", prefs.RejectedCount)
	}

	if prefs.AverageAcceptedScore != 0 {
		t.Error("Expected rejections not to feed the accepted-score average")
	}
}

func TestCompleteLearningSession(t *testing.T) {
	t.Parallel() // Enable parallel execution
	prefs, err := NewUserPreferences(uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	now := time.Now().UTC()
	prefs.CompleteLearningSession(now)

	if prefs.LearningSessions != 1 {
		t.Errorf("Expected 1 session, got %d", prefs.LearningSessions)
	}

	if !prefs.LastLearnedAt.Equal(now) {
		t.Errorf("Expected LastLearnedAt %v, got %v", now, prefs.LastLearnedAt)
	}

	if !prefs.HasLearnedData() {
		t.Error("Expected learned data after a completed session")
	}

	prefs.CompleteLearningSession(now.Add(time.Hour))
	if prefs.LearningSessions != 2 {
		t.Errorf("Expected sessions to accumulate, got %d", prefs.LearningSessions)
	}
}

func TestUserPreferencesValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name     string
		mutate   func(p *UserPreferences)
		expected error
	}{
		{
			name:     "valid",
			mutate:   func(p *UserPreferences) {},
			expected: nil,
		},
		{
			name:     "empty user ID",
			mutate:   func(p *UserPreferences) { p.UserID = uuid.Nil },
			expected: ErrEmptyPreferencesUserID,
		},
		{
			name:     "empty interest tag",
			mutate:   func(p *UserPreferences) { p.InterestWeights[""] = 0.5 },
			expected: ErrEmptyInterestTag,
		},
		{
			name:     "interest weight out of range",
			mutate:   func(p *UserPreferences) { p.InterestWeights["hiking"] = 1.5 },
			expected: ErrWeightOutOfRange,
		},
		{
			name:     "trait preference out of range",
			mutate:   func(p *UserPreferences) { p.TraitPreferences["kind"] = -2 },
			expected: ErrTraitPreferenceOutOfRange,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			prefs, err := NewUserPreferences(uuid.New())
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			tc.mutate(prefs)

			if err := prefs.Validate(); err != tc.expected {
				t.Errorf("Expected error %v, got %v", tc.expected, err)
			}
		})
	}
}
