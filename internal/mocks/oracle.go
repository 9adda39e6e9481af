package mocks

import (
	"context"
	"sync"

	"github.com/kindredapp/kindred-api/internal/oracle"
)

// MockOracle implements oracle.Oracle for testing
type MockOracle struct {
	// Custom behavior function
	ScoreFn func(ctx context.Context, aspect oracle.Aspect, fingerprintA, fingerprintB string) (int, error)

	// Default response values
	Result int
	Err    error

	// Call tracking for verification
	ScoreCalls struct {
		mu      sync.Mutex
		Count   int
		Aspects []oracle.Aspect
	}
}

// Score implements the oracle.Oracle interface
func (m *MockOracle) Score(
	ctx context.Context,
	aspect oracle.Aspect,
	fingerprintA, fingerprintB string,
) (int, error) {
	m.ScoreCalls.mu.Lock()
	m.ScoreCalls.Count++
	m.ScoreCalls.Aspects = append(m.ScoreCalls.Aspects, aspect)
	m.ScoreCalls.mu.Unlock()

	if m.ScoreFn != nil {
		return m.ScoreFn(ctx, aspect, fingerprintA, fingerprintB)
	}

	return m.Result, m.Err
}

// MockScoreCache implements the scorer's ScoreCache interface for testing.
// With no custom functions set it behaves as an empty, write-through cache
// backed by an in-memory map.
type MockScoreCache struct {
	GetScoreFn func(ctx context.Context, aspect oracle.Aspect, pairKey string) (int, bool, error)
	SetScoreFn func(ctx context.Context, aspect oracle.Aspect, pairKey string, score int) error

	mu      sync.Mutex
	entries map[string]int

	GetCount int
	SetCount int
}

// GetScore implements the matching.ScoreCache interface
func (m *MockScoreCache) GetScore(
	ctx context.Context,
	aspect oracle.Aspect,
	pairKey string,
) (int, bool, error) {
	m.mu.Lock()
	m.GetCount++
	score, ok := m.entries[string(aspect)+":"+pairKey]
	m.mu.Unlock()

	if m.GetScoreFn != nil {
		return m.GetScoreFn(ctx, aspect, pairKey)
	}

	return score, ok, nil
}

// SetScore implements the matching.ScoreCache interface
func (m *MockScoreCache) SetScore(
	ctx context.Context,
	aspect oracle.Aspect,
	pairKey string,
	score int,
) error {
	m.mu.Lock()
	m.SetCount++
	if m.entries == nil {
		m.entries = make(map[string]int)
	}
	m.entries[string(aspect)+":"+pairKey] = score
	m.mu.Unlock()

	if m.SetScoreFn != nil {
		return m.SetScoreFn(ctx, aspect, pairKey, score)
	}

	return nil
}
