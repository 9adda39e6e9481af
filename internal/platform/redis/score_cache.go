package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kindredapp/kindred-api/internal/oracle"
)

// prefixScore namespaces oracle score keys.
const prefixScore = "oracle:score"

// ScoreCache caches oracle sub-scores by aspect and symmetric pair key, so
// re-ranking a recently scored pair skips the oracle round trip.
type ScoreCache struct {
	cache *Cache
	ttl   time.Duration
}

// NewScoreCache creates a ScoreCache over the given generic cache.
func NewScoreCache(cache *Cache, ttl time.Duration) *ScoreCache {
	return &ScoreCache{
		cache: cache,
		ttl:   ttl,
	}
}

// GetScore looks up a cached score. The second return value is false on a
// miss; an error indicates a cache problem the caller should treat as a
// miss as well.
func (s *ScoreCache) GetScore(ctx context.Context, aspect oracle.Aspect, pairKey string) (int, bool, error) {
	var score int
	err := s.cache.Get(ctx, scoreKey(aspect, pairKey), &score)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return score, true, nil
}

// SetScore stores a score under the aspect and pair key with the
// configured TTL.
func (s *ScoreCache) SetScore(ctx context.Context, aspect oracle.Aspect, pairKey string, score int) error {
	return s.cache.Set(ctx, scoreKey(aspect, pairKey), score, s.ttl)
}

// scoreKey builds the namespaced cache key for one aspect of one pair.
func scoreKey(aspect oracle.Aspect, pairKey string) string {
	return fmt.Sprintf("%s:%s:%s", prefixScore, aspect, pairKey)
}
