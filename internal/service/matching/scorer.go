package matching

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/kindredapp/kindred-api/internal/domain"
	"github.com/kindredapp/kindred-api/internal/domain/compat"
	"github.com/kindredapp/kindred-api/internal/oracle"
	"github.com/kindredapp/kindred-api/internal/platform/logger"
)

// ScoreCache is the optional cache consulted before each oracle call.
// Implementations must treat errors as soft; the scorer logs them and
// falls through to the oracle.
type ScoreCache interface {
	GetScore(ctx context.Context, aspect oracle.Aspect, pairKey string) (int, bool, error)
	SetScore(ctx context.Context, aspect oracle.Aspect, pairKey string, score int) error
}

// Scorer computes the 4-factor compatibility score between two profiles.
// The interest and lifestyle factors are computed locally; the
// personality and value factors come from the intelligence oracle, with a
// deterministic local fallback on any oracle failure.
type Scorer struct {
	oracle oracle.Oracle
	cache  ScoreCache // may be nil
	params *compat.Params
	logger *slog.Logger
}

// NewScorer creates a new Scorer. The cache may be nil, in which case
// every oracle score is computed fresh.
func NewScorer(
	intelligence oracle.Oracle,
	cache ScoreCache,
	params *compat.Params,
	log *slog.Logger,
) *Scorer {
	if intelligence == nil {
		panic("oracle cannot be nil")
	}
	if params == nil {
		params = compat.NewDefaultParams()
	}
	if log == nil {
		log = slog.Default()
	}

	return &Scorer{
		oracle: intelligence,
		cache:  cache,
		params: params,
		logger: log.With(slog.String("component", "compatibility_scorer")),
	}
}

// Score computes the compatibility score for the given profile pair.
// Validation errors are returned before any remote call; oracle failures
// never are — they flip the result onto the fallback path with
// UsedFallback set. The only post-validation error is caller cancellation.
func (s *Scorer) Score(ctx context.Context, a, b *domain.Profile) (*domain.CompatibilityScore, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if a == nil || b == nil {
		return nil, ErrNilProfile
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("%w: profile %s: %v", domain.ErrValidation, a.ID, err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("%w: profile %s: %v", domain.ErrValidation, b.ID, err)
	}
	if a.ID == b.ID {
		return nil, ErrSameProfile
	}

	overlap := compat.InterestOverlapRatio(a.InterestSet(), b.InterestSet())
	interest := int(math.Round(overlap * 100))
	lifestyle := compat.LifestyleScore(a, b, s.params)

	personality, value, usedFallback, err := s.oracleScores(ctx, log, a, b, overlap)
	if err != nil {
		return nil, err
	}

	score, err := domain.NewCompatibilityScore(interest, personality, lifestyle, value)
	if err != nil {
		return nil, err
	}
	score.UsedFallback = usedFallback

	log.Debug("scored profile pair",
		slog.String("profile_a", a.ID.String()),
		slog.String("profile_b", b.ID.String()),
		slog.Int("overall", score.Overall()),
		slog.Bool("used_fallback", usedFallback))

	return score, nil
}

// oracleScores fetches the personality and value factors for one pair.
// Any oracle failure collapses BOTH factors onto the single deterministic
// fallback value derived from the interest overlap; the same value is
// reused for both. The only error ever returned is caller cancellation.
func (s *Scorer) oracleScores(
	ctx context.Context,
	log *slog.Logger,
	a, b *domain.Profile,
	overlap float64,
) (personality, value int, usedFallback bool, err error) {
	fpA := profileFingerprint(a)
	fpB := profileFingerprint(b)
	pairKey := symmetricPairKey(a, b)

	personality, err = s.aspectScore(ctx, log, oracle.AspectPersonality, fpA, fpB, pairKey)
	if err == nil {
		value, err = s.aspectScore(ctx, log, oracle.AspectValues, fpA, fpB, pairKey)
	}

	if err != nil {
		// Caller cancellation is not an oracle failure; it aborts the
		// whole operation.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, 0, false, ctxErr
		}

		fallback := compat.FallbackScore(overlap, s.params)
		log.Info("oracle unavailable, using local fallback",
			slog.String("profile_a", a.ID.String()),
			slog.String("profile_b", b.ID.String()),
			slog.Int("fallback_score", fallback),
			slog.String("error", err.Error()))
		return fallback, fallback, true, nil
	}

	return personality, value, false, nil
}

// aspectScore returns one oracle sub-score, consulting the cache first
// when one is configured. Cache errors are soft and logged.
func (s *Scorer) aspectScore(
	ctx context.Context,
	log *slog.Logger,
	aspect oracle.Aspect,
	fpA, fpB, pairKey string,
) (int, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.GetScore(ctx, aspect, pairKey)
		if err != nil {
			log.Warn("score cache read failed",
				slog.String("aspect", string(aspect)),
				slog.String("error", err.Error()))
		} else if ok {
			return cached, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	score, err := s.oracle.Score(ctx, aspect, fpA, fpB)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.SetScore(ctx, aspect, pairKey, score); err != nil {
			log.Warn("score cache write failed",
				slog.String("aspect", string(aspect)),
				slog.String("error", err.Error()))
		}
	}

	return score, nil
}

// profileFingerprint condenses the subjective parts of a profile into the
// text the oracle rates: bio, sorted interests, and location. Sorting
// keeps the fingerprint deterministic regardless of tag order.
func profileFingerprint(p *domain.Profile) string {
	interests := make([]string, len(p.Interests))
	copy(interests, p.Interests)
	sort.Strings(interests)

	var sb strings.Builder
	sb.WriteString("Bio: ")
	if p.Bio != "" {
		sb.WriteString(p.Bio)
	} else {
		sb.WriteString("(none)")
	}
	sb.WriteString("\nInterests: ")
	if len(interests) > 0 {
		sb.WriteString(strings.Join(interests, ", "))
	} else {
		sb.WriteString("(none)")
	}
	if p.Location != "" {
		sb.WriteString("\nLocation: ")
		sb.WriteString(p.Location)
	}
	return sb.String()
}

// symmetricPairKey builds a pair key independent of argument order, so
// Score(a, b) and Score(b, a) share cache entries.
func symmetricPairKey(a, b *domain.Profile) string {
	lo, hi := a.ID.String(), b.ID.String()
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo + ":" + hi
}
