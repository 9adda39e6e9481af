package oracle

import "context"

// Aspect names the subjective dimension an oracle call scores.
type Aspect string

// Aspects the scorer requests from the oracle.
const (
	AspectPersonality Aspect = "personality"
	AspectValues      Aspect = "values"
)

// Oracle defines the interface for the external intelligence scoring
// service. Implementations must return an integer in [0,100] and must
// treat any non-clean response (timeout, service error, malformed or
// out-of-range output) as an error; partial-credit responses are not
// accepted. Callers handle failures by degrading to a local fallback,
// never by retrying.
type Oracle interface {
	// Score rates the compatibility of two profile fingerprints along the
	// given aspect. The context carries the caller's cancellation signal
	// and per-call deadline.
	Score(ctx context.Context, aspect Aspect, fingerprintA, fingerprintB string) (int, error)
}
