// Package matching implements the match engine's three services: the
// compatibility scorer, the preference learner, and the candidate ranker.
// They are plain stateless services with no shared mutable state; all
// persistence goes through the store interfaces and all subjective
// scoring goes through the oracle interface, with a deterministic local
// fallback when the oracle is unavailable.
package matching
