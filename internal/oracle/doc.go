// Package oracle defines the contract for the external intelligence
// oracle: a callable scoring service that produces subjective
// compatibility sub-scores for a profile pair. This interface is the
// boundary between the match engine and external AI/LLM services; a
// deterministic local fallback in the scorer keeps the engine available
// when the oracle is not.
package oracle
