// Package gemini provides an implementation of the oracle.Oracle interface
// that uses Google's Gemini API to rate the subjective compatibility of a
// profile pair.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the match engine to Google's external Gemini AI service. It
// translates between profile fingerprints and Gemini prompts without
// exposing the details of the external service to the core application.
//
// Contract notes:
//   - Every call is bounded by a per-call timeout supplied via config.
//   - Any non-clean response (transport error, deadline, malformed JSON,
//     score outside [0,100]) is returned as an error; there is no retry
//     and no partial credit. The scorer degrades to its local fallback.
package gemini
