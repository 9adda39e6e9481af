package oracle

import "errors"

// Common errors returned by oracle implementations
var (
	// ErrOracleUnavailable is returned when the oracle cannot be reached
	// or fails to respond before the per-call deadline.
	ErrOracleUnavailable = errors.New("intelligence oracle unavailable")

	// ErrInvalidResponse is returned when the oracle response cannot be
	// parsed or carries a score outside [0,100].
	ErrInvalidResponse = errors.New("invalid response from intelligence oracle")

	// ErrEmptyFingerprint is returned when a profile fingerprint is empty.
	ErrEmptyFingerprint = errors.New("profile fingerprint cannot be empty")

	// ErrInvalidConfig is returned when the oracle configuration is invalid.
	ErrInvalidConfig = errors.New("invalid oracle configuration")
)
