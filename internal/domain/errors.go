// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrScoreOutOfRange is returned when a compatibility score or sub-score
	// is written with a value outside the [0,100] range. Out-of-range writes
	// are rejected, never silently clamped.
	ErrScoreOutOfRange = errors.New("score out of range [0,100]")

	// ErrWeightOutOfRange is returned when an interest weight is written with
	// a value outside the [0,1] range.
	ErrWeightOutOfRange = errors.New("interest weight out of range [0,1]")

	// ErrTraitPreferenceOutOfRange is returned when a personality trait
	// preference is written with a value outside the [-1,1] range.
	ErrTraitPreferenceOutOfRange = errors.New("trait preference out of range [-1,1]")
)
