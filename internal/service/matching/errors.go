package matching

import "errors"

// Common errors returned by the matching services.
var (
	// ErrInvalidUserID is returned when an operation is invoked with a
	// missing or malformed user ID. Validation errors fail fast, before
	// any I/O.
	ErrInvalidUserID = errors.New("user ID cannot be empty")

	// ErrUserNotFound is returned when the primary subject of an
	// operation (the requesting user) cannot be resolved. Secondary
	// subjects, such as one candidate among many, are skipped instead.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidMaxResults is returned when a ranking request asks for a
	// result count outside [1,100].
	ErrInvalidMaxResults = errors.New("max results must be in [1,100]")

	// ErrNilProfile is returned when the scorer receives a nil profile.
	ErrNilProfile = errors.New("profile cannot be nil")

	// ErrSameProfile is returned when the scorer is asked to score a
	// profile against itself.
	ErrSameProfile = errors.New("cannot score a profile against itself")
)
