package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MatchStatus represents the lifecycle state of a proposed match.
type MatchStatus string

// Possible match status values
const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusAccepted MatchStatus = "accepted"
	MatchStatusRejected MatchStatus = "rejected"
)

// Common validation errors for MatchRecord
var (
	ErrEmptyMatchID      = errors.New("match ID cannot be empty")
	ErrEmptyMatchUserID  = errors.New("match user IDs cannot be empty")
	ErrSameMatchUsers    = errors.New("match user IDs must be distinct")
	ErrInvalidMatchScore = errors.New("match compatibility score must be in [0,100]")
	ErrInvalidMatchState = errors.New("invalid match status")
)

// MatchRecord represents a proposed pairing between two users and the
// outcome of that proposal. Records are never deleted, only
// status-transitioned, so the full accept/reject history remains
// available to the preference learner.
type MatchRecord struct {
	ID                 uuid.UUID   `json:"id"`
	UserAID            uuid.UUID   `json:"user_a_id"`
	UserBID            uuid.UUID   `json:"user_b_id"`
	CompatibilityScore int         `json:"compatibility_score"`
	Status             MatchStatus `json:"status"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// NewMatchRecord creates a new pending MatchRecord between two distinct
// users with the given compatibility score. Returns an error if
// validation fails.
func NewMatchRecord(userAID, userBID uuid.UUID, compatibilityScore int) (*MatchRecord, error) {
	now := time.Now().UTC()
	match := &MatchRecord{
		ID:                 uuid.New(),
		UserAID:            userAID,
		UserBID:            userBID,
		CompatibilityScore: compatibilityScore,
		Status:             MatchStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := match.Validate(); err != nil {
		return nil, err
	}

	return match, nil
}

// Validate checks if the MatchRecord has valid data.
// Returns an error if any field fails validation.
func (m *MatchRecord) Validate() error {
	if m.ID == uuid.Nil {
		return ErrEmptyMatchID
	}

	if m.UserAID == uuid.Nil || m.UserBID == uuid.Nil {
		return ErrEmptyMatchUserID
	}

	if m.UserAID == m.UserBID {
		return ErrSameMatchUsers
	}

	if m.CompatibilityScore < 0 || m.CompatibilityScore > 100 {
		return ErrInvalidMatchScore
	}

	if !isValidMatchStatus(m.Status) {
		return ErrInvalidMatchState
	}

	return nil
}

// UpdateStatus transitions the match to the given status and refreshes the
// UpdatedAt timestamp. Returns an error if the new status is invalid.
func (m *MatchRecord) UpdateStatus(status MatchStatus) error {
	if !isValidMatchStatus(status) {
		return ErrInvalidMatchState
	}

	m.Status = status
	m.UpdatedAt = time.Now().UTC()
	return nil
}

// Involves reports whether the given user is one of the two parties.
func (m *MatchRecord) Involves(userID uuid.UUID) bool {
	return m.UserAID == userID || m.UserBID == userID
}

// OtherUser returns the counterpart of the given user in this match.
// The second return value is false when the user is not a party at all.
func (m *MatchRecord) OtherUser(userID uuid.UUID) (uuid.UUID, bool) {
	switch userID {
	case m.UserAID:
		return m.UserBID, true
	case m.UserBID:
		return m.UserAID, true
	default:
		return uuid.Nil, false
	}
}

// isValidMatchStatus checks if the given status is a valid MatchStatus.
func isValidMatchStatus(status MatchStatus) bool {
	switch status {
	case MatchStatusPending, MatchStatusAccepted, MatchStatusRejected:
		return true
	default:
		return false
	}
}
