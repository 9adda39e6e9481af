package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Profile
var (
	ErrEmptyProfileID        = errors.New("profile ID cannot be empty")
	ErrEmptyGenderIdentity   = errors.New("profile gender identity cannot be empty")
	ErrInvalidProfileAge     = errors.New("profile age must be at least 18")
	ErrInvalidAgeBounds      = errors.New("profile age bounds are invalid")
	ErrNoAcceptedGenders     = errors.New("profile must accept at least one gender")
	ErrDuplicateInterestTags = errors.New("profile interest tags must be unique")
)

// Profile represents a user's dating profile as seen by the match engine.
// It is owned by the profile subsystem and is read-only here: the engine
// never mutates profiles, it only scores and ranks them.
type Profile struct {
	ID              uuid.UUID `json:"id"`
	DisplayName     string    `json:"display_name"`
	Bio             string    `json:"bio"`
	Interests       []string  `json:"interests"`
	Location        string    `json:"location"`
	GenderIdentity  string    `json:"gender_identity"`
	AcceptedGenders []string  `json:"accepted_genders"`
	Age             int       `json:"age"`
	AgeMin          int       `json:"age_min"` // lower bound of the ages this user wants to see
	AgeMax          int       `json:"age_max"` // upper bound of the ages this user wants to see
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewProfile creates a new Profile with the given identity and preference
// fields, generating timestamps. Returns an error if validation fails.
func NewProfile(
	id uuid.UUID,
	displayName string,
	bio string,
	interests []string,
	location string,
	genderIdentity string,
	acceptedGenders []string,
	age, ageMin, ageMax int,
) (*Profile, error) {
	now := time.Now().UTC()
	profile := &Profile{
		ID:              id,
		DisplayName:     displayName,
		Bio:             bio,
		Interests:       interests,
		Location:        location,
		GenderIdentity:  genderIdentity,
		AcceptedGenders: acceptedGenders,
		Age:             age,
		AgeMin:          ageMin,
		AgeMax:          ageMax,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks if the Profile has valid data.
// Returns an error if any field fails validation.
func (p *Profile) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProfileID
	}

	if p.GenderIdentity == "" {
		return ErrEmptyGenderIdentity
	}

	if len(p.AcceptedGenders) == 0 {
		return ErrNoAcceptedGenders
	}

	if p.Age < 18 {
		return ErrInvalidProfileAge
	}

	if p.AgeMin < 18 || p.AgeMax < p.AgeMin {
		return ErrInvalidAgeBounds
	}

	seen := make(map[string]bool, len(p.Interests))
	for _, tag := range p.Interests {
		if seen[tag] {
			return ErrDuplicateInterestTags
		}
		seen[tag] = true
	}

	return nil
}

// InterestSet returns the profile's interest tags as a set for overlap math.
func (p *Profile) InterestSet() map[string]bool {
	set := make(map[string]bool, len(p.Interests))
	for _, tag := range p.Interests {
		set[tag] = true
	}
	return set
}

// Accepts reports whether this profile's accepted-gender set includes the
// given gender identity.
func (p *Profile) Accepts(genderIdentity string) bool {
	for _, g := range p.AcceptedGenders {
		if g == genderIdentity {
			return true
		}
	}
	return false
}

// AcceptsAge reports whether the given age falls inside this profile's
// configured age bounds.
func (p *Profile) AcceptsAge(age int) bool {
	return age >= p.AgeMin && age <= p.AgeMax
}
