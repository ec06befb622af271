package domain

import "time"

// DefaultMaxDistanceKm is used when a profile is created lazily without an
// explicit search radius.
const DefaultMaxDistanceKm = 50

// Preferences is a user's stored matching configuration. One per user,
// created lazily on first access and never hard-deleted.
type Preferences struct {
	ID                 int       `json:"id" db:"id"`
	UserID             int       `json:"user_id" db:"user_id"`
	Species            []string  `json:"species" db:"preferred_species"`
	Breeds             []string  `json:"breeds" db:"preferred_breeds"`
	AgeMin             *int      `json:"age_min" db:"preferred_age_min"`
	AgeMax             *int      `json:"age_max" db:"preferred_age_max"`
	Gender             *string   `json:"gender" db:"preferred_gender"`
	Sizes              []string  `json:"sizes" db:"size_preference"`
	Colors             []string  `json:"colors" db:"color_preference"`
	RequiresPedigree   bool      `json:"requires_pedigree" db:"requires_pedigree"`
	RequiresVaccinated bool      `json:"requires_vaccinated" db:"requires_vaccinated"`
	RequiresPassport   bool      `json:"requires_passport" db:"requires_passport"`
	MaxDistanceKm      int       `json:"max_distance_km" db:"max_distance"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// NewDefaultPreferences returns the empty profile created on first access.
// No dimension is set, so nothing filters and nothing scores.
func NewDefaultPreferences(userID int) *Preferences {
	return &Preferences{
		UserID:        userID,
		MaxDistanceKm: DefaultMaxDistanceKm,
	}
}

func (p *Preferences) Validate() error {
	if p.AgeMin != nil && p.AgeMax != nil && *p.AgeMin > *p.AgeMax {
		return ErrInvalidAgeRange
	}
	if p.MaxDistanceKm <= 0 {
		return ErrInvalidMaxDistance
	}
	return nil
}
