package domain

import "time"

// InteractionType is the closed set of behavioral signals the engine
// aggregates. Unknown kinds are rejected at construction time instead of
// silently scoring as nothing.
type InteractionType string

const (
	InteractionView     InteractionType = "view"
	InteractionLike     InteractionType = "like"
	InteractionDislike  InteractionType = "dislike"
	InteractionFavorite InteractionType = "favorite"
	InteractionContact  InteractionType = "contact"
)

// ParseInteractionType validates a raw interaction kind.
func ParseInteractionType(s string) (InteractionType, error) {
	switch t := InteractionType(s); t {
	case InteractionView, InteractionLike, InteractionDislike, InteractionFavorite, InteractionContact:
		return t, nil
	default:
		return "", ErrInvalidInteractionType
	}
}

// Interaction is one append-only ledger entry. Entries are never mutated;
// the engine reads them only in aggregate.
type Interaction struct {
	ID        int             `json:"id" db:"id"`
	UserID    int             `json:"user_id" db:"user_id"`
	AnimalID  int             `json:"animal_id" db:"animal_id"`
	Type      InteractionType `json:"type" db:"interaction_type"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
