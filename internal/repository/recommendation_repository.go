package repository

import (
	"context"
	"time"

	"github.com/pappi-team/pappi-matching/internal/domain"
)

type RecommendationRepository interface {
	// Create appends one impression to the recommendation history. Every
	// impression is logged; there is no upsert here.
	Create(ctx context.Context, record *domain.RecommendationRecord) error

	// RecentlyShownAnimalIDs returns animals shown to the user since the
	// given time, used to avoid immediate repetition in the feed.
	RecentlyShownAnimalIDs(ctx context.Context, userID int, since time.Time) ([]int, error)

	// MarkInteracted flips the interacted flag on history rows for the pair.
	MarkInteracted(ctx context.Context, userID, animalID int) error
}
