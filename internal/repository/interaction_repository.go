package repository

import (
	"context"
	"time"

	"github.com/pappi-team/pappi-matching/internal/domain"
)

type InteractionRepository interface {
	Create(ctx context.Context, interaction *domain.Interaction) error

	// LikeRatio returns count(like)/max(count(all), 1) over the user's
	// interactions restricted to animals of the given species.
	LikeRatio(ctx context.Context, userID int, species string) (float64, error)

	// RecentLikedAnimalIDs returns the user's most recently liked animal IDs,
	// newest first.
	RecentLikedAnimalIDs(ctx context.Context, userID int, limit int) ([]int, error)

	// ActiveUserIDs returns IDs of users with any interaction since the
	// given time.
	ActiveUserIDs(ctx context.Context, since time.Time) ([]int, error)
}
