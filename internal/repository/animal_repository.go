package repository

import (
	"context"

	"github.com/pappi-team/pappi-matching/internal/domain"
)

type AnimalRepository interface {
	GetByID(ctx context.Context, id int) (*domain.Animal, error)

	// SelectCandidates builds the scoring pool for a user: active listings,
	// not owned by the user, not yet present in the user's match score table,
	// narrowed by the species/breed preference pre-filters when set. The
	// limit caps pool size before scoring.
	SelectCandidates(ctx context.Context, userID int, prefs *domain.Preferences, limit int) ([]*domain.Animal, error)

	// LikedBySimilarUsers returns active animals liked by users who share at
	// least one liked animal with the given user, excluding animals the user
	// already interacted with.
	LikedBySimilarUsers(ctx context.Context, userID int, limit int) ([]*domain.Animal, error)

	// FindSimilar returns active animals whose species and breed both appear
	// in the given sets, excluding the listed IDs.
	FindSimilar(ctx context.Context, species, breeds []string, excludeIDs []int, limit int) ([]*domain.Animal, error)
}
