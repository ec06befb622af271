package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pappi-team/pappi-matching/internal/domain"
	"github.com/pappi-team/pappi-matching/internal/repository"
)

type interactionRepository struct {
	db *sqlx.DB
}

func NewInteractionRepository(db *sqlx.DB) repository.InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) Create(ctx context.Context, interaction *domain.Interaction) error {
	query := `
		INSERT INTO user_interactions (user_id, animal_id, interaction_type)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		interaction.UserID, interaction.AnimalID, interaction.Type,
	).Scan(&interaction.ID, &interaction.CreatedAt)
}

func (r *interactionRepository) LikeRatio(ctx context.Context, userID int, species string) (float64, error) {
	// No interactions at all yields 0, not a division error.
	query := `
		SELECT COALESCE(
			COUNT(*) FILTER (WHERE ui.interaction_type = 'like')::float8
			/ GREATEST(COUNT(*), 1), 0)
		FROM user_interactions ui
		JOIN animals a ON a.id = ui.animal_id
		WHERE ui.user_id = $1 AND a.species = $2
	`
	var ratio float64
	if err := r.db.GetContext(ctx, &ratio, query, userID, species); err != nil {
		return 0, err
	}
	return ratio, nil
}

func (r *interactionRepository) RecentLikedAnimalIDs(ctx context.Context, userID int, limit int) ([]int, error) {
	query := `
		SELECT animal_id FROM user_interactions
		WHERE user_id = $1 AND interaction_type = 'like'
		ORDER BY created_at DESC
		LIMIT $2
	`
	var ids []int
	err := r.db.SelectContext(ctx, &ids, query, userID, limit)
	return ids, err
}

func (r *interactionRepository) ActiveUserIDs(ctx context.Context, since time.Time) ([]int, error) {
	query := `
		SELECT DISTINCT user_id FROM user_interactions
		WHERE created_at >= $1
	`
	var ids []int
	err := r.db.SelectContext(ctx, &ids, query, since)
	return ids, err
}
