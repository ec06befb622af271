package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pappi-team/pappi-matching/internal/domain"
	"github.com/pappi-team/pappi-matching/internal/repository"
)

type recommendationRepository struct {
	db *sqlx.DB
}

func NewRecommendationRepository(db *sqlx.DB) repository.RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) Create(ctx context.Context, record *domain.RecommendationRecord) error {
	query := `
		INSERT INTO recommendation_history (user_id, animal_id, score, source, criteria)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, shown_at
	`
	return r.db.QueryRowContext(ctx, query,
		record.UserID, record.AnimalID, record.Score, record.Source, pq.Array(record.Criteria),
	).Scan(&record.ID, &record.ShownAt)
}

func (r *recommendationRepository) RecentlyShownAnimalIDs(ctx context.Context, userID int, since time.Time) ([]int, error) {
	query := `
		SELECT DISTINCT animal_id FROM recommendation_history
		WHERE user_id = $1 AND shown_at >= $2
	`
	var ids []int
	err := r.db.SelectContext(ctx, &ids, query, userID, since)
	return ids, err
}

func (r *recommendationRepository) MarkInteracted(ctx context.Context, userID, animalID int) error {
	query := `
		UPDATE recommendation_history
		SET interacted = TRUE
		WHERE user_id = $1 AND animal_id = $2 AND interacted = FALSE
	`
	_, err := r.db.ExecContext(ctx, query, userID, animalID)
	return err
}
