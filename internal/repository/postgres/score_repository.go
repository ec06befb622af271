package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pappi-team/pappi-matching/internal/domain"
	"github.com/pappi-team/pappi-matching/internal/repository"
)

type matchScoreRepository struct {
	db *sqlx.DB
}

func NewMatchScoreRepository(db *sqlx.DB) repository.MatchScoreRepository {
	return &matchScoreRepository{db: db}
}

func (r *matchScoreRepository) Upsert(ctx context.Context, score *domain.MatchScore) error {
	// Atomic insert-or-update on the (user_id, animal_id) unique pair, so
	// concurrent recomputation for the same user cannot race into a
	// duplicate-key failure.
	query := `
		INSERT INTO matching_scores (user_id, animal_id, score, matched_criteria)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, animal_id) DO UPDATE
		SET score = EXCLUDED.score,
		    matched_criteria = EXCLUDED.matched_criteria,
		    created_at = CURRENT_TIMESTAMP
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		score.UserID, score.AnimalID, score.Score, pq.Array(score.MatchedCriteria),
	).Scan(&score.ID, &score.CreatedAt)
}

func (r *matchScoreRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM matching_scores WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
