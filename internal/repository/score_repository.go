package repository

import (
	"context"
	"time"

	"github.com/pappi-team/pappi-matching/internal/domain"
)

type MatchScoreRepository interface {
	// Upsert inserts or overwrites the score for the (user, animal) pair in
	// one atomic statement.
	Upsert(ctx context.Context, score *domain.MatchScore) error

	// DeleteOlderThan removes scores computed before the cutoff and returns
	// how many rows were swept.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
