package repository

import (
	"context"

	"github.com/pappi-team/pappi-matching/internal/domain"
)

// FeedCache is a short-lived per-user cache of the blended feed. A miss is
// not an error: ok is false and the feed is recomputed.
type FeedCache interface {
	GetFeed(ctx context.Context, userID int) (recs []*domain.Recommendation, ok bool, err error)
	SetFeed(ctx context.Context, userID int, recs []*domain.Recommendation) error
	InvalidateFeed(ctx context.Context, userID int) error
}
