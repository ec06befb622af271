package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pappi-team/pappi-matching/internal/domain"
	"github.com/pappi-team/pappi-matching/internal/repository"
	"github.com/redis/go-redis/v9"
)

type feedCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFeedCache returns a redis-backed recommendation feed cache with the
// given TTL.
func NewFeedCache(client *redis.Client, ttl time.Duration) repository.FeedCache {
	return &feedCache{client: client, ttl: ttl}
}

func feedKey(userID int) string {
	return fmt.Sprintf("feed:%d", userID)
}

func (c *feedCache) GetFeed(ctx context.Context, userID int) ([]*domain.Recommendation, bool, error) {
	data, err := c.client.Get(ctx, feedKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read feed cache: %w", err)
	}

	var recs []*domain.Recommendation
	if err := json.Unmarshal(data, &recs); err != nil {
		// A corrupt entry is treated as a miss and overwritten.
		return nil, false, nil
	}
	return recs, true, nil
}

func (c *feedCache) SetFeed(ctx context.Context, userID int, recs []*domain.Recommendation) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to encode feed: %w", err)
	}
	if err := c.client.Set(ctx, feedKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write feed cache: %w", err)
	}
	return nil
}

func (c *feedCache) InvalidateFeed(ctx context.Context, userID int) error {
	return c.client.Del(ctx, feedKey(userID)).Err()
}
