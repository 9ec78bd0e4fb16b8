package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatsCache holds short-lived club aggregate snapshots (average rating
// and progress for a book). The aggregates are re-derived on every
// cache miss; staleness is bounded by the TTL, which should stay small.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// CachedAverages is the stored snapshot. Nil pointers mean "no data",
// which is distinct from a zero average. The counts travel with the
// averages so a warm hit serves the same payload as a cold compute.
type CachedAverages struct {
	AverageRating   *float64 `json:"average_rating"`
	RatingCount     int      `json:"rating_count"`
	AverageProgress *float64 `json:"average_progress"`
	ProgressCount   int      `json:"progress_count"`
}

func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

// Enabled reports whether the cache was built with a live connection.
func (c *StatsCache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *StatsCache) key(clubID, bookID int64) string {
	return fmt.Sprintf("stats:club:%d:book:%d", clubID, bookID)
}

func (c *StatsCache) Get(ctx context.Context, clubID, bookID int64) (*CachedAverages, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, c.key(clubID, bookID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snapshot CachedAverages
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (c *StatsCache) Set(ctx context.Context, clubID, bookID int64, snapshot CachedAverages) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(clubID, bookID), raw, c.ttl).Err()
}

func (c *StatsCache) Invalidate(ctx context.Context, clubID, bookID int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.key(clubID, bookID)).Err()
}
