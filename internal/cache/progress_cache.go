package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ProgressCache mirrors the latest progress write per (user, book) so
// the home screen can render without touching Postgres on every poll.
// All methods are no-ops when the cache was built without a client.
type ProgressCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProgressCache connects to Redis. An empty addr returns a disabled
// cache rather than an error.
func NewProgressCache(addr, password string, ttl time.Duration) (*ProgressCache, error) {
	if addr == "" {
		return &ProgressCache{}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &ProgressCache{client: rdb, ttl: ttl}, nil
}

func (c *ProgressCache) key(userID string, bookID int64) string {
	return fmt.Sprintf("progress:user:%s:book:%d", userID, bookID)
}

// Set stores the percent for a (user, book) pair.
func (c *ProgressCache) Set(ctx context.Context, userID string, bookID int64, percent float64) error {
	if c == nil || c.client == nil {
		return nil
	}
	key := c.key(userID, bookID)

	fields := map[string]any{
		"user_id":    userID,
		"book_id":    bookID,
		"percent":    percent,
		"updated_at": time.Now().Format(time.RFC3339Nano),
	}

	if err := c.client.HSet(ctx, key, fields).Err(); err != nil {
		return err
	}
	return c.client.Expire(ctx, key, c.ttl).Err()
}

// CachedProgress is the mirrored row.
type CachedProgress struct {
	Percent   float64
	UpdatedAt time.Time
}

// Get returns the cached row, or nil on a miss.
func (c *ProgressCache) Get(ctx context.Context, userID string, bookID int64) (*CachedProgress, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	fields, err := c.client.HGetAll(ctx, c.key(userID, bookID)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}
	percent, err := strconv.ParseFloat(fields["percent"], 64)
	if err != nil {
		return nil, err
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, fields["updated_at"])
	if err != nil {
		return nil, err
	}
	return &CachedProgress{Percent: percent, UpdatedAt: updatedAt}, nil
}

// Invalidate drops the cached pair.
func (c *ProgressCache) Invalidate(ctx context.Context, userID string, bookID int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.key(userID, bookID)).Err()
}

// Client exposes the underlying connection for sibling caches.
func (c *ProgressCache) Client() *redis.Client {
	if c == nil {
		return nil
	}
	return c.client
}
