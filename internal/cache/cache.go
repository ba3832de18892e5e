package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trogers1052/position-service/internal/models"
)

// ErrMiss is returned when no snapshot is cached.
var ErrMiss = errors.New("positions snapshot not cached")

const snapshotKey = "positions:snapshot"

// Cache keeps the latest normalized positions snapshot in Redis so the
// read API does not hit PostgreSQL on every request. Entries carry a
// TTL as a backstop; the consumer invalidates explicitly whenever a new
// snapshot lands.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a cache backed by the Redis instance at addr
func New(addr string, ttl time.Duration) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// Ping verifies the Redis connection
func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

// SetSnapshot caches the given snapshot
func (c *Cache) SetSnapshot(ctx context.Context, records []*models.PositionRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache snapshot: %w", err)
	}
	return nil
}

// GetSnapshot returns the cached snapshot, or ErrMiss when none is cached
func (c *Cache) GetSnapshot(ctx context.Context) ([]*models.PositionRecord, error) {
	data, err := c.client.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached snapshot: %w", err)
	}

	var records []*models.PositionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached snapshot: %w", err)
	}
	return records, nil
}

// Invalidate drops the cached snapshot
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, snapshotKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate snapshot cache: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}
