package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ninjapark/rollsync/internal/config"
	"github.com/ninjapark/rollsync/internal/model"
	"github.com/redis/go-redis/v9"
)

// RunCache keeps recently viewed runs in Redis so repeated exports skip the
// records query.
type RunCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRunCache creates a new RunCache.
func NewRunCache(rdb *redis.Client, ttl time.Duration) *RunCache {
	return &RunCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached run, or nil without error on a miss.
func (c *RunCache) Get(ctx context.Context, id uuid.UUID) (*model.Run, error) {
	data, err := c.rdb.Get(ctx, config.CacheKey.RunKey(id.String())).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cached run: %w", err)
	}

	var run model.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("decode cached run: %w", err)
	}
	return &run, nil
}

// Set stores run until the cache TTL expires.
func (c *RunCache) Set(ctx context.Context, run *model.Run) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	return c.rdb.Set(ctx, config.CacheKey.RunKey(run.ID.String()), data, c.ttl).Err()
}

// Delete evicts runs, ignoring ones that are not cached.
func (c *RunCache) Delete(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = config.CacheKey.RunKey(id.String())
	}
	return c.rdb.Del(ctx, keys...).Err()
}
