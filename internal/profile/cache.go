// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/apperr"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/constants"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/ctxutil"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/metrics"
)

// DefaultTTL is how long an aggregate stays cached.
const DefaultTTL = 30 * time.Minute

// Cache is a read-through, write-invalidate cache of [Profile] aggregates.
//
// Concurrent misses for the same user share one database read. A load that
// started before an [Cache.Invalidate] never writes its result back.
type Cache struct {
	client redis.Cmdable
	source Source
	ttl    time.Duration
	group  singleflight.Group

	// mu orders write-backs against invalidations; generation counts the
	// invalidations seen so far.
	mu         sync.Mutex
	generation uint64
}

// NewCache creates a profile cache. A non-positive ttl selects [DefaultTTL].
func NewCache(client redis.Cmdable, source Source, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, source: source, ttl: ttl}
}

func cacheKey(userID string) string {
	return constants.RedisPrefixProfile + userID
}

/*
Get returns the aggregate for userID.

Description: A cache hit is returned as stored. On a miss, or when the cache
cannot be read or decoded, the aggregate is loaded from the source and
written back. Cache failures are logged and never fail the call.

Returns:
  - *Profile: The aggregate
  - error: ProfileUnavailable when the source fails or has no row
*/
func (c *Cache) Get(ctx context.Context, userID string) (*Profile, error) {
	logger := ctxutil.GetLogger(ctx)
	key := cacheKey(userID)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached Profile
		decodeErr := json.Unmarshal(raw, &cached)
		if decodeErr == nil {
			metrics.RecordProfileCache("hit")
			return &cached, nil
		}
		logger.WarnContext(ctx, "profile_cache_decode_failed", slog.String("user_id", userID), slog.Any("error", decodeErr))
		metrics.RecordProfileCache("error")
	case errors.Is(err, redis.Nil):
		metrics.RecordProfileCache("miss")
	default:
		logger.ErrorContext(ctx, "profile_cache_read_failed", slog.String("user_id", userID), slog.Any("error", err))
		metrics.RecordProfileCache("error")
	}

	// Detached from the caller so one cancelled request does not fail the
	// others waiting on the same flight.
	loaded, err, _ := c.group.Do(userID, func() (any, error) {
		return c.load(context.WithoutCancel(ctx), userID, c.currentGeneration())
	})
	if err != nil {
		return nil, err
	}

	p := *loaded.(*Profile)
	return &p, nil
}

func (c *Cache) currentGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *Cache) load(ctx context.Context, userID string, generation uint64) (*Profile, error) {
	logger := ctxutil.GetLogger(ctx)

	p, err := c.source.Load(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "profile_load_failed", slog.String("user_id", userID), slog.Any("error", err))
		return nil, apperr.ProfileUnavailable(err)
	}

	payload, err := json.Marshal(p)
	if err != nil {
		logger.ErrorContext(ctx, "profile_encode_failed", slog.String("user_id", userID), slog.Any("error", err))
		return p, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// The row may predate a write that invalidated the cache while loading.
	if c.generation != generation {
		logger.DebugContext(ctx, "profile_cache_write_skipped", slog.String("user_id", userID))
		return p, nil
	}

	if err := c.client.Set(ctx, cacheKey(userID), payload, c.ttl).Err(); err != nil {
		logger.ErrorContext(ctx, "profile_cache_write_failed", slog.String("user_id", userID), slog.Any("error", err))
	}

	return p, nil
}

// Invalidate drops the cached aggregate. Deleting an absent key succeeds.
//
// A Get issued after Invalidate returns never joins a load that was already
// in flight, and that load's result is not cached.
func (c *Cache) Invalidate(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.group.Forget(userID)

	if err := c.client.Del(ctx, cacheKey(userID)).Err(); err != nil {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "profile_cache_invalidate_failed", slog.String("user_id", userID), slog.Any("error", err))
		return apperr.Redis(fmt.Errorf("redis_profile_invalidate_failed: %w", err))
	}
	return nil
}
