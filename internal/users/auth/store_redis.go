// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/constants"
)

// RedisGameVersionCache implements GameVersionCache using Redis.
type RedisGameVersionCache struct {
	client redis.Cmdable
}

// NewGameVersionCache creates a new Redis-backed GameVersionCache.
func NewGameVersionCache(client redis.Cmdable) *RedisGameVersionCache {
	return &RedisGameVersionCache{client: client}
}

func gameVersionKey(version string) string {
	return constants.RedisPrefixGameVersion + version
}

/*
IsKnownLive checks for a cached live marker.

Parameters:
  - context: context.Context
  - version: string

Returns:
  - bool: true if the version was cached as live
  - error: Connectivity errors
*/
func (repository *RedisGameVersionCache) IsKnownLive(context context.Context, version string) (bool, error) {
	count, err := repository.client.Exists(context, gameVersionKey(version)).Result()
	if err != nil {
		return false, fmt.Errorf("redis_game_version_get_failed: %w", err)
	}

	return count == 1, nil
}

/*
MarkLive stores the live marker with a TTL.

Parameters:
  - context: context.Context
  - version: string
  - ttl: time.Duration

Returns:
  - error: Connectivity errors
*/
func (repository *RedisGameVersionCache) MarkLive(context context.Context, version string, ttl time.Duration) error {
	if err := repository.client.Set(context, gameVersionKey(version), "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis_game_version_set_failed: %w", err)
	}

	return nil
}
