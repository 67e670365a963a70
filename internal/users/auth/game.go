// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/apperr"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/ctxutil"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/dberr"
)

// DefaultGameVersionTTL is how long a verified live version stays cached.
const DefaultGameVersionTTL = time.Hour

// GameVersionService gates game client logins on the released build.
type GameVersionService struct {
	games GameRepository
	cache GameVersionCache
	ttl   time.Duration
}

// NewGameVersionService constructs a [GameVersionService].
func NewGameVersionService(games GameRepository, cache GameVersionCache, ttl time.Duration) *GameVersionService {
	if ttl <= 0 {
		ttl = DefaultGameVersionTTL
	}
	return &GameVersionService{games: games, cache: cache, ttl: ttl}
}

/*
Verify accepts only the live game build.

Description: A cached live marker short-circuits the database. Only live
versions are cached; unknown and retired versions are re-checked every time.

Parameters:
  - ctx: context.Context
  - version: string

Returns:
  - error: InvalidGameVersion, OutdatedGameVersion, Redis or Database
*/
func (service *GameVersionService) Verify(ctx context.Context, version string) error {
	logger := ctxutil.GetLogger(ctx)

	known, err := service.cache.IsKnownLive(ctx, version)
	if err != nil {
		logger.ErrorContext(ctx, "game_version_cache_read_failed", slog.Any("error", err))
		return apperr.Redis(err)
	}
	if known {
		return nil
	}

	live, err := service.games.IsLive(ctx, version)
	if err != nil {
		if dberr.IsNotFound(err) {
			return apperr.InvalidGameVersion()
		}
		logger.ErrorContext(ctx, "game_version_lookup_failed", slog.Any("error", err))
		return apperr.Database(err)
	}

	if !live {
		return apperr.OutdatedGameVersion()
	}

	if err := service.cache.MarkLive(ctx, version, service.ttl); err != nil {
		logger.ErrorContext(ctx, "game_version_cache_write_failed", slog.Any("error", err))
		return apperr.Redis(err)
	}

	return nil
}
