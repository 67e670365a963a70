// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Metaversitas/Metaversitas-2.0/internal/api"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/constants"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/metrics"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/middleware"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/migration"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/objectstore"
	pgstore "github.com/Metaversitas/Metaversitas-2.0/internal/platform/postgres"
	redisstore "github.com/Metaversitas/Metaversitas-2.0/internal/platform/redis"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/sec"
	"github.com/Metaversitas/Metaversitas-2.0/internal/profile"
	"github.com/Metaversitas/Metaversitas-2.0/internal/session"
	"github.com/Metaversitas/Metaversitas-2.0/internal/users/account"
	"github.com/Metaversitas/Metaversitas-2.0/internal/users/auth"
)

// runServe performs the startup sequence and blocks until a shutdown signal.
//
// # Startup Sequence
//
//  1. Load configuration from the environment (.env honoured).
//  2. Connect to PostgreSQL (pgxpool) and Redis.
//  3. Run database migrations (idempotent).
//  4. Wire the session core, caches and HTTP handlers.
//  5. Start the HTTP(S) server with graceful shutdown.
func runServe(ctx context.Context, log *slog.Logger) error {
	// ── 1. Configuration ──────────────────────────────────────────────────
	cfg, log, err := loadConfig(log)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Use a 30s deadline so misconfiguration is caught quickly rather than
	// hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(ctx, 30*time.Second)
	defer startupCancel()

	// ── 2. PostgreSQL & Redis ─────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL(), log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 3. Migrations ─────────────────────────────────────────────────────
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// ── 4. Session Core ───────────────────────────────────────────────────
	kdf := sec.NewKDF(cfg.KDFWorkers, sec.DefaultKDFParams())

	codec, err := sec.NewBearerCodec(cfg.JWTSecret, cfg.BearerLifetime)
	if err != nil {
		return fmt.Errorf("initialize bearer codec: %w", err)
	}

	sessions, err := session.NewManager(session.NewRedisCredentialStore(rdb), codec, session.Options{
		SessionLifetime: cfg.SessionLifetime(),
		ExtendOnRefresh: cfg.ExtendSessionOnRefresh,
	})
	if err != nil {
		return fmt.Errorf("initialize session manager: %w", err)
	}

	cookies := session.NewCookieAdapter(cfg.IsProduction(), cfg.CookieDomain)
	photon := session.NewPhotonAdapter()
	profiles := profile.NewCache(rdb, profile.NewPostgresSource(pool), cfg.ProfileCacheTTL)

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	gameVersions := auth.NewGameVersionService(auth.NewGameRepository(pool), auth.NewGameVersionCache(rdb), cfg.GameVersionCacheTTL)
	authService := auth.NewService(auth.NewUserRepository(pool), kdf, sessions, gameVersions, cfg.PhotonAPIKey)
	gate := middleware.NewGate(sessions, cookies, profiles, authService)

	var photos account.PhotoSigner
	if cfg.ObjectStorageEnabled() {
		presigner, err := objectstore.NewPresigner(startupCtx, objectstore.Options{
			Endpoint:  cfg.StorageEndpoint,
			Bucket:    cfg.StorageBucket,
			Region:    cfg.StorageRegion,
			AccessKey: cfg.StorageAccessKey,
			SecretKey: cfg.StorageSecretKey,
		})
		if err != nil {
			return fmt.Errorf("initialize object storage: %w", err)
		}
		photos = presigner
	} else {
		log.Warn("object_storage_disabled", slog.String("reason", "MINIO_HOST_URL or MINIO_BUCKET_NAME unset"))
	}

	accountService := account.NewService(account.NewIdentityRepository(pool), profiles, photos, authService)

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	serverCtx, serverCancel := context.WithCancel(ctx)
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   metrics.Handler(),
		Auth:      auth.NewHandler(authService, sessions, cookies, photon, profiles, gate),
		Account:   account.NewHandler(accountService, gate),
	})

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	var runErr error
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case runErr = <-serverErr:
		log.Error("server startup error", slog.Any("error", runErr))
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	if runErr != nil {
		return runErr
	}

	log.Info("server stopped cleanly")
	return nil
}
