// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/config"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/constants"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/middleware"
	"github.com/Metaversitas/Metaversitas-2.0/internal/users/account"
	"github.com/Metaversitas/Metaversitas-2.0/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
	tls        bool
	certPath   string
	keyPath    string
}

// # Handler Registry

// Handlers groups all HTTP handler sets. A nil field leaves its routes unmounted.
type Handlers struct {
	// Liveness is the /health handler.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler, 503 while a dependency is down.
	Readiness http.HandlerFunc

	// Metrics exposes the Prometheus registry on /metrics.
	Metrics http.Handler

	// Auth handles registration, login, refresh and logout under /auth.
	Auth *auth.Handler

	// Account handles the caller's profile, password and role under /user.
	Account *account.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery)
	r.Use(middleware.Metrics)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.NewRateLimiter(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst).Handler)
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	if h.Liveness != nil {
		r.Get("/health", h.Liveness)
	}
	if h.Readiness != nil {
		r.Get("/ready", h.Readiness)
	}
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}

	// # Application API
	if h.Auth != nil {
		r.Mount("/auth", h.Auth.Routes())
	}
	if h.Account != nil {
		r.Mount("/user", h.Account.Routes())
	}

	addr := cfg.HTTPAddr()
	if cfg.TLSMode {
		addr = cfg.HTTPSAddr()
	}

	return &Server{
		router:   r,
		log:      log,
		tls:      cfg.TLSMode,
		certPath: cfg.TLSCertPath,
		keyPath:  cfg.TLSKeyPath,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler returns the fully assembled router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP or HTTPS listener.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr), slog.Bool("tls", s.tls))
	if s.tls {
		return s.httpServer.ListenAndServeTLS(s.certPath, s.keyPath)
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
