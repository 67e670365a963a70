// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/ctxkey"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithPrincipal returns a new context carrying the authenticated principal.
func WithPrincipal(ctx context.Context, principal *sec.Principal) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, principal)
}

// GetPrincipal retrieves the [*sec.Principal], or nil for anonymous requests.
func GetPrincipal(ctx context.Context) *sec.Principal {
	principal, ok := ctx.Value(ctxkey.KeyUser).(*sec.Principal)
	if !ok {
		return nil
	}
	return principal
}

// WithRolePrincipal returns a new context carrying the role-enriched principal.
// The plain principal is stored as well so identity-only readers keep working.
func WithRolePrincipal(ctx context.Context, principal *sec.RolePrincipal) context.Context {
	ctx = WithPrincipal(ctx, &principal.Principal)
	return context.WithValue(ctx, ctxkey.KeyRoleUser, principal)
}

// GetRolePrincipal retrieves the [*sec.RolePrincipal], or nil when the route
// was not guarded with role resolution.
func GetRolePrincipal(ctx context.Context) *sec.RolePrincipal {
	principal, ok := ctx.Value(ctxkey.KeyRoleUser).(*sec.RolePrincipal)
	if !ok {
		return nil
	}
	return principal
}
