// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/ctxutil"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Principal verifies that principals can be stored in context.
*/
func TestContext_Principal(t *testing.T) {
	ctx := context.Background()

	// 1. Initially should be nil
	assert.Nil(t, ctxutil.GetPrincipal(ctx))
	assert.Nil(t, ctxutil.GetRolePrincipal(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithPrincipal(ctx, &sec.Principal{UserID: "user-123", SessionID: "sid"})
	retrieved := ctxutil.GetPrincipal(ctx)

	assert.NotNil(t, retrieved)
	assert.Equal(t, "user-123", retrieved.UserID)
	assert.Nil(t, ctxutil.GetRolePrincipal(ctx))
}

/*
TestContext_RolePrincipal verifies that a role principal also exposes the plain identity.
*/
func TestContext_RolePrincipal(t *testing.T) {
	ctx := ctxutil.WithRolePrincipal(context.Background(), &sec.RolePrincipal{
		Principal:      sec.Principal{UserID: "user-123", SessionID: "sid"},
		FunctionalRole: sec.RoleStaff,
		UniversityRole: sec.UniversityRoleLecturer,
	})

	assert.Equal(t, "user-123", ctxutil.GetPrincipal(ctx).UserID)
	assert.Equal(t, sec.RoleStaff, ctxutil.GetRolePrincipal(ctx).FunctionalRole)
}
