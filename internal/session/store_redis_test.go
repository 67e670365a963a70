// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Metaversitas/Metaversitas-2.0/internal/session"
)

/*
TestRedisCredentialStore_Lifecycle covers insert, lookup, touch and delete
against a real Redis protocol server.
*/
func TestRedisCredentialStore_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Insert(ctx, "sid-1", "user-1", time.Hour))
	assert.Equal(t, time.Hour, f.server.TTL("session:sid-1"))

	userID, err := f.store.Lookup(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	f.server.FastForward(30 * time.Minute)
	require.NoError(t, f.store.Touch(ctx, "sid-1", time.Hour))
	assert.Equal(t, time.Hour, f.server.TTL("session:sid-1"))

	require.NoError(t, f.store.Delete(ctx, "sid-1"))
	_, err = f.store.Lookup(ctx, "sid-1")
	assert.ErrorIs(t, err, session.ErrCredentialNotFound)

	// Deleting twice is harmless.
	require.NoError(t, f.store.Delete(ctx, "sid-1"))
}

/*
TestRedisCredentialStore_InsertIfAbsent ensures an existing binding is never overwritten.
*/
func TestRedisCredentialStore_InsertIfAbsent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Insert(ctx, "sid-1", "user-1", time.Hour))

	err := f.store.Insert(ctx, "sid-1", "intruder", time.Hour)
	assert.ErrorIs(t, err, session.ErrCredentialExists)

	userID, err := f.store.Lookup(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

/*
TestRedisCredentialStore_Expiry verifies that bindings disappear after their TTL.
*/
func TestRedisCredentialStore_Expiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Insert(ctx, "sid-1", "user-1", time.Minute))
	f.server.FastForward(time.Minute + time.Second)

	_, err := f.store.Lookup(ctx, "sid-1")
	assert.ErrorIs(t, err, session.ErrCredentialNotFound)

	err = f.store.Touch(ctx, "sid-1", time.Hour)
	assert.ErrorIs(t, err, session.ErrCredentialNotFound)
}

/*
TestRedisCredentialStore_Unavailable checks that connectivity failures are
distinguishable from a missing credential.
*/
func TestRedisCredentialStore_Unavailable(t *testing.T) {
	f := newFixture(t)
	f.server.Close()

	_, err := f.store.Lookup(context.Background(), "sid-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, session.ErrCredentialNotFound)
	assert.Contains(t, err.Error(), "redis_session_lookup_failed")
}

/*
TestRedisCredentialStore_Remaining reports the TTL left and treats gone or
unbounded bindings as missing.
*/
func TestRedisCredentialStore_Remaining(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Insert(ctx, "sid-1", "user-1", time.Hour))
	f.server.FastForward(55 * time.Minute)

	remaining, err := f.store.Remaining(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, remaining)

	_, err = f.store.Remaining(ctx, "missing")
	assert.ErrorIs(t, err, session.ErrCredentialNotFound)

	require.NoError(t, f.server.Set("session:sid-2", "user-2"))
	_, err = f.store.Remaining(ctx, "sid-2")
	assert.ErrorIs(t, err, session.ErrCredentialNotFound)
}
