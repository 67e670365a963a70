// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package session_test

import (
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/sec"
	"github.com/Metaversitas/Metaversitas-2.0/internal/session"
)

const (
	testSecret          = "session-test-secret"
	testBearerLifetime  = 10 * time.Minute
	testSessionLifetime = time.Hour
)

// fakeClock is a manually advanced clock shared by the manager and miniredis.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	server *miniredis.Miniredis
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
	c.server.FastForward(d)
}

type fixture struct {
	server  *miniredis.Miniredis
	client  *redis.Client
	store   *session.RedisCredentialStore
	codec   *sec.BearerCodec
	clock   *fakeClock
	manager *session.Manager
}

func newFixture(t *testing.T, mutate ...func(*session.Options)) *fixture {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	codec, err := sec.NewBearerCodec(testSecret, testBearerLifetime)
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), server: server}
	store := session.NewRedisCredentialStore(client)

	options := session.Options{SessionLifetime: testSessionLifetime, Now: clock.Now}
	for _, m := range mutate {
		m(&options)
	}

	manager, err := session.NewManager(store, codec, options)
	require.NoError(t, err)

	return &fixture{
		server:  server,
		client:  client,
		store:   store,
		codec:   codec,
		clock:   clock,
		manager: manager,
	}
}
