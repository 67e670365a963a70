// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/constants"
)

// RedisCredentialStore implements [CredentialStore] on Redis string keys.
type RedisCredentialStore struct {
	client redis.Cmdable
}

// NewRedisCredentialStore creates a Redis-backed CredentialStore.
func NewRedisCredentialStore(client redis.Cmdable) *RedisCredentialStore {
	return &RedisCredentialStore{client: client}
}

func credentialKey(sessionID string) string {
	return constants.RedisPrefixSession + sessionID
}

/*
Insert stores the binding with SET NX EX so creation and expiry are one command.

Parameters:
  - context: context.Context
  - sessionID: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: ErrCredentialExists or connectivity errors
*/
func (repository *RedisCredentialStore) Insert(context context.Context, sessionID, userID string, ttl time.Duration) error {
	created, err := repository.client.SetNX(context, credentialKey(sessionID), userID, ttl).Result()
	if err != nil {
		return fmt.Errorf("redis_session_insert_failed: %w", err)
	}

	if !created {
		return ErrCredentialExists
	}

	return nil
}

/*
Lookup retrieves the user id bound to sessionID.

Returns:
  - string: The bound user id
  - error: ErrCredentialNotFound or connectivity errors
*/
func (repository *RedisCredentialStore) Lookup(context context.Context, sessionID string) (string, error) {
	userID, err := repository.client.Get(context, credentialKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCredentialNotFound
		}
		return "", fmt.Errorf("redis_session_lookup_failed: %w", err)
	}

	return userID, nil
}

/*
Remaining reads the TTL of the binding with PTTL.

Description: Bindings are always written with a TTL, so a key without one
is treated like a missing key.

Returns:
  - time.Duration: Remaining lifetime, millisecond precision
  - error: ErrCredentialNotFound or connectivity errors
*/
func (repository *RedisCredentialStore) Remaining(context context.Context, sessionID string) (time.Duration, error) {
	ttl, err := repository.client.PTTL(context, credentialKey(sessionID)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_session_ttl_failed: %w", err)
	}

	// PTTL answers -2 for a missing key and -1 for a key without expiry.
	if ttl <= 0 {
		return 0, ErrCredentialNotFound
	}

	return ttl, nil
}

// Delete removes the binding. DEL on a missing key is a no-op.
func (repository *RedisCredentialStore) Delete(context context.Context, sessionID string) error {
	if err := repository.client.Del(context, credentialKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}

// Touch re-arms the TTL of an existing binding.
func (repository *RedisCredentialStore) Touch(context context.Context, sessionID string, ttl time.Duration) error {
	updated, err := repository.client.Expire(context, credentialKey(sessionID), ttl).Result()
	if err != nil {
		return fmt.Errorf("redis_session_touch_failed: %w", err)
	}

	if !updated {
		return ErrCredentialNotFound
	}

	return nil
}
