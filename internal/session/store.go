// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package session

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCredentialExists is returned by Insert when the session id is taken.
	ErrCredentialExists = errors.New("session: credential already exists")

	// ErrCredentialNotFound is returned by Lookup for unknown or expired ids.
	ErrCredentialNotFound = errors.New("session: credential not found")
)

// # Credential Data Access

// CredentialStore persists opaque session_id → user_id bindings with a TTL.
type CredentialStore interface {

	/*
		Insert binds sessionID to userID for ttl.

		Description: Insert-if-absent. An existing key is never overwritten.

		Returns:
		  - error: ErrCredentialExists on collision, or storage failures
	*/
	Insert(context context.Context, sessionID, userID string, ttl time.Duration) error

	/*
		Lookup returns the user bound to sessionID.

		Returns:
		  - string: The bound user id
		  - error: ErrCredentialNotFound or storage failures
	*/
	Lookup(context context.Context, sessionID string) (string, error)

	/*
		Remaining reports how long the binding has left to live.

		Returns:
		  - time.Duration: Positive remaining TTL
		  - error: ErrCredentialNotFound if the key is gone, or storage failures
	*/
	Remaining(context context.Context, sessionID string) (time.Duration, error)

	/*
		Delete removes the binding. Deleting a missing key is not an error.
	*/
	Delete(context context.Context, sessionID string) error

	/*
		Touch re-arms the TTL of an existing binding.

		Returns:
		  - error: ErrCredentialNotFound if the key is gone, or storage failures
	*/
	Touch(context context.Context, sessionID string, ttl time.Duration) error
}
