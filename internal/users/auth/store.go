// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package auth

import (
	"context"
	"time"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound (wrapped) or database failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Description: Emails are stored case-folded; callers pass the folded form.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound (wrapped) or database failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.UserAlreadyExists on a duplicate email, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		GetFunctionalRole returns the platform-wide role of a user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - sec.UserRole: The stored role
		  - error: dberr.ErrNotFound (wrapped) or database failures
	*/
	GetFunctionalRole(context context.Context, userID string) (sec.UserRole, error)

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: dberr.ErrNotFound (wrapped) or persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error
}

// # Game Data Access

// GameRepository reads released game builds.
type GameRepository interface {

	/*
		IsLive reports whether version is the currently served build.

		Returns:
		  - bool: true for the live build, false for a retired one
		  - error: dberr.ErrNotFound (wrapped) for an unknown version, or database failures
	*/
	IsLive(context context.Context, version string) (bool, error)
}

// GameVersionCache remembers versions already verified as live.
type GameVersionCache interface {

	/*
		IsKnownLive reports whether version was cached as live.
	*/
	IsKnownLive(context context.Context, version string) (bool, error)

	/*
		MarkLive caches version as live for ttl.
	*/
	MarkLive(context context.Context, version string, ttl time.Duration) error
}
