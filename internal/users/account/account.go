// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

/*
Package account handles the authenticated /user endpoints.

It lets a signed-in member read the cached profile aggregate, edit the
personal identity behind it, change their password and inspect both of
their roles.

# Architecture

  - Entities: IdentityUpdate, ProfileView, RoleView (DTO).
  - Domain: Reads go through the profile cache; every identity write
    invalidates it before returning.
  - Security: Every route sits behind the session gate.
*/
package account

import (
	"context"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/sec"
	"github.com/Metaversitas/Metaversitas-2.0/internal/profile"
)

// # Domain Entities

// IdentityUpdate is a partial change to the personal identity. Nil fields are kept.
type IdentityUpdate struct {
	FullName *string
	Gender   *sec.Gender
	PhotoKey *string
}

// Empty reports whether the update changes nothing.
func (update IdentityUpdate) Empty() bool {
	return update.FullName == nil && update.Gender == nil && update.PhotoKey == nil
}

// ProfileView is the profile as returned to its owner.
type ProfileView struct {
	*profile.Profile

	// PhotoURL is a short-lived download link for PhotoKey.
	PhotoURL string `json:"photo_url,omitempty"`
}

// RoleView exposes both role dimensions of the caller.
type RoleView struct {
	UserID         string             `json:"user_id"`
	FunctionalRole sec.UserRole       `json:"functional_role"`
	UniversityRole sec.UniversityRole `json:"university_role"`
}

// # Repository Contracts

// IdentityRepository defines the persistence contract for personal identity rows.
type IdentityRepository interface {
	/*
		UpdateIdentity applies the non-nil fields of update.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - update: IdentityUpdate

		Returns:
		  - error: dberr.ErrNotFound (wrapped) when the user has no identity, or storage failures
	*/
	UpdateIdentity(context context.Context, userID string, update IdentityUpdate) error
}

// # Collaborators

// ProfileCache is the read-through profile cache.
type ProfileCache interface {
	Get(ctx context.Context, userID string) (*profile.Profile, error)
	Invalidate(ctx context.Context, userID string) error
}

// PhotoSigner mints download URLs for stored photos.
type PhotoSigner interface {
	PresignGet(ctx context.Context, key string) (string, error)
}

// PasswordChanger verifies and replaces a password.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}
