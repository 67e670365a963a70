// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package account

import (
	"context"
	"log/slog"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/apperr"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/ctxutil"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/dberr"
)

// # Service Layer

// Service orchestrates profile reads, identity edits and password changes.
type Service struct {
	identityRepository IdentityRepository
	profiles           ProfileCache
	photos             PhotoSigner
	passwords          PasswordChanger
}

// NewService constructs a new [Service]. photos may be nil when object
// storage is not configured; profiles are then returned without photo_url.
func NewService(
	identityRepo IdentityRepository,
	profiles ProfileCache,
	photos PhotoSigner,
	passwords PasswordChanger,
) *Service {
	return &Service{
		identityRepository: identityRepo,
		profiles:           profiles,
		photos:             photos,
		passwords:          passwords,
	}
}

// # Profile Management

/*
GetProfile returns the cached profile of a user with a fresh photo link.

Description: A signing failure is logged and the link omitted; the profile
itself is still returned.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - *ProfileView: The profile plus an optional photo_url
  - error: ProfileUnavailable or Redis
*/
func (service *Service) GetProfile(ctx context.Context, userID string) (*ProfileView, error) {
	userProfile, err := service.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &ProfileView{Profile: userProfile}
	if service.photos == nil || userProfile.PhotoKey == "" {
		return view, nil
	}

	photoURL, err := service.photos.PresignGet(ctx, userProfile.PhotoKey)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "account_photo_presign_failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return view, nil
	}

	view.PhotoURL = photoURL
	return view, nil
}

/*
UpdateIdentity applies a partial identity change and drops the cached profile.

Description: The cache entry is invalidated after the write commits, so the
next read re-derives the aggregate from the database.

Parameters:
  - ctx: context.Context
  - userID: string
  - update: IdentityUpdate (already validated)

Returns:
  - *ProfileView: The profile as re-read after the change
  - error: InvalidParameters, UserNotExist, Database or Redis
*/
func (service *Service) UpdateIdentity(ctx context.Context, userID string, update IdentityUpdate) (*ProfileView, error) {
	if update.Empty() {
		return nil, apperr.InvalidParameters("No field to update")
	}

	if err := service.identityRepository.UpdateIdentity(ctx, userID, update); err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.UserNotExist()
		}
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "account_identity_update_failed", slog.Any("error", err))
		return nil, err
	}

	if err := service.profiles.Invalidate(ctx, userID); err != nil {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "account_profile_invalidate_failed", slog.Any("error", err))
		return nil, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "user_identity_updated", slog.String("user_id", userID))

	return service.GetProfile(ctx, userID)
}

// # Credentials

// ChangePassword verifies the current password and stores the new one.
func (service *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if err := service.passwords.ChangePassword(ctx, userID, currentPassword, newPassword); err != nil {
		return err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "user_password_changed", slog.String("user_id", userID))
	return nil
}
