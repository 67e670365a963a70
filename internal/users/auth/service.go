// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/apperr"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/ctxutil"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/dberr"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/sec"
	"github.com/Metaversitas/Metaversitas-2.0/internal/session"
	"github.com/Metaversitas/Metaversitas-2.0/pkg/uuid"
)

// # Contracts & Types

// Service implements account registration and the login orchestration.
type Service struct {
	userRepository UserRepository
	kdf            *sec.KDF
	sessions       *session.Manager
	gameVersions   *GameVersionService
	photonAPIKey   string
}

// NewService constructs a new [Service] with necessary dependencies.
// An empty photonAPIKey disables the api key check.
func NewService(
	userRepo UserRepository,
	kdf *sec.KDF,
	sessions *session.Manager,
	gameVersions *GameVersionService,
	photonAPIKey string,
) *Service {
	return &Service{
		userRepository: userRepo,
		kdf:            kdf,
		sessions:       sessions,
		gameVersions:   gameVersions,
		photonAPIKey:   photonAPIKey,
	}
}

// NormalizeEmail lower-cases an address so lookups ignore case. Lower-casing
// never rewrites letters, so "ß" stays "ß" instead of folding to "ss".
func NormalizeEmail(email string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(email))
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Nickname string
	Email    string
	Password string
}

/*
Register hashes the password and persists a new, unverified account.

Parameters:
  - ctx: context.Context
  - input: RegisterInput (already validated)

Returns:
  - *User: Created entity
  - error: UserAlreadyExists, Database or Unknown
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	email := NormalizeEmail(input.Email)

	// Fast path; the unique index remains the real guard against races.
	if _, err := service.userRepository.FindByEmail(ctx, email); err == nil {
		return nil, apperr.UserAlreadyExists()
	} else if !dberr.IsNotFound(err) {
		return nil, err
	}

	hashedPassword, err := service.kdf.Hash(ctx, input.Password)
	if err != nil {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "auth_service_hash_failed", slog.Any("error", err))
		return nil, apperr.Unknown(err)
	}

	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashedPassword,
		Nickname:     input.Nickname,
		Role:         sec.RoleUser,
		IsVerified:   false,
	}

	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(ctx).InfoContext(ctx, "user_registered", slog.String("user_id", user.ID))
	return user, nil
}

// # Login Gate

// LoginParams are the query parameters of a login request.
// Nil pointers mean the parameter was absent.
type LoginParams struct {
	Format      Format
	GameVersion *string
	ApiKey      *string
}

/*
CheckClient runs the client-level checks that precede credential verification.

Description: A game_version, when given, must be the live build. Photon
logins must present the configured api key when one is set.

Returns:
  - error: InvalidGameVersion, OutdatedGameVersion, InvalidApiKey or store failures
*/
func (service *Service) CheckClient(ctx context.Context, params LoginParams) error {
	if params.GameVersion != nil {
		if err := service.gameVersions.Verify(ctx, *params.GameVersion); err != nil {
			return err
		}
	}

	if params.Format == FormatPhoton && service.photonAPIKey != "" {
		if params.ApiKey == nil || subtle.ConstantTimeCompare([]byte(*params.ApiKey), []byte(service.photonAPIKey)) != 1 {
			return apperr.InvalidApiKey()
		}
	}

	return nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is a verified account plus its freshly begun session.
type LoginResult struct {
	User       *User
	Credential session.Credential
	Bearer     sec.Bearer
}

/*
Login verifies credentials and begins a session.

Description: An unknown email and a wrong password are indistinguishable
to the caller. Password verification runs on the KDF worker pool.

Parameters:
  - ctx: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Account, credential and bearer
  - error: InvalidCredentials, UnableCreateSession or store failures
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	logger := ctxutil.GetLogger(ctx)

	user, err := service.userRepository.FindByEmail(ctx, NormalizeEmail(input.Email))
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.InvalidCredentials()
		}
		return nil, err
	}

	if err := service.verifyPassword(ctx, user, input.Password); err != nil {
		return nil, err
	}

	credential, bearer, err := service.sessions.Begin(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "user_logged_in", slog.String("user_id", user.ID))

	return &LoginResult{User: user, Credential: credential, Bearer: bearer}, nil
}

// # Password Management

/*
ChangePassword verifies the current password and stores a hash of the new one.

Parameters:
  - ctx: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string (already validated)

Returns:
  - error: InvalidCredentials, UserNotExist or store failures
*/
func (service *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return apperr.UserNotExist()
		}
		return err
	}

	if err := service.verifyPassword(ctx, user, currentPassword); err != nil {
		return err
	}

	hashedPassword, err := service.kdf.Hash(ctx, newPassword)
	if err != nil {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "auth_service_hash_failed", slog.Any("error", err))
		return apperr.Unknown(err)
	}

	if err := service.userRepository.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		if dberr.IsNotFound(err) {
			return apperr.UserNotExist()
		}
		return err
	}

	return nil
}

// GetFunctionalRole exposes the stored role to the authorization gate.
func (service *Service) GetFunctionalRole(ctx context.Context, userID string) (sec.UserRole, error) {
	return service.userRepository.GetFunctionalRole(ctx, userID)
}

func (service *Service) verifyPassword(ctx context.Context, user *User, password string) error {
	matched, err := service.kdf.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "auth_service_verify_failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		if errors.Is(err, sec.ErrMalformedHash) {
			return apperr.InvalidCredentials()
		}
		return apperr.Unknown(err)
	}

	if !matched {
		return apperr.InvalidCredentials()
	}

	return nil
}
