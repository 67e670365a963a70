// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

/*
Package session implements the issuance, validation, refresh and revocation
of authenticated sessions.

A session is two pieces kept in lockstep:

  - Credential: an opaque, revocable session_id → user_id binding in Redis.
  - Bearer: a short-lived signed token naming the same session_id.

A request authenticates only when both agree. Revoking the credential
therefore revokes every bearer ever minted for it, while an expired but
well-formed bearer is silently re-minted as long as its credential lives.

The same pair travels over two transports: browser cookies ([CookieAdapter])
and the Photon auth_data payload ([PhotonAdapter]).
*/
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/apperr"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/constants"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/ctxutil"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/metrics"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/sec"
)

// # Domain Types

// Credential is the server-side half of a session.
type Credential struct {
	SessionID string
	UserID    string
	ExpiresAt time.Time
}

// Pair is the credential id and bearer token as presented by a client.
// Bearer holds the raw token without the "Bearer " prefix.
type Pair struct {
	SessionID string
	Bearer    string
}

// Outcome is the result of [Manager.Validate].
type Outcome int

const (
	// OutcomeRejected means the pair must not authenticate.
	OutcomeRejected Outcome = iota
	// OutcomeValidated means the pair authenticates as-is.
	OutcomeValidated
	// OutcomeNeedsRefresh means the pair authenticates once a new bearer is minted.
	OutcomeNeedsRefresh
)

// String returns the metrics label of the outcome.
func (outcome Outcome) String() string {
	switch outcome {
	case OutcomeValidated:
		return "validated"
	case OutcomeNeedsRefresh:
		return "refreshed"
	default:
		return "rejected"
	}
}

// Validation carries the outcome together with the identity it resolved.
type Validation struct {
	Outcome   Outcome
	UserID    string
	SessionID string
	// Reason explains a rejection for logs only.
	Reason string
}

// Authentication is the result of a successful [Manager.Authenticate].
type Authentication struct {
	Principal sec.Principal
	// Bearer is the bearer the client should hold after this request.
	Bearer sec.Bearer
	// Renewed is true when Bearer was minted during this request.
	Renewed bool
}

// # Manager

// Options tunes a [Manager].
type Options struct {
	// SessionLifetime is the credential TTL. Zero selects one hour.
	SessionLifetime time.Duration
	// ExtendOnRefresh re-arms the credential TTL whenever a bearer is refreshed.
	ExtendOnRefresh bool
	// Now overrides the clock.
	Now func() time.Time
	// NewSessionID overrides the session id generator.
	NewSessionID func() (string, error)
}

// Manager owns credential creation and deletion and the bearer ↔ credential cross-check.
type Manager struct {
	store           CredentialStore
	codec           *sec.BearerCodec
	sessionLifetime time.Duration
	extendOnRefresh bool
	now             func() time.Time
	newSessionID    func() (string, error)
}

// NewManager constructs a [Manager].
//
// It refuses a session lifetime that does not strictly exceed the bearer
// lifetime, since every bearer must expire before its credential.
func NewManager(store CredentialStore, codec *sec.BearerCodec, options Options) (*Manager, error) {
	if options.SessionLifetime <= 0 {
		options.SessionLifetime = constants.DefaultSessionLifetime
	}
	if options.SessionLifetime <= codec.Lifetime() {
		return nil, fmt.Errorf("session: lifetime %s must exceed bearer lifetime %s", options.SessionLifetime, codec.Lifetime())
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.NewSessionID == nil {
		options.NewSessionID = sec.GenerateSessionID
	}

	return &Manager{
		store:           store,
		codec:           codec,
		sessionLifetime: options.SessionLifetime,
		extendOnRefresh: options.ExtendOnRefresh,
		now:             options.Now,
		newSessionID:    options.NewSessionID,
	}, nil
}

// SessionLifetime returns the configured credential TTL.
func (manager *Manager) SessionLifetime() time.Duration {
	return manager.sessionLifetime
}

/*
Begin issues a new session for userID.

Description: Generates a session id, inserts the credential with
insert-if-absent semantics and mints a bearer bound to it. A collision is
reported as a failure, never retried or overwritten.

Returns:
  - Credential: The stored credential
  - sec.Bearer: The bearer for the client
  - error: UnableCreateSession on collision, store or signing failure
*/
func (manager *Manager) Begin(ctx context.Context, userID string) (Credential, sec.Bearer, error) {
	now := manager.now().Truncate(time.Second)

	sessionID, err := manager.newSessionID()
	if err != nil {
		return Credential{}, sec.Bearer{}, apperr.UnableCreateSession(err)
	}

	if err := manager.store.Insert(ctx, sessionID, userID, manager.sessionLifetime); err != nil {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "session_insert_failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return Credential{}, sec.Bearer{}, apperr.UnableCreateSession(err)
	}

	bearer, err := manager.codec.Mint(userID, sessionID, now)
	if err != nil {
		return Credential{}, sec.Bearer{}, apperr.UnableCreateSession(err)
	}

	metrics.SessionsIssuedTotal.Inc()

	return Credential{
		SessionID: sessionID,
		UserID:    userID,
		ExpiresAt: now.Add(manager.sessionLifetime),
	}, bearer, nil
}

/*
Validate cross-checks a presented bearer against its credential.

Description: The bearer must parse, name the presented session id, and
match the user bound to a live credential. An expired bearer that passes
every other check yields OutcomeNeedsRefresh.

Returns:
  - Validation: The outcome and resolved identity
  - error: Redis failures only; every authentication failure is a rejection
*/
func (manager *Manager) Validate(ctx context.Context, sessionID, token string) (Validation, error) {
	reject := func(reason string) (Validation, error) {
		return Validation{Outcome: OutcomeRejected, SessionID: sessionID, Reason: reason}, nil
	}

	// ── 1. Structure & signature ────────────────────────────────────────
	bearer, err := manager.codec.Parse(token)
	if err != nil {
		return reject("malformed_bearer")
	}

	// ── 2. Bearer names this credential ─────────────────────────────────
	if sessionID == "" || bearer.SessionID != sessionID {
		return reject("session_mismatch")
	}

	// ── 3. Credential is live ───────────────────────────────────────────
	userID, err := manager.store.Lookup(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrCredentialNotFound) {
			return reject("credential_missing")
		}
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "session_lookup_failed", slog.Any("error", err))
		return Validation{}, apperr.Redis(err)
	}

	// ── 4. Same user on both halves ─────────────────────────────────────
	if userID != bearer.UserID {
		return reject("user_mismatch")
	}

	outcome := OutcomeValidated
	if bearer.Expired(manager.now()) {
		outcome = OutcomeNeedsRefresh
	}

	return Validation{Outcome: outcome, UserID: userID, SessionID: sessionID}, nil
}

/*
Refresh mints a fresh bearer for an existing session.

Description: The credential keeps its original expiry unless the manager
was built with ExtendOnRefresh. The new bearer always expires at least one
second before the credential does; a credential with less than that left
cannot be refreshed.

Returns:
  - sec.Bearer: The new bearer
  - error: Unauthorized if the credential is gone or about to lapse, Redis
    or UnableCreateSession failures
*/
func (manager *Manager) Refresh(ctx context.Context, sessionID, userID string) (sec.Bearer, error) {
	now := manager.now()

	var remaining time.Duration
	if manager.extendOnRefresh {
		if err := manager.store.Touch(ctx, sessionID, manager.sessionLifetime); err != nil {
			return sec.Bearer{}, manager.credentialError(ctx, "session_touch_failed", err)
		}
		remaining = manager.sessionLifetime
	} else {
		left, err := manager.store.Remaining(ctx, sessionID)
		if err != nil {
			return sec.Bearer{}, manager.credentialError(ctx, "session_ttl_failed", err)
		}
		remaining = left
	}

	credentialExpiry := now.Add(remaining)
	bearer, err := manager.codec.MintUntil(userID, sessionID, now, credentialExpiry.Add(-time.Second))
	if err != nil {
		if errors.Is(err, sec.ErrBearerWindowEmpty) {
			return sec.Bearer{}, apperr.Unauthorized()
		}
		return sec.Bearer{}, apperr.UnableCreateSession(err)
	}

	return bearer, nil
}

// credentialError collapses a store failure during refresh.
func (manager *Manager) credentialError(ctx context.Context, event string, err error) error {
	if errors.Is(err, ErrCredentialNotFound) {
		return apperr.Unauthorized()
	}
	ctxutil.GetLogger(ctx).ErrorContext(ctx, event, slog.Any("error", err))
	return apperr.Redis(err)
}

/*
RefreshSession mints a fresh bearer from the credential id alone.

Description: Backs the explicit refresh endpoint, where the browser may
already have dropped its short-lived bearer cookie.

Returns:
  - sec.Bearer: The new bearer
  - error: Unauthorized if the credential is gone, or Redis failures
*/
func (manager *Manager) RefreshSession(ctx context.Context, sessionID string) (sec.Bearer, error) {
	if sessionID == "" {
		return sec.Bearer{}, apperr.Unauthorized()
	}

	userID, err := manager.store.Lookup(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrCredentialNotFound) {
			return sec.Bearer{}, apperr.Unauthorized()
		}
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "session_lookup_failed", slog.Any("error", err))
		return sec.Bearer{}, apperr.Redis(err)
	}

	return manager.Refresh(ctx, sessionID, userID)
}

// End deletes the credential. Every bearer minted for it stops authenticating.
func (manager *Manager) End(ctx context.Context, sessionID string) error {
	if err := manager.store.Delete(ctx, sessionID); err != nil {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "session_delete_failed", slog.Any("error", err))
		return apperr.Redis(err)
	}

	metrics.SessionsEndedTotal.Inc()
	return nil
}

/*
Authenticate validates a presented pair and refreshes it when needed.

Description: This is the single entry point shared by every transport, so
a pair authenticates over cookies exactly when it does over Photon.

Returns:
  - Authentication: Principal plus the bearer the client should keep
  - error: Unauthorized on rejection, Redis or UnableCreateSession failures
*/
func (manager *Manager) Authenticate(ctx context.Context, pair Pair) (Authentication, error) {
	validation, err := manager.Validate(ctx, pair.SessionID, pair.Bearer)
	if err != nil {
		return Authentication{}, err
	}

	metrics.RecordValidation(validation.Outcome.String())

	switch validation.Outcome {
	case OutcomeValidated:
		bearer, err := manager.codec.Parse(pair.Bearer)
		if err != nil {
			return Authentication{}, apperr.Unauthorized()
		}
		return Authentication{
			Principal: sec.Principal{UserID: validation.UserID, SessionID: validation.SessionID},
			Bearer:    bearer,
		}, nil

	case OutcomeNeedsRefresh:
		bearer, err := manager.Refresh(ctx, validation.SessionID, validation.UserID)
		if err != nil {
			return Authentication{}, err
		}
		ctxutil.GetLogger(ctx).DebugContext(ctx, "session_refreshed", slog.String("user_id", validation.UserID))
		return Authentication{
			Principal: sec.Principal{UserID: validation.UserID, SessionID: validation.SessionID},
			Bearer:    bearer,
			Renewed:   true,
		}, nil

	default:
		ctxutil.GetLogger(ctx).DebugContext(ctx, "session_rejected", slog.String("reason", validation.Reason))
		return Authentication{}, apperr.Unauthorized()
	}
}
