// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (KDF, bearer signing, session
// id entropy) from the domain logic. Services receive these primitives through
// their constructors and never touch the underlying libraries directly.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultBearerLifetime is how long a freshly minted bearer stays current.
const DefaultBearerLifetime = 10 * time.Minute

// ErrUnknownTokenFormat is returned when a bearer fails signature, structure
// or required-claim checks. Temporal expiry is NOT a format error.
var ErrUnknownTokenFormat = errors.New("sec: unknown token format")

// ErrBearerWindowEmpty is returned by [BearerCodec.MintUntil] when the
// requested expiry is not after the issue time.
var ErrBearerWindowEmpty = errors.New("sec: bearer expiry must follow issue time")

// BearerClaims is the payload signed into every bearer.
//
// Only sub, sid, iat and exp are emitted so the token stays small enough for
// a cookie and for the Photon auth_cookie string.
type BearerClaims struct {
	jwt.RegisteredClaims

	// SessionID binds the bearer to exactly one credential.
	SessionID string `json:"sid"`
}

// Bearer is a minted token together with the values it encodes.
type Bearer struct {
	Token     string
	UserID    string
	SessionID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the bearer is no longer current at now.
func (bearer Bearer) Expired(now time.Time) bool {
	return !bearer.ExpiresAt.After(now)
}

// BearerCodec signs and parses bearers with a single HS256 secret.
type BearerCodec struct {
	secret   []byte
	lifetime time.Duration
	parser   *jwt.Parser
}

// NewBearerCodec creates a codec. A zero lifetime selects [DefaultBearerLifetime].
func NewBearerCodec(secret string, lifetime time.Duration) (*BearerCodec, error) {
	if secret == "" {
		return nil, errors.New("sec: bearer secret must not be empty")
	}
	if lifetime <= 0 {
		lifetime = DefaultBearerLifetime
	}

	return &BearerCodec{
		secret:   []byte(secret),
		lifetime: lifetime,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			// Expiry is evaluated by the session manager, not here.
			jwt.WithoutClaimsValidation(),
		),
	}, nil
}

// Lifetime returns the configured bearer lifetime.
func (codec *BearerCodec) Lifetime() time.Duration {
	return codec.lifetime
}

// Mint signs a bearer for the given pair, valid from issuedAt for the codec lifetime.
func (codec *BearerCodec) Mint(userID, sessionID string, issuedAt time.Time) (Bearer, error) {
	return codec.MintUntil(userID, sessionID, issuedAt, issuedAt.Add(codec.lifetime))
}

// MintUntil signs a bearer expiring at the earlier of expiresAt and the end
// of the codec lifetime. Both instants are truncated to whole seconds.
func (codec *BearerCodec) MintUntil(userID, sessionID string, issuedAt, expiresAt time.Time) (Bearer, error) {
	issuedAt = issuedAt.Truncate(time.Second)
	expiresAt = expiresAt.Truncate(time.Second)
	if limit := issuedAt.Add(codec.lifetime); expiresAt.After(limit) {
		expiresAt = limit
	}
	if !expiresAt.After(issuedAt) {
		return Bearer{}, ErrBearerWindowEmpty
	}

	claims := BearerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		SessionID: sessionID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(codec.secret)
	if err != nil {
		return Bearer{}, fmt.Errorf("sec: failed to sign bearer: %w", err)
	}

	return Bearer{
		Token:     token,
		UserID:    userID,
		SessionID: sessionID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse verifies the signature and required claims of token.
//
// A token whose exp lies in the past still parses successfully.
func (codec *BearerCodec) Parse(token string) (Bearer, error) {
	claims := &BearerClaims{}

	_, err := codec.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return codec.secret, nil
	})
	if err != nil {
		return Bearer{}, fmt.Errorf("%w: %v", ErrUnknownTokenFormat, err)
	}

	// ── Required claims ──────────────────────────────────────────────────
	if claims.Subject == "" || claims.SessionID == "" || claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return Bearer{}, fmt.Errorf("%w: missing required claim", ErrUnknownTokenFormat)
	}

	return Bearer{
		Token:     token,
		UserID:    claims.Subject,
		SessionID: claims.SessionID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
