// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/sec"
)

func newCodec(t *testing.T) *sec.BearerCodec {
	t.Helper()
	codec, err := sec.NewBearerCodec("test-secret", 10*time.Minute)
	require.NoError(t, err)
	return codec
}

/*
TestBearerCodec_RoundTrip verifies that minted claims survive parsing.
*/
func TestBearerCodec_RoundTrip(t *testing.T) {
	codec := newCodec(t)
	issuedAt := time.Now()

	bearer, err := codec.Mint("user-1", "session-1", issuedAt)
	require.NoError(t, err)

	parsed, err := codec.Parse(bearer.Token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", parsed.UserID)
	assert.Equal(t, "session-1", parsed.SessionID)
	assert.Equal(t, issuedAt.Unix(), parsed.IssuedAt.Unix())
	assert.Equal(t, issuedAt.Add(10*time.Minute).Unix(), parsed.ExpiresAt.Unix())
	assert.True(t, bearer.ExpiresAt.Equal(parsed.ExpiresAt))
}

/*
TestBearerCodec_ExpiredStillParses ensures temporal expiry is left to the caller.
*/
func TestBearerCodec_ExpiredStillParses(t *testing.T) {
	codec := newCodec(t)

	bearer, err := codec.Mint("user-1", "session-1", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	parsed, err := codec.Parse(bearer.Token)
	require.NoError(t, err)
	assert.True(t, parsed.Expired(time.Now()))
}

/*
TestBearerCodec_Rejects covers signature, structure and claim failures.
*/
func TestBearerCodec_Rejects(t *testing.T) {
	codec := newCodec(t)
	other, err := sec.NewBearerCodec("another-secret", time.Minute)
	require.NoError(t, err)

	foreign, err := other.Mint("user-1", "session-1", time.Now())
	require.NoError(t, err)

	good, err := codec.Mint("user-1", "session-1", time.Now())
	require.NoError(t, err)
	segments := strings.Split(good.Token, ".")
	tampered := segments[0] + "." + segments[1] + "x." + segments[2]

	noSession, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "user-1",
		"sid": "session-1",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"wrong_secret", foreign.Token},
		{"tampered_payload", tampered},
		{"missing_sid", noSession},
		{"alg_none", unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Parse(tt.token)
			assert.ErrorIs(t, err, sec.ErrUnknownTokenFormat)
		})
	}
}

/*
TestNewBearerCodec_Defaults checks constructor validation.
*/
func TestNewBearerCodec_Defaults(t *testing.T) {
	_, err := sec.NewBearerCodec("", time.Minute)
	assert.Error(t, err)

	codec, err := sec.NewBearerCodec("secret", 0)
	require.NoError(t, err)
	assert.Equal(t, sec.DefaultBearerLifetime, codec.Lifetime())
}

/*
TestBearerCodec_MintUntil caps expiry at the requested instant but never
beyond the codec lifetime, and refuses an empty window.
*/
func TestBearerCodec_MintUntil(t *testing.T) {
	codec := newCodec(t)
	issuedAt := time.Date(2026, 3, 1, 9, 55, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      time.Time
	}{
		{"capped by request", issuedAt.Add(4*time.Minute + 59*time.Second + 700*time.Millisecond), issuedAt.Add(4*time.Minute + 59*time.Second)},
		{"capped by lifetime", issuedAt.Add(time.Hour), issuedAt.Add(10 * time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bearer, err := codec.MintUntil("user-1", "session-1", issuedAt, tt.expiresAt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, bearer.ExpiresAt)

			parsed, err := codec.Parse(bearer.Token)
			require.NoError(t, err)
			assert.True(t, parsed.ExpiresAt.Equal(tt.want))
		})
	}

	t.Run("empty window", func(t *testing.T) {
		_, err := codec.MintUntil("user-1", "session-1", issuedAt, issuedAt.Add(500*time.Millisecond))
		assert.ErrorIs(t, err, sec.ErrBearerWindowEmpty)
	})
}
