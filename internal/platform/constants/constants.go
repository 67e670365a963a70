// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, cookie names and key prefixes that are
shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Session Transport: Cookie names and lifetimes.
  - Key Taxonomy: Redis key prefixes.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "metaversitas-api"
	AppVersion = "2.0.0"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 15 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 10 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 10 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Session Transport

const (
	// CookieSession carries the credential id.
	CookieSession = "session_token"

	// CookieBearer carries "Bearer <token>".
	CookieBearer = "Authorization"

	// BearerPrefix precedes the token in the bearer cookie and the Photon payload.
	BearerPrefix = "Bearer "

	// BearerCookieMaxAge is shorter than the bearer lifetime so browsers drop
	// the cookie before the token itself lapses.
	BearerCookieMaxAge = 5 * time.Minute

	// DefaultSessionLifetime is the credential TTL when none is configured.
	DefaultSessionLifetime = time.Hour
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldSuccess = "success"
)

// # Redis Prefixes (Key Taxonomy)

const (
	RedisPrefixSession     = "session:"
	RedisPrefixProfile     = "profile:"
	RedisPrefixGameVersion = "game_version:"
)
