// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

/*
Package apperr defines the centralized error handling framework for Metaversitas.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and the two client transports (browser cookies and Photon envelopes).

Architecture:

  - Kind: A closed set of canonical error kinds. Nothing else decides a status code.
  - AppError: A struct carrying a Kind, an optional client-safe message and the cause.
  - Mapping: [Web] and [Photon] translate a Kind into HTTP status / ResultCode values.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
)

// AppError is the canonical error type for the Metaversitas API.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries, Redis replies).
type AppError struct {
	// Kind selects the transport mapping.
	Kind Kind
	// Message overrides the default client message for the kind. Only
	// [KindInvalidParameters] carries one today (the validation reason).
	Message string
	// Cause is the underlying error, used for server-side logging only.
	Cause error
	// Details holds per-field validation errors.
	Details []FieldError
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.String()
}

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports kind equality so callers can write errors.Is(err, apperr.Unauthorized()).
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

// # Authentication Errors

// InvalidCredentials is returned for both an unknown email and a wrong password.
func InvalidCredentials() *AppError {
	return &AppError{Kind: KindInvalidUsernameOrPassword}
}

// Unauthorized is returned when a session pair fails validation.
func Unauthorized() *AppError {
	return &AppError{Kind: KindUnauthorized}
}

// UnknownTokenFormat is returned when a bearer cannot be read at all.
func UnknownTokenFormat() *AppError {
	return &AppError{Kind: KindUnknownTokenFormat}
}

// UserAlreadyExists is returned on registration with a taken email.
func UserAlreadyExists() *AppError {
	return &AppError{Kind: KindUserAlreadyExists}
}

// UserNotExist is returned when an authenticated user row has vanished.
func UserNotExist() *AppError {
	return &AppError{Kind: KindUserNotExist}
}

// UnableCreateSession wraps a failure while issuing a credential or bearer.
func UnableCreateSession(cause error) *AppError {
	return &AppError{Kind: KindUnableCreateSession, Cause: cause}
}

// Incomplete is the Photon "authentication incomplete" answer.
func Incomplete() *AppError {
	return &AppError{Kind: KindIncomplete}
}

// # Game Client Errors

// InvalidGameVersion is returned when no game row matches the version.
func InvalidGameVersion() *AppError {
	return &AppError{Kind: KindInvalidGameVersion}
}

// OutdatedGameVersion is returned when the matching game row is not live.
func OutdatedGameVersion() *AppError {
	return &AppError{Kind: KindOutdatedGameVersion}
}

// InvalidApiKey is returned when a Photon api key does not match.
func InvalidApiKey() *AppError {
	return &AppError{Kind: KindInvalidApiKey}
}

// # Input Errors

// InvalidParameters creates a 422 [AppError] with optional per-field details.
func InvalidParameters(msg string, details ...FieldError) *AppError {
	return &AppError{
		Kind:    KindInvalidParameters,
		Message: msg,
		Details: details,
	}
}

// # Infrastructure Errors

// Database collapses a relational store failure.
func Database(cause error) *AppError {
	return &AppError{Kind: KindDatabase, Cause: cause}
}

// Redis collapses a key-value store failure.
func Redis(cause error) *AppError {
	return &AppError{Kind: KindRedis, Cause: cause}
}

// ProfileUnavailable is returned when the profile join cannot be served.
func ProfileUnavailable(cause error) *AppError {
	return &AppError{Kind: KindProfileUnavailable, Cause: cause}
}

// Unknown wraps an unexpected server-side error.
func Unknown(cause error) *AppError {
	return &AppError{Kind: KindUnknown, Cause: cause}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// KindOf returns the kind of err, or [KindUnknown] for foreign errors.
func KindOf(err error) Kind {
	if ae := As(err); ae != nil {
		return ae.Kind
	}
	return KindUnknown
}
