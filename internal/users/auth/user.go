// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

/*
Package auth implements account registration, login and the /auth endpoints.

It defines the account entity, the game version gate applied to game client
logins, and the login orchestration that ends in a session issued over
either browser cookies or the Photon envelope.

# Architecture

This layer owns credentials, never sessions: once a password is verified it
hands off to the session manager and one of the two transport adapters.
*/
package auth

import (
	"time"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account.
type User struct {
	ID           string       `json:"user_id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Nickname     string       `json:"nickname"`
	Role         sec.UserRole `json:"role"`
	IsVerified   bool         `json:"is_verified"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// RegisteredUser is the public view returned after registration.
type RegisteredUser struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	IsVerified bool   `json:"is_verified"`
}

// LoggedInUser is the public view returned by a browser login.
type LoggedInUser struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

// # Transport Formats

// Format selects how a login result is delivered.
type Format string

const (
	// FormatWeb sets browser cookies.
	FormatWeb Format = "web"
	// FormatPhoton answers with a Photon custom-auth envelope.
	FormatPhoton Format = "photon"
)

// # Field Identifiers

const (
	FieldUser            = "user"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldNickname        = "nickname"
	FieldFormat          = "format"
	FieldGameVersion     = "game_version"
	FieldApiKey          = "api_key"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
)
