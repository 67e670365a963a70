// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

// Package schema names the tables and columns the repositories query.
package schema

// UsersTable represents the 'users' table
type UsersTable struct {
	Table        string
	ID           string
	Email        string
	PasswordHash string
	Nickname     string
	Role         string
	IsVerified   string
	CreatedAt    string
	UpdatedAt    string
}

// Users is the schema definition for users
var Users = UsersTable{
	Table:        "users",
	ID:           "user_id",
	Email:        "email",
	PasswordHash: "password_hash",
	Nickname:     "nickname",
	Role:         "role",
	IsVerified:   "is_verified",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}

// Columns returns all standard column names
func (t UsersTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.PasswordHash, t.Nickname, t.Role, t.IsVerified, t.CreatedAt, t.UpdatedAt,
	}
}

// UsersIdentityTable represents the 'users_identity' table
type UsersIdentityTable struct {
	Table    string
	ID       string
	UserID   string
	FullName string
	Gender   string
	PhotoURL string
}

// UsersIdentity is the schema definition for users_identity
var UsersIdentity = UsersIdentityTable{
	Table:    "users_identity",
	ID:       "users_identity_id",
	UserID:   "users_id",
	FullName: "full_name",
	Gender:   "gender",
	// photo_url stores the object key, not a URL.
	PhotoURL: "photo_url",
}

// Columns returns all standard column names
func (t UsersIdentityTable) Columns() []string {
	return []string{t.ID, t.UserID, t.FullName, t.Gender, t.PhotoURL}
}
