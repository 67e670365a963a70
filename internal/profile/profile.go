// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

/*
Package profile assembles the identity and university affiliation of a user.

The aggregate is read through a Redis cache ([Cache]) in front of a single
join query ([PostgresSource]). Identity mutations must call
[Cache.Invalidate] so the next read goes back to the database.
*/
package profile

import (
	"context"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/sec"
)

// # Domain Entity

// Profile is the cached aggregate. Its JSON form is the cache wire format.
type Profile struct {
	UserID           string             `json:"user_id"`
	InGameNickname   string             `json:"in_game_nickname"`
	FullName         string             `json:"full_name"`
	Gender           sec.Gender         `json:"gender"`
	UniversityID     int64              `json:"university_id"`
	UniversityName   string             `json:"university_name"`
	FacultyID        int64              `json:"faculty_id"`
	FacultyName      string             `json:"faculty_name"`
	UserUniversityID int64              `json:"user_university_id"`
	UniversityRole   sec.UniversityRole `json:"user_univ_role"`
	UserRole         sec.UserRole       `json:"user_role"`
	IsVerified       bool               `json:"is_verified"`
	PhotoKey         string             `json:"photo_key,omitempty"`

	// RoleReferenceID is the teachers or students row id selected by UniversityRole.
	RoleReferenceID string `json:"role_reference_id"`
}

// IsLecturer reports whether the university role is the lecturer role.
func (p *Profile) IsLecturer() bool {
	return p.UniversityRole == sec.UniversityRoleLecturer
}

// # Interfaces

// Source loads the aggregate from the system of record.
type Source interface {
	// Load returns the aggregate for userID, or an error wrapping
	// dberr.ErrNotFound when the identity is not fully provisioned.
	Load(context context.Context, userID string) (*Profile, error)
}
