// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package profile

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/dberr"
)

// PostgresSource implements [Source] with one join across the identity tables.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource creates a new PostgreSQL profile source.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// Inner joins: a user without identity or university affiliation yields no row.
const loadProfileQuery = `
	SELECT
		u.user_id::text,
		u.nickname,
		u.is_verified,
		u.role::text,
		identity.full_name,
		identity.gender::text,
		COALESCE(identity.photo_url, ''),
		university.university_id,
		university.name,
		faculty.faculty_id,
		faculty.faculty_name,
		affiliation.users_university_id,
		affiliation.users_university_role::text,
		COALESCE(
			CASE affiliation.users_university_role
				WHEN 'dosen'     THEN teachers.teacher_id::text
				WHEN 'mahasiswa' THEN students.student_id::text
			END, '')
	FROM users u
	INNER JOIN users_identity identity               ON identity.users_id = u.user_id
	INNER JOIN users_university_identity affiliation ON affiliation.users_identity_id = identity.users_identity_id
	INNER JOIN university                            ON university.university_id = affiliation.university_id
	INNER JOIN university_faculty faculty            ON faculty.faculty_id = affiliation.faculty_id
	LEFT JOIN teachers ON teachers.user_id = u.user_id AND affiliation.users_university_role = 'dosen'
	LEFT JOIN students ON students.user_id = u.user_id AND affiliation.users_university_role = 'mahasiswa'
	WHERE u.user_id = $1::uuid`

/*
Load runs the profile join for a single user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Profile: Hydrated aggregate
  - error: dberr.ErrNotFound (wrapped) or apperr.Database
*/
func (repository *PostgresSource) Load(context context.Context, userID string) (*Profile, error) {
	p := &Profile{}

	err := repository.pool.QueryRow(context, loadProfileQuery, userID).Scan(
		&p.UserID,
		&p.InGameNickname,
		&p.IsVerified,
		&p.UserRole,
		&p.FullName,
		&p.Gender,
		&p.PhotoKey,
		&p.UniversityID,
		&p.UniversityName,
		&p.FacultyID,
		&p.FacultyName,
		&p.UserUniversityID,
		&p.UniversityRole,
		&p.RoleReferenceID,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_profile_load_failed")
	}

	return p, nil
}
