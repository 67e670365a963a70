// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/apperr"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/database/schema"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/dberr"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/sec"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Scan order follows schema.Users.Columns.
var selectUserColumns = fmt.Sprintf(`
	SELECT %s::text, %s, %s, %s, %s::text, %s, %s, %s
	FROM %s`,
	schema.Users.ID,
	schema.Users.Email,
	schema.Users.PasswordHash,
	schema.Users.Nickname,
	schema.Users.Role,
	schema.Users.IsVerified,
	schema.Users.CreatedAt,
	schema.Users.UpdatedAt,
	schema.Users.Table,
)

/*
Create persists a new user record into the users table.

Description: Initialises timestamps when absent. A unique violation on the
email or nickname is reported as UserAlreadyExists.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.UserAlreadyExists or apperr.Database
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schema.Users.Table, strings.Join(schema.Users.Columns(), ", "))

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Nickname,
		string(user.Role),
		user.IsVerified,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.UserAlreadyExists()
		}
		return dberr.Wrap(err, "postgres_user_repo_create_failed")
	}

	return nil
}

/*
FindByEmail retrieves a user record by its unique email address.

Parameters:
  - context: context.Context
  - email: string (case-folded)

Returns:
  - *User: Hydrated account entity
  - error: dberr.ErrNotFound (wrapped) or apperr.Database
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findOne(context, selectUserColumns+fmt.Sprintf(` WHERE %s = $1`, schema.Users.Email), email, "postgres_user_repo_find_by_email_failed")
}

/*
FindByID retrieves a user record by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated account entity
  - error: dberr.ErrNotFound (wrapped) or apperr.Database
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findOne(context, selectUserColumns+fmt.Sprintf(` WHERE %s = $1::uuid`, schema.Users.ID), id, "postgres_user_repo_find_by_id_failed")
}

func (repository *PostgresUserRepository) findOne(context context.Context, query, argument, action string) (*User, error) {
	user := &User{}
	var role string

	err := repository.pool.QueryRow(context, query, argument).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Nickname,
		&role,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}

	user.Role = sec.UserRole(role)
	return user, nil
}

/*
GetFunctionalRole reads only the role column.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - sec.UserRole: Stored role, unvalidated
  - error: dberr.ErrNotFound (wrapped) or apperr.Database
*/
func (repository *PostgresUserRepository) GetFunctionalRole(context context.Context, userID string) (sec.UserRole, error) {
	query := fmt.Sprintf(`SELECT %s::text FROM %s WHERE %s = $1::uuid`, schema.Users.Role, schema.Users.Table, schema.Users.ID)

	var role string
	if err := repository.pool.QueryRow(context, query, userID).Scan(&role); err != nil {
		return "", dberr.Wrap(err, "postgres_user_repo_get_role_failed")
	}

	return sec.UserRole(role), nil
}

/*
UpdatePassword replaces the password hash and bumps updated_at.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: dberr.ErrNotFound (wrapped) or apperr.Database
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1::uuid`,
		schema.Users.Table, schema.Users.PasswordHash, schema.Users.UpdatedAt, schema.Users.ID)

	tag, err := repository.pool.Exec(context, query, userID, newHash, time.Now().UTC())
	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_update_password_failed")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", dberr.ErrNotFound)
	}

	return nil
}

// # Game Repository

// PostgresGameRepository implements the GameRepository interface using pgx.
type PostgresGameRepository struct {
	pool *pgxpool.Pool
}

// NewGameRepository creates a new PostgreSQL implementation of the GameRepository.
func NewGameRepository(pool *pgxpool.Pool) *PostgresGameRepository {
	return &PostgresGameRepository{pool: pool}
}

/*
IsLive looks up a game build by its version string.

Parameters:
  - context: context.Context
  - version: string

Returns:
  - bool: The is_live flag of the build
  - error: dberr.ErrNotFound (wrapped) or apperr.Database
*/
func (repository *PostgresGameRepository) IsLive(context context.Context, version string) (bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, schema.Game.IsLive, schema.Game.Table, schema.Game.Version)

	var live bool
	if err := repository.pool.QueryRow(context, query, version).Scan(&live); err != nil {
		return false, dberr.Wrap(err, "postgres_game_repo_is_live_failed")
	}

	return live, nil
}
