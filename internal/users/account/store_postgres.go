// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

/*
Package account (Postgres) implements the storage layer for personal identity.

# Schema Table Mapping
  - users_identity: full name, gender and the stored photo key of a user.
*/
package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/database/schema"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/dberr"
)

// # Repository Implementations

// PostgresIdentityRepository implements [IdentityRepository] using pgx.
type PostgresIdentityRepository struct {
	pool *pgxpool.Pool
}

// NewIdentityRepository creates a new Postgres implementation for identity edits.
func NewIdentityRepository(pool *pgxpool.Pool) *PostgresIdentityRepository {
	return &PostgresIdentityRepository{pool: pool}
}

// COALESCE keeps the stored value for every NULL parameter.
var updateIdentityQuery = fmt.Sprintf(`
	UPDATE %[1]s
	SET %[2]s = COALESCE($2, %[2]s),
	    %[3]s = COALESCE($3::user_gender, %[3]s),
	    %[4]s = COALESCE($4, %[4]s)
	WHERE %[5]s = $1::uuid`,
	schema.UsersIdentity.Table,
	schema.UsersIdentity.FullName,
	schema.UsersIdentity.Gender,
	schema.UsersIdentity.PhotoURL,
	schema.UsersIdentity.UserID,
)

/*
UpdateIdentity applies a partial change to the users_identity row.

Parameters:
  - context: context.Context
  - userID: string (UUID)
  - update: IdentityUpdate

Returns:
  - error: dberr.ErrNotFound (wrapped) or apperr.Database
*/
func (repository *PostgresIdentityRepository) UpdateIdentity(context context.Context, userID string, update IdentityUpdate) error {
	var gender *string
	if update.Gender != nil {
		value := string(*update.Gender)
		gender = &value
	}

	tag, err := repository.pool.Exec(context, updateIdentityQuery, userID, update.FullName, gender, update.PhotoKey)
	if err != nil {
		return dberr.Wrap(err, "postgres_identity_update_failed")
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("postgres_identity_update_failed: %w", dberr.ErrNotFound)
	}

	return nil
}
