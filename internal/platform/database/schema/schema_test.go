// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/database/schema"
)

/*
TestColumns keeps the column order the INSERT and SELECT statements rely on.
*/
func TestColumns(t *testing.T) {
	assert.Equal(t, []string{
		"user_id", "email", "password_hash", "nickname", "role", "is_verified", "created_at", "updated_at",
	}, schema.Users.Columns())

	assert.Equal(t, []string{"users_identity_id", "users_id", "full_name", "gender", "photo_url"}, schema.UsersIdentity.Columns())
	assert.Equal(t, []string{"game_id", "version", "is_live"}, schema.Game.Columns())
}
