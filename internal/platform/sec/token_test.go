// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package sec_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/sec"
)

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9]{60}$`)

/*
TestGenerateSessionID checks the alphabet, length and uniqueness of session ids.
*/
func TestGenerateSessionID(t *testing.T) {
	seen := make(map[string]struct{}, 2000)

	for i := 0; i < 2000; i++ {
		id, err := sec.GenerateSessionID()
		require.NoError(t, err)
		require.Regexp(t, sessionIDPattern, id)

		_, duplicate := seen[id]
		require.False(t, duplicate)
		seen[id] = struct{}{}
	}
}

/*
TestUserRole_Hierarchy verifies the functional role ordering.
*/
func TestUserRole_Hierarchy(t *testing.T) {
	assert.True(t, sec.RoleAdministrator.AtLeast(sec.RoleStaff))
	assert.True(t, sec.RoleStaff.AtLeast(sec.RoleUser))
	assert.False(t, sec.RoleUser.AtLeast(sec.RoleStaff))
	assert.False(t, sec.UserRole("root").Valid())
	assert.True(t, sec.UniversityRoleStudent.Valid())
	assert.False(t, sec.UniversityRole("alumni").Valid())
}
