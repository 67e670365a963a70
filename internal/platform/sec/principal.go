// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package sec

// Principal identifies an authenticated request.
type Principal struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"-"`
}

// RolePrincipal is a [Principal] enriched with both role dimensions.
type RolePrincipal struct {
	Principal
	FunctionalRole UserRole       `json:"functional_role"`
	UniversityRole UniversityRole `json:"university_role"`
}
