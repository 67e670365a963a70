// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package sec

// # Functional Roles

// UserRole is the platform-level authorization role stored on the user row.
type UserRole string

const (
	// Unrestricted system access
	RoleAdministrator UserRole = "administrator"

	// University staff operating classrooms and subjects
	RoleStaff UserRole = "staff"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// Valid reports whether r is one of the declared functional roles.
func (r UserRole) Valid() bool {
	return r.level() > 0
}

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

func (r UserRole) level() int {
	switch r {
	case RoleAdministrator:
		return 30
	case RoleStaff:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}

// # University Roles

// UniversityRole is the academic affiliation of a profile.
type UniversityRole string

const (
	// UniversityRoleLecturer is stored as "dosen".
	UniversityRoleLecturer UniversityRole = "dosen"

	// UniversityRoleStudent is stored as "mahasiswa".
	UniversityRoleStudent UniversityRole = "mahasiswa"
)

// Valid reports whether r is a known university role.
func (r UniversityRole) Valid() bool {
	return r == UniversityRoleLecturer || r == UniversityRoleStudent
}

// # Gender

// Gender mirrors the user_gender enum.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)
