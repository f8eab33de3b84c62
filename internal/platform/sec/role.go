// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level carried by an access token.
type UserRole string

const (
	// Structural changes: regions and layouts
	RoleAdmin UserRole = "admin"

	// Can place and remove components on layouts and pages
	RoleModerator UserRole = "moderator"

	// Read-only access to the API
	RoleMember UserRole = "member"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	return r.level() > 0
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 40
	case RoleModerator:
		return 30
	case RoleMember:
		return 10
	default:
		return 0
	}
}
