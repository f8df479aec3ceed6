// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// UserRole is the authorization level stored on an account and carried in
// the access token.
type UserRole string

const (
	// RoleMember uploads photos, follows creators, votes and swipes.
	RoleMember UserRole = "member"

	// RoleModerator may additionally hide and restore photos and close reports.
	RoleModerator UserRole = "moderator"

	// RoleAdmin may additionally grant subscriptions and purchases and ban members.
	RoleAdmin UserRole = "admin"
)

// roleRank orders roles; unknown roles rank zero and pass no check.
var roleRank = map[UserRole]int{
	RoleMember:    1,
	RoleModerator: 2,
	RoleAdmin:     3,
}

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	return roleRank[r] > 0
}

// AtLeast reports whether r grants everything target grants.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.Valid() && roleRank[r] >= roleRank[target]
}
