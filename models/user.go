package models

// Role is the account privilege level. The three roles form a strict
// total order: participant < admin < super_admin.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleAdmin       Role = "admin"
	RoleSuperAdmin  Role = "super_admin"
)

var roleRank = map[Role]int{
	RoleParticipant: 1,
	RoleAdmin:       2,
	RoleSuperAdmin:  3,
}

// Rank returns the position of the role in the hierarchy, 0 for an
// unknown role. All role comparisons in the codebase go through here.
func (r Role) Rank() int {
	return roleRank[r]
}

func (r Role) Valid() bool {
	return roleRank[r] != 0
}

type User struct {
	ID                int    `json:"id"`
	FullName          string `json:"full_name"`
	EfootballUsername string `json:"efootball_username"`
	Role              Role   `json:"role"`
	IsParticipant     bool   `json:"is_participant"`
	AvatarURL         string `json:"avatar_url,omitempty"`
}

// ProfileUpdate carries a partial update for PATCH /users/me. Nil fields
// are left untouched by the backend.
type ProfileUpdate struct {
	FullName          *string `json:"full_name,omitempty"`
	EfootballUsername *string `json:"efootball_username,omitempty"`
	AvatarURL         *string `json:"avatar_url,omitempty"`
}
