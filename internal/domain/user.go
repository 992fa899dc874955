package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the single role a user holds. There is no role hierarchy in the
// schema; overlapping permissions are expressed through capabilities.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleVoter       Role = "voter"
	RoleAdmin       Role = "admin"
)

// Capability is a named permission a role may hold.
type Capability string

const (
	CapabilityVote     Capability = "vote"
	CapabilitySubmit   Capability = "submit"
	CapabilityComment  Capability = "comment"
	CapabilityModerate Capability = "moderate"
)

// roleCapabilities is the static capability table. Participants and admins
// hold everything a voter holds; only admins moderate.
var roleCapabilities = map[Role]map[Capability]bool{
	RoleParticipant: {
		CapabilityVote:    true,
		CapabilitySubmit:  true,
		CapabilityComment: true,
	},
	RoleVoter: {
		CapabilityVote:    true,
		CapabilityComment: true,
	},
	RoleAdmin: {
		CapabilityVote:     true,
		CapabilitySubmit:   true,
		CapabilityComment:  true,
		CapabilityModerate: true,
	},
}

// Has reports whether the role holds the given capability. Unknown roles hold
// nothing.
func (r Role) Has(c Capability) bool {
	return roleCapabilities[r][c]
}

// Registerable reports whether the role may be chosen at registration.
// Admin accounts only come from seed data.
func (r Role) Registerable() bool {
	return r == RoleParticipant || r == RoleVoter
}

// User represents a registered account,
// corresponds to the users table.
type User struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	Username       string    `json:"username" db:"username"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	Role           Role      `json:"role" db:"role"`
	Bio            string    `json:"bio" db:"bio"`
	ProfilePicture string    `json:"profile_picture" db:"profile_picture"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
