package domain

import "time"

// Role is the closed set of principal roles. MANAGER and ADMIN are scoped
// to exactly one club through the principal's first affiliation.
type Role string

const (
	RoleMember  Role = "MEMBER"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

func (r Role) IsManagerial() bool {
	return r == RoleManager || r == RoleAdmin
}

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Principal is the per-request snapshot consumed by the authorization
// evaluator and the admission controller. It is resolved fresh on every
// call; nothing here is cached across requests.
type Principal struct {
	ID      uint
	Role    Role
	Enabled bool

	// ManagedClubID is the club a MANAGER/ADMIN principal manages, taken
	// from the first affiliation. Zero when the principal has none, in
	// which case every manager-scoped check fails closed.
	ManagedClubID uint
}

// Affiliation records membership of a user in a club.
type Affiliation struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	ClubID    uint      `json:"club_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Membership is the answer to "is P affiliated with C, and as what" in a
// single lookup.
type Membership struct {
	Affiliated bool
	Role       Role
}
