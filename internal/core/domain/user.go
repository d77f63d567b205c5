package domain

import "time"

// Role is the access level of a user. Ordering matters:
// user < manager < admin.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// rank backs the role ordering used for "at least manager" gates.
var rank = map[Role]int{
	RoleUser:    1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := rank[r]
	return ok
}

// AtLeast reports whether r is equal to or above other in the role ordering.
func (r Role) AtLeast(other Role) bool {
	return rank[r] >= rank[other]
}

// AuthInfo holds the stored password credentials. The salt is generated once
// at account creation; the hash is a salted HMAC digest of the password.
// Never serialized in API responses.
type AuthInfo struct {
	Salt string
	Hash string
}

// Settings are per-user preferences. PreferredDailyHours is a pointer so an
// explicit 0 is distinguishable from "unset".
type Settings struct {
	PreferredDailyHours *float64 `json:"preferredDailyHours,omitempty"`
}

// User is an account in the system.
type User struct {
	ID        string
	Email     string
	Role      Role
	AuthInfo  AuthInfo
	Settings  Settings
	CreatedAt time.Time
	UpdatedAt time.Time
}
