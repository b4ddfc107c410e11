package domain

import "time"

// Role is one of the fixed principal roles.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleQCManager Role = "QC Manager"
	RoleQCAnalyst Role = "QC Analyst"
	RoleAuditor   Role = "Auditor"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleAdmin, RoleQCManager, RoleQCAnalyst, RoleAuditor}

// Valid reports whether r belongs to the fixed role enumeration.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User models an authenticated principal. Users are never deleted, only
// deactivated.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actor identifies who performs an action and where the request came from.
// It is what the core records in audit entries.
type Actor struct {
	UserID   string
	Username string
	FullName string
	Role     Role
	Active   bool
	Origin   string
}

// ActorFrom builds an Actor for u. origin is the caller's network address and
// may be empty.
func ActorFrom(u *User, origin string) Actor {
	return Actor{
		UserID:   u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
		Active:   u.IsActive,
		Origin:   origin,
	}
}

// Can reports whether the actor may perform action.
func (a Actor) Can(action Action) bool {
	return Authorize(a.Role, a.Active, action) == Allow
}
