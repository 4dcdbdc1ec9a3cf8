package domain

import "time"

// Role names a position in the certification programme hierarchy.
type Role string

const (
	RoleSysadmin     Role = "sysadmin"
	RoleProgramOwner Role = "programOwner"
	RoleOperations   Role = "operations"
)

var roleLevels = map[Role]int{
	RoleSysadmin:     3,
	RoleProgramOwner: 2,
	RoleOperations:   1,
}

// Level returns the hierarchy level of the role. Unknown roles map to 0,
// which never satisfies a minimum-role requirement.
func (r Role) Level() int {
	return roleLevels[r]
}

// Valid reports whether the role belongs to the closed role set.
func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// RoleNames lists every defined role name.
func RoleNames() []string {
	return []string{string(RoleSysadmin), string(RoleProgramOwner), string(RoleOperations)}
}

// Identity is the caller identity extracted from the transport token.
// RoleClaim is empty when the token carries no role claim.
type Identity struct {
	UID       string
	Email     string
	RoleClaim string
}

// UserContext is the request-scoped authenticated caller. It is only ever
// produced for active accounts with a valid role.
type UserContext struct {
	UserID      string
	Email       string
	Role        Role
	DisplayName string
	Active      bool
}

// UserProfile mirrors the persisted representation in the users table.
type UserProfile struct {
	ID          string
	Email       string
	DisplayName string
	Role        Role
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
