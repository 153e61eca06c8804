package model

import "fmt"

// Role is the access level carried by a user and embedded in issued tokens.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
	RoleViewer    Role = "viewer"
)

// DefaultRole is assigned at registration when no role is requested.
const DefaultRole = RoleViewer

// ParseRole converts s to a Role, rejecting anything outside the enumerated set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("role must be admin, developer, or viewer, got %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDeveloper, RoleViewer:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// Policy is the set of roles allowed to perform an operation.
type Policy struct {
	name  string
	roles map[Role]struct{}
}

// NewPolicy builds a named policy allowing the given roles.
func NewPolicy(name string, roles ...Role) Policy {
	set := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return Policy{name: name, roles: set}
}

var (
	PolicyAdminOnly        = NewPolicy("admin", RoleAdmin)
	PolicyDeveloperOrAdmin = NewPolicy("developer or admin", RoleAdmin, RoleDeveloper)
)

// Allows reports whether a user with role r satisfies the policy.
func (p Policy) Allows(r Role) bool {
	_, ok := p.roles[r]
	return ok
}

func (p Policy) String() string { return p.name }
