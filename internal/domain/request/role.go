package request

import "fmt"

// Role represents an actor in the assistance workflow
type Role string

const (
	RoleUser           Role = "user"
	RoleCaseWorker     Role = "case_worker"
	RoleFinanceManager Role = "finance_manager"
	RoleAdmin          Role = "admin"
)

var validRoles = map[Role]bool{
	RoleUser:           true,
	RoleCaseWorker:     true,
	RoleFinanceManager: true,
	RoleAdmin:          true,
}

// Roles returns every role in declaration order
func Roles() []Role {
	return []Role{RoleUser, RoleCaseWorker, RoleFinanceManager, RoleAdmin}
}

// ParseRole converts a raw string into a Role
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("unknown role: %q", s)
	}
	return role, nil
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// IsValid returns true if the role is a member of the catalog
func (r Role) IsValid() bool {
	return validRoles[r]
}
