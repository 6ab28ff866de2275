package entity

import (
	"errors"
	"fmt"
)

var ErrInvalidRole = errors.New("invalid role")

// Role is the access tag carried by every knowledge chunk and every account.
type Role string

const (
	RoleHREmployee      Role = "HR_Employee"
	RoleITTech          Role = "IT_Tech"
	RoleSalesTeam       Role = "Sales_Team"
	RoleGeneralEmployee Role = "General_Employee"
)

// Roles lists the closed set of roles in a stable order.
func Roles() []Role {
	return []Role{RoleHREmployee, RoleITTech, RoleSalesTeam, RoleGeneralEmployee}
}

func (r Role) Valid() bool {
	switch r {
	case RoleHREmployee, RoleITTech, RoleSalesTeam, RoleGeneralEmployee:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// ParseRole matches exactly; there is no case folding or hierarchy between roles.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}
