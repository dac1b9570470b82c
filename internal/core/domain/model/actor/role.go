package actor

import (
	"fmt"

	"procurement/internal/pkg/errs"
)

// Role classifies the acting user for role-gated operations. Roles come from
// the external identity provider; the domain only interprets them.
type Role int

const (
	// UnknownRole catches uninitialized Role values.
	UnknownRole Role = iota

	// Staff performs day-to-day work: status moves and checklist completions.
	Staff

	// Manager additionally controls assignment, priority, and QA checks.
	Manager

	// Admin holds every permission a manager holds.
	Admin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "unknown",
		Staff:       "staff",
		Manager:     "manager",
		Admin:       "admin",
	}
}

func getValidRoleStrings() map[string]Role {
	return map[string]Role{
		"staff":   Staff,
		"manager": Manager,
		"admin":   Admin,
	}
}

// RoleFromString parses the wire representation supplied by the identity
// provider. Returns a validation error for anything outside the three roles.
func RoleFromString(s string) (Role, error) {
	role, ok := getValidRoleStrings()[s]
	if !ok {
		return UnknownRole, errs.NewValueIsInvalidErrorWithCause(
			"role", fmt.Errorf("%q is not a valid role", s))
	}
	return role, nil
}

// Validate checks the Role is one of staff, manager, admin.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok || r == UnknownRole {
		return errs.NewValueIsInvalidErrorWithCause(
			"role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name of the role.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// CanManageOrders reports whether the role may assign orders and change
// priorities. Staff cannot.
func (r Role) CanManageOrders() bool {
	return r == Manager || r == Admin
}

// CanQACheck reports whether the role may record QA verification of a
// checklist step. The QA permission follows the management roles.
func (r Role) CanQACheck() bool {
	return r == Manager || r == Admin
}
