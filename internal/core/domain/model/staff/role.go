package staff

import (
	"fmt"
	"strings"

	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"
)

// Role identifies what kind of work a staff member performs.
type Role int

const (
	// RoleUnknown represents an invalid or unset role.
	RoleUnknown Role = iota
	// RoleChef cooks and packs orders in the kitchen.
	RoleChef
	// RoleDriver delivers ready orders to customers.
	RoleDriver
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		RoleChef:    "chef",
		RoleDriver:  "driver",
	}
}

// ParseRole converts a string into a Role. Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == normalized {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks that the role is one of the known worker roles.
func (r Role) Validate() error {
	if r != RoleChef && r != RoleDriver {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", int(r)))
	}
	return nil
}

// String returns the wire name of the role.
func (r Role) String() string {
	if name, ok := getRoleStrings()[r]; ok {
		return name
	}
	return getRoleStrings()[RoleUnknown]
}
