package kernel

import (
	"fmt"
	"strings"

	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"
)

// ActorRole is the validated role claim attached to an incoming request.
// The outer authentication layer establishes it; the core only consumes it.
type ActorRole string

const (
	// ActorRoleCustomer places orders and sees only their own.
	ActorRoleCustomer ActorRole = "customer"
	// ActorRoleChef cooks and packs orders.
	ActorRoleChef ActorRole = "chef"
	// ActorRoleDriver delivers ready orders.
	ActorRoleDriver ActorRole = "driver"
	// ActorRoleStaff is back-office staff with tenant-wide visibility.
	ActorRoleStaff ActorRole = "staff"
	// ActorRoleAdmin is a tenant administrator.
	ActorRoleAdmin ActorRole = "admin"
)

// ParseActorRole converts a string into an ActorRole. Matching is case-insensitive.
func ParseActorRole(s string) (ActorRole, error) {
	role := ActorRole(strings.ToLower(strings.TrimSpace(s)))
	if err := role.Validate(); err != nil {
		return "", err
	}
	return role, nil
}

// Validate checks that the role is one of the known actor roles.
func (r ActorRole) Validate() error {
	switch r {
	case ActorRoleCustomer, ActorRoleChef, ActorRoleDriver, ActorRoleStaff, ActorRoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid actor role", string(r)))
	}
}

// String returns the wire name of the role.
func (r ActorRole) String() string {
	return string(r)
}

// IsBackOffice reports whether the role carries tenant-wide staff privileges.
func (r ActorRole) IsBackOffice() bool {
	return r == ActorRoleStaff || r == ActorRoleAdmin
}

// Actor is the validated identity of a request: who is acting and in what
// role. The tenant is carried separately because every operation is already
// tenant-scoped.
type Actor struct {
	id   string
	role ActorRole
}

// NewActor creates a validated actor identity.
func NewActor(id string, role ActorRole) (Actor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Actor{}, errs.NewValueIsRequiredError("actor ID")
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// ID returns the actor identifier.
func (a Actor) ID() string {
	return a.id
}

// Role returns the actor's role claim.
func (a Actor) Role() ActorRole {
	return a.role
}

// Validate checks that the Actor was created through NewActor.
func (a Actor) Validate() error {
	if a.id == "" {
		return errs.NewValueIsRequiredError("actor must be created via NewActor")
	}
	return a.role.Validate()
}
