package commands

import (
	"errors"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/order"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/guard"
)

var ErrRequestTransitionCommandIsNotConstructed = errors.New(
	"RequestTransitionCommand must be created via NewRequestTransitionCommand constructor",
)

// RequestTransitionCommand represents an actor's explicit request to move an
// order to a target status. This is the sole manual entry point into the
// workflow; every edge it can drive is gated by the actor's role and, for
// owned stages, by holding the assignment.
//
// Example:
//
//	actor, _ := kernel.NewActor("chef@200millas", kernel.ActorRoleChef)
//	cmd, err := NewRequestTransitionCommand(tenant, orderID, actor, order.Packing, "")
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // errs.ErrInvalidTransition carries the authoritative current state
//	    return err
//	}
type RequestTransitionCommand struct { //nolint:recvcheck //using for validation
	tenantID     kernel.TenantID
	orderID      kernel.UUID
	actor        kernel.Actor
	targetStatus order.Status
	notes        string

	guard guard.ConstructorGuard
}

// NewRequestTransitionCommand creates a validated transition request.
func NewRequestTransitionCommand(
	tenantID kernel.TenantID,
	orderID kernel.UUID,
	actor kernel.Actor,
	targetStatus order.Status,
	notes string,
) (RequestTransitionCommand, error) {
	command := RequestTransitionCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTenantID(tenantID),
		command.setOrderID(orderID),
		command.setActor(actor),
		command.setTargetStatus(targetStatus),
	); err != nil {
		return RequestTransitionCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestTransitionCommand) Validate() error {
	return c.guard.Validate(ErrRequestTransitionCommandIsNotConstructed)
}

// TenantID returns the tenant the order belongs to.
func (c RequestTransitionCommand) TenantID() kernel.TenantID {
	return c.tenantID
}

// OrderID returns the order to transition.
func (c RequestTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the requesting identity.
func (c RequestTransitionCommand) Actor() kernel.Actor {
	return c.actor
}

// TargetStatus returns the requested status.
func (c RequestTransitionCommand) TargetStatus() order.Status {
	return c.targetStatus
}

// Notes returns the optional annotation to record on the ledger.
func (c RequestTransitionCommand) Notes() string {
	return c.notes
}

func (c *RequestTransitionCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *RequestTransitionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RequestTransitionCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *RequestTransitionCommand) setTargetStatus(targetStatus order.Status) error {
	if err := targetStatus.Validate(); err != nil {
		return err
	}

	c.targetStatus = targetStatus
	return nil
}
