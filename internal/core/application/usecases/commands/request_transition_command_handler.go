package commands

import (
	"context"
	"errors"
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/assignment"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/order"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/timeline"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"
)

// RequestTransitionCommandHandler drives all manual workflow edges: a chef
// completing cooking or packing, a driver claiming, delivering, or abandoning
// a pickup, and back-office failure cancellation.
//
// Each transition is one transaction: the guarded order update, the registry
// release or claim, the ledger close/open, and any queue change commit
// together. When a concurrent transition wins the guarded update, the loser
// re-reads and reports InvalidTransition with the authoritative state instead
// of corrupting the ledger.
type RequestTransitionCommandHandler struct {
	uowFactory UoWFactory
}

// NewRequestTransitionCommandHandler creates a handler for manual transitions.
func NewRequestTransitionCommandHandler(uowFactory UoWFactory) RequestTransitionCommandHandler {
	return RequestTransitionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes a manual transition request.
//
// Rejection order follows the workflow contract: a transition illegal from
// the order's current status is an InvalidTransition carrying that status; a
// legal edge the actor's role may not drive, or an owned edge driven by an
// actor not holding the assignment, is Forbidden. Neither rejection writes
// anything.
func (h RequestTransitionCommandHandler) Handle(ctx context.Context, cmd RequestTransitionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	err := h.handleOnce(ctx, cmd)

	switch {
	case errors.Is(err, errs.ErrConcurrencyConflict):
		// A concurrent transition won the guarded update. Report the
		// authoritative state the winner left behind.
		return h.reportLostRace(ctx, cmd)
	case errors.Is(err, errs.ErrConsistencyViolation):
		// The ledger and the order row disagree. Flag the order failed and
		// surface the violation; this is never retried.
		h.flagOrderFailed(ctx, cmd.TenantID(), cmd.OrderID())
		return err
	default:
		return err
	}
}

func (h RequestTransitionCommandHandler) handleOnce(ctx context.Context, cmd RequestTransitionCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.TenantID(), cmd.OrderID())
	if err != nil {
		return err
	}

	from := aggregate.Status()
	target := cmd.TargetStatus()

	if !from.CanTransitionTo(target) {
		return errs.NewInvalidTransitionError(cmd.OrderID().String(), from.String(), target.String())
	}

	if err = h.authorize(aggregate, cmd.Actor(), target); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = h.applyEdge(ctx, uow, aggregate, cmd.Actor(), target, now); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate, from); err != nil {
		return err
	}

	actor := stepActorFor(aggregate)
	if err = advanceLedger(ctx, uow.StepRepository(),
		cmd.TenantID(), cmd.OrderID(), aggregate.Status(), actor, now, cmd.Notes()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// authorize enforces the role/ownership gate for the requested edge. The edge
// is already known to be legal from the current status.
func (h RequestTransitionCommandHandler) authorize(aggregate *order.Order, actor kernel.Actor, target order.Status) error {
	from := aggregate.Status()
	action := "transition order to " + target.String()

	if target == order.Failed {
		if !actor.Role().IsBackOffice() {
			return errs.NewForbiddenError(actor.ID(), action)
		}
		return nil
	}

	switch {
	case from == order.Cooking && target == order.Packing,
		from == order.Packing && target == order.Ready:
		if actor.Role() != kernel.ActorRoleChef {
			return errs.NewForbiddenError(actor.ID(), action)
		}
		if aggregate.AssignedChef() == nil || *aggregate.AssignedChef() != actor.ID() {
			return errs.NewForbiddenError(actor.ID(), action)
		}
	case from == order.Ready && target == order.InDelivery:
		// Claimed, not assigned: any driver of the tenant may take it.
		if actor.Role() != kernel.ActorRoleDriver {
			return errs.NewForbiddenError(actor.ID(), action)
		}
	case from == order.InDelivery && (target == order.Delivered || target == order.Ready):
		if actor.Role() != kernel.ActorRoleDriver {
			return errs.NewForbiddenError(actor.ID(), action)
		}
		if aggregate.AssignedDriver() == nil || *aggregate.AssignedDriver() != actor.ID() {
			return errs.NewForbiddenError(actor.ID(), action)
		}
	default:
		// Remaining edges (confirmation, assignment matches) belong to the
		// engine, never to a manual request.
		return errs.NewForbiddenError(actor.ID(), action)
	}

	return nil
}

// applyEdge mutates the aggregate for the authorized edge and performs the
// registry and queue side effects that belong to it.
func (h RequestTransitionCommandHandler) applyEdge(
	ctx context.Context,
	uow UoW,
	aggregate *order.Order,
	actor kernel.Actor,
	target order.Status,
	now time.Time,
) error {
	from := aggregate.Status()

	if target == order.Failed {
		return h.applyFailure(ctx, uow, aggregate, now)
	}

	switch {
	case from == order.Cooking && target == order.Packing:
		return aggregate.StartPacking()

	case from == order.Packing && target == order.Ready:
		chefID := *aggregate.AssignedChef()
		if err := aggregate.MarkReady(); err != nil {
			return err
		}
		if err := h.releaseWorker(ctx, uow, aggregate, chefID, true, now); err != nil {
			return err
		}
		return h.enqueueDelivery(ctx, uow, aggregate, now)

	case from == order.Ready && target == order.InDelivery:
		return h.claimDelivery(ctx, uow, aggregate, actor)

	case from == order.InDelivery && target == order.Delivered:
		driverID := *aggregate.AssignedDriver()
		if err := aggregate.Complete(); err != nil {
			return err
		}
		return h.releaseWorker(ctx, uow, aggregate, driverID, true, now)

	case from == order.InDelivery && target == order.Ready:
		driverID := *aggregate.AssignedDriver()
		if err := aggregate.CancelPickup(); err != nil {
			return err
		}
		if err := h.releaseWorker(ctx, uow, aggregate, driverID, false, now); err != nil {
			return err
		}
		return h.enqueueDelivery(ctx, uow, aggregate, now)

	default:
		return errs.NewInvalidTransitionError(
			aggregate.ID().String(), from.String(), target.String())
	}
}

// applyFailure fails the order and releases whichever worker currently holds
// it; their busy time is recorded but the work does not count as completed.
func (h RequestTransitionCommandHandler) applyFailure(
	ctx context.Context,
	uow UoW,
	aggregate *order.Order,
	now time.Time,
) error {
	from := aggregate.Status()

	var holder string
	switch from {
	case order.Cooking, order.Packing:
		if aggregate.AssignedChef() != nil {
			holder = *aggregate.AssignedChef()
		}
	case order.InDelivery:
		if aggregate.AssignedDriver() != nil {
			holder = *aggregate.AssignedDriver()
		}
	}

	if err := aggregate.Fail(); err != nil {
		return err
	}

	if holder != "" {
		if err := h.releaseWorker(ctx, uow, aggregate, holder, false, now); err != nil {
			return err
		}
	}

	// Abandoned queue entries for this order must not match later.
	for _, category := range []assignment.Category{assignment.CategoryCooking, assignment.CategoryDelivery} {
		if err := uow.AssignmentRepository().Remove(ctx, aggregate.ID(), category); err != nil {
			return err
		}
	}

	return nil
}

// claimDelivery marks the claiming driver busy with the order and removes the
// pending delivery request so the queue cannot hand the order out again.
func (h RequestTransitionCommandHandler) claimDelivery(
	ctx context.Context,
	uow UoW,
	aggregate *order.Order,
	actor kernel.Actor,
) error {
	worker, err := uow.StaffRepository().Get(ctx, aggregate.TenantID(), actor.ID())
	if err != nil {
		return err
	}

	workerWasIn := worker.Status()
	if err = worker.Assign(aggregate.ID()); err != nil {
		return err
	}
	if err = aggregate.AssignDriver(actor.ID()); err != nil {
		return err
	}

	if err = uow.StaffRepository().Update(ctx, worker, workerWasIn); err != nil {
		return err
	}

	return uow.AssignmentRepository().Remove(ctx, aggregate.ID(), assignment.CategoryDelivery)
}

// releaseWorker returns the order's worker to available, crediting their busy
// time and, when completed, their completion counter.
func (h RequestTransitionCommandHandler) releaseWorker(
	ctx context.Context,
	uow UoW,
	aggregate *order.Order,
	workerID string,
	completed bool,
	now time.Time,
) error {
	worker, err := uow.StaffRepository().Get(ctx, aggregate.TenantID(), workerID)
	if err != nil {
		return err
	}

	busySeconds, err := heldBusySeconds(ctx, uow.StepRepository(),
		aggregate.TenantID(), aggregate.ID(), workerID, now)
	if err != nil {
		return err
	}

	workerWasIn := worker.Status()
	if err = worker.Release(busySeconds, completed); err != nil {
		return err
	}

	return uow.StaffRepository().Update(ctx, worker, workerWasIn)
}

func (h RequestTransitionCommandHandler) enqueueDelivery(
	ctx context.Context,
	uow UoW,
	aggregate *order.Order,
	now time.Time,
) error {
	request, err := assignment.NewRequest(
		aggregate.ID(), aggregate.TenantID(), assignment.CategoryDelivery, now)
	if err != nil {
		return err
	}
	return uow.AssignmentRepository().Add(ctx, request)
}

// reportLostRace re-reads the order after a guarded update found zero rows
// and reports the state the winning transition left behind.
func (h RequestTransitionCommandHandler) reportLostRace(ctx context.Context, cmd RequestTransitionCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.TenantID(), cmd.OrderID())
	if err != nil {
		return err
	}

	return errs.NewInvalidTransitionError(
		cmd.OrderID().String(), aggregate.Status().String(), cmd.TargetStatus().String())
}

// flagOrderFailed force-fails an order whose ledger is inconsistent. It runs
// the regular failure cancellation, so a worker still holding the order is
// released rather than stranded busy. Done on a best-effort basis after the
// violating transaction rolled back.
func (h RequestTransitionCommandHandler) flagOrderFailed(ctx context.Context, tenantID kernel.TenantID, orderID kernel.UUID) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, tenantID, orderID)
	if err != nil {
		return
	}

	from := aggregate.Status()
	if err = h.applyFailure(ctx, uow, aggregate, time.Now().UTC()); err != nil {
		return
	}
	if err = uow.OrderRepository().Update(ctx, aggregate, from); err != nil {
		return
	}

	_ = uow.Commit(ctx)
}

// stepActorFor names the actor responsible for the order's current status in
// the ledger: the chef through the kitchen stages, the driver in delivery,
// the engine everywhere else.
func stepActorFor(aggregate *order.Order) string {
	switch aggregate.Status() {
	case order.Cooking, order.Packing:
		if aggregate.AssignedChef() != nil {
			return *aggregate.AssignedChef()
		}
	case order.InDelivery:
		if aggregate.AssignedDriver() != nil {
			return *aggregate.AssignedDriver()
		}
	}
	return timeline.SystemActor
}
