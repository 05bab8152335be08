package commands

import (
	"context"
	"errors"
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/assignment"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/order"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/services"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"
)

// assignWorkMaxAttempts bounds retries when matches collide with concurrent
// transitions. A collision past this budget surfaces as ErrAssignmentConflict.
const assignWorkMaxAttempts = 3

var (
	// ErrNoRequestFound is returned when the category's queue is empty.
	ErrNoRequestFound = errors.New("no assignment request found")
	// ErrNoWorkerFound is returned when no eligible worker is available;
	// the request stays queued.
	ErrNoWorkerFound = errors.New("no available worker found")
)

// AssignWorkCommandHandler performs one matching round for a queue category.
// It pairs the oldest pending request with the worker the AssignmentMatcher
// picks, then commits the whole match atomically: order status and assignee,
// worker flipped busy, ledger step, and queue removal in one transaction.
//
// Example:
//
//	handler := NewAssignWorkCommandHandler(uowFactory)
//	cmd, _ := NewAssignWorkCommand(assignment.CategoryCooking)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoRequestFound):
//	    // queue empty, nothing to do
//	case errors.Is(err, ErrNoWorkerFound):
//	    // request stays queued until a worker reports available
//	case err != nil:
//	    // real failure
//	}
type AssignWorkCommandHandler struct {
	uowFactory UoWFactory
	matcher    services.AssignmentMatcher
}

// NewAssignWorkCommandHandler creates a handler for queue matching.
func NewAssignWorkCommandHandler(uowFactory UoWFactory) AssignWorkCommandHandler {
	return AssignWorkCommandHandler{
		uowFactory: uowFactory,
		matcher:    services.NewAssignmentMatcher(),
	}
}

// Handle runs one matching round. A match that loses the guarded order
// update to a concurrent transition is retried against fresh state, up to
// assignWorkMaxAttempts times; exhaustion returns errs.ErrAssignmentConflict.
func (h AssignWorkCommandHandler) Handle(ctx context.Context, cmd AssignWorkCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var err error
	for attempt := 0; attempt < assignWorkMaxAttempts; attempt++ {
		err = h.matchOnce(ctx, cmd.Category())
		if !errors.Is(err, errs.ErrConcurrencyConflict) {
			return err
		}
	}

	return errs.ErrAssignmentConflict
}

func (h AssignWorkCommandHandler) matchOnce(ctx context.Context, category assignment.Category) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	request, err := uow.AssignmentRepository().GetFirstPending(ctx, category)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoRequestFound
	}
	if err != nil {
		return err
	}

	aggregate, err := uow.OrderRepository().Get(ctx, request.TenantID(), request.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		// The order is gone; drop the stale request.
		return h.dropRequest(ctx, uow, request)
	}
	if err != nil {
		return err
	}

	expected := matchableStatus(category)
	if aggregate.Status() != expected {
		// The order moved on while queued (failed, or claimed directly).
		return h.dropRequest(ctx, uow, request)
	}

	workers, err := uow.StaffRepository().GetAllAvailableByRole(ctx, request.TenantID(), category.Role())
	if err != nil {
		return err
	}

	worker, err := h.matcher.Match(request, workers)
	if errors.Is(err, services.ErrWorkerNotFound) {
		return ErrNoWorkerFound
	}
	if err != nil {
		return err
	}

	workerWasIn := worker.Status()
	if err = worker.Assign(aggregate.ID()); err != nil {
		return err
	}

	switch category {
	case assignment.CategoryCooking:
		err = aggregate.AssignChef(worker.ID())
	case assignment.CategoryDelivery:
		err = aggregate.AssignDriver(worker.ID())
	}
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate, expected); err != nil {
		return err
	}
	if err = uow.StaffRepository().Update(ctx, worker, workerWasIn); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = advanceLedger(ctx, uow.StepRepository(),
		aggregate.TenantID(), aggregate.ID(), aggregate.Status(), worker.ID(), now, ""); err != nil {
		return err
	}

	if err = uow.AssignmentRepository().Remove(ctx, request.OrderID(), category); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// dropRequest removes a request whose order can no longer be matched.
func (h AssignWorkCommandHandler) dropRequest(ctx context.Context, uow UoW, request *assignment.Request) error {
	if err := uow.AssignmentRepository().Remove(ctx, request.OrderID(), request.Category()); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

// matchableStatus is the order status a request's category expects: cooking
// requests match confirmed orders, delivery requests match ready orders.
func matchableStatus(category assignment.Category) order.Status {
	if category == assignment.CategoryDelivery {
		return order.Ready
	}
	return order.Confirmed
}
