package commands

import (
	"context"
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/assignment"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/order"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/timeline"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// A new order is confirmed in the same transaction it is created in: it is
// written in pending, immediately advanced to confirmed, its first two ledger
// steps are recorded, and a cooking request enters the assignment queue.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires a UoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory UoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order placement command.
// On success the order is stored in confirmed status with a closed pending
// step and an open confirmed step in its ledger, and a cooking assignment
// request is queued. Everything commits or rolls back together.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	items := make([]order.Item, 0, len(cmd.Items()))
	for _, line := range cmd.Items() {
		item, err := order.NewItem(line.SKU, line.Name, line.Quantity, line.UnitPrice)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	now := time.Now().UTC()
	aggregate, err := order.NewOrder(
		cmd.OrderID(), cmd.TenantID(), cmd.CustomerID(), items,
		cmd.DeliveryAddress(), cmd.DeliveryInstructions(), now,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	pendingStep, err := timeline.NewWorkflowStep(
		aggregate.ID(), aggregate.TenantID(), 1, order.Pending, timeline.SystemActor, now, "")
	if err != nil {
		return err
	}
	if err = pendingStep.Close(now); err != nil {
		return err
	}
	if err = uow.StepRepository().Add(ctx, pendingStep); err != nil {
		return err
	}

	if err = aggregate.Confirm(); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, aggregate, order.Pending); err != nil {
		return err
	}

	confirmedStep, err := timeline.NewWorkflowStep(
		aggregate.ID(), aggregate.TenantID(), 2, order.Confirmed, timeline.SystemActor, now, "")
	if err != nil {
		return err
	}
	if err = uow.StepRepository().Add(ctx, confirmedStep); err != nil {
		return err
	}

	request, err := assignment.NewRequest(
		aggregate.ID(), aggregate.TenantID(), assignment.CategoryCooking, now)
	if err != nil {
		return err
	}
	if err = uow.AssignmentRepository().Add(ctx, request); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
