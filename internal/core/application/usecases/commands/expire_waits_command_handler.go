package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/assignment"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/order"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/timeline"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"
)

// ExpireWaitsCommandHandler sweeps the bounded wait timers.
//
// Orders that sat in cooking or packing past the configured wait are advanced
// by the engine with the same guarded update a manual completion uses, so a
// sweep firing concurrently with a manual completion is a no-op for the loser
// rather than a double transition. The pickup window is deliberately
// different: an order stuck in ready past it is only logged, never advanced,
// because delivery is claimed by a driver rather than forced onto one.
type ExpireWaitsCommandHandler struct {
	uowFactory UoWFactory
	cookWait   time.Duration
	packWait   time.Duration
	pickupWait time.Duration
	logger     *slog.Logger
}

// NewExpireWaitsCommandHandler creates a handler for wait expiry sweeps with
// the tenant-independent wait durations.
func NewExpireWaitsCommandHandler(
	uowFactory UoWFactory,
	cookWait, packWait, pickupWait time.Duration,
	logger *slog.Logger,
) ExpireWaitsCommandHandler {
	return ExpireWaitsCommandHandler{
		uowFactory: uowFactory,
		cookWait:   cookWait,
		packWait:   packWait,
		pickupWait: pickupWait,
		logger:     logger,
	}
}

// Handle runs one sweep over all three timed stages. Individual orders fail
// independently; one broken order does not stall the sweep.
func (h ExpireWaitsCommandHandler) Handle(ctx context.Context, cmd ExpireWaitsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	if err := h.sweepStage(ctx, order.Cooking, now.Add(-h.cookWait), now); err != nil {
		return err
	}
	if err := h.sweepStage(ctx, order.Packing, now.Add(-h.packWait), now); err != nil {
		return err
	}

	return h.reportStuckPickups(ctx, now.Add(-h.pickupWait))
}

func (h ExpireWaitsCommandHandler) sweepStage(ctx context.Context, stage order.Status, cutoff, now time.Time) error {
	expired, err := h.findExpired(ctx, stage, cutoff)
	if err != nil {
		return err
	}

	for _, step := range expired {
		if err := h.advanceExpired(ctx, step, stage, now); err != nil {
			h.logger.Error("wait expiry advance failed",
				"order_id", step.OrderID().String(),
				"stage", stage.String(),
				"error", err)
		}
	}

	return nil
}

// findExpired loads the expired open steps for a stage in a short read-only
// transaction. Each expired order is then advanced in its own transaction.
func (h ExpireWaitsCommandHandler) findExpired(
	ctx context.Context,
	stage order.Status,
	cutoff time.Time,
) ([]*timeline.WorkflowStep, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.StepRepository().GetOpenStepsInStatusBefore(ctx, stage, cutoff)
}

// advanceExpired applies the timer's transition to one order. Firing after
// the order has already moved on, or losing the guarded update to a manual
// completion, is a silent no-op.
func (h ExpireWaitsCommandHandler) advanceExpired(
	ctx context.Context,
	step *timeline.WorkflowStep,
	stage order.Status,
	now time.Time,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, step.TenantID(), step.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if aggregate.Status() != stage {
		return nil
	}

	var note string
	switch stage {
	case order.Cooking:
		note = "auto-advanced: cook wait expired"
		err = aggregate.StartPacking()
	case order.Packing:
		note = "auto-advanced: pack wait expired"
		chefID := ""
		if aggregate.AssignedChef() != nil {
			chefID = *aggregate.AssignedChef()
		}
		if err = aggregate.MarkReady(); err != nil {
			break
		}
		if chefID != "" {
			if err = h.releaseChef(ctx, uow, aggregate, chefID, now); err != nil {
				break
			}
		}
		err = h.enqueueDelivery(ctx, uow, aggregate, now)
	default:
		return nil
	}
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate, stage); err != nil {
		if errors.Is(err, errs.ErrConcurrencyConflict) {
			// A manual completion won; the timer firing is now a no-op.
			return nil
		}
		return err
	}

	if err = advanceLedger(ctx, uow.StepRepository(),
		aggregate.TenantID(), aggregate.ID(), aggregate.Status(),
		timeline.SystemActor, now, note); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h ExpireWaitsCommandHandler) releaseChef(
	ctx context.Context,
	uow UoW,
	aggregate *order.Order,
	chefID string,
	now time.Time,
) error {
	worker, err := uow.StaffRepository().Get(ctx, aggregate.TenantID(), chefID)
	if err != nil {
		return err
	}

	busySeconds, err := heldBusySeconds(ctx, uow.StepRepository(),
		aggregate.TenantID(), aggregate.ID(), chefID, now)
	if err != nil {
		return err
	}

	workerWasIn := worker.Status()
	if err = worker.Release(busySeconds, true); err != nil {
		return err
	}

	return uow.StaffRepository().Update(ctx, worker, workerWasIn)
}

func (h ExpireWaitsCommandHandler) enqueueDelivery(
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

// reportStuckPickups logs orders that have waited in ready past the pickup
// window. The pickup window never auto-advances; the log line is the signal
// dashboards and operators act on.
func (h ExpireWaitsCommandHandler) reportStuckPickups(ctx context.Context, cutoff time.Time) error {
	stuck, err := h.findExpired(ctx, order.Ready, cutoff)
	if err != nil {
		return err
	}

	for _, step := range stuck {
		h.logger.Warn("order stuck awaiting pickup",
			"order_id", step.OrderID().String(),
			"tenant_id", step.TenantID().String(),
			"ready_since", step.StartedAt())
	}

	return nil
}
