package commands

import (
	"context"
	"errors"
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/order"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/timeline"
	"github.com/m4r-ant/200millas-Backend/internal/core/ports"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"
)

// closeOpenStep closes the order's single open ledger step, annotating it
// when a note is given. A missing open step means the ledger and the order
// row disagree, which is a bug in the engine, so this returns a
// ConsistencyViolationError instead of tolerating it.
func closeOpenStep(
	ctx context.Context,
	stepRepo ports.StepRepository,
	tenantID kernel.TenantID,
	orderID kernel.UUID,
	at time.Time,
	note string,
) error {
	openStep, err := stepRepo.GetOpenStep(ctx, tenantID, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewConsistencyViolationError(orderID.String(), "no open ledger step to close")
	}
	if err != nil {
		return err
	}

	if err = openStep.Close(at); err != nil {
		return err
	}
	if note != "" {
		openStep.Annotate(note)
	}

	return stepRepo.Update(ctx, openStep)
}

// openStep appends a new ledger step for the status the order just entered.
func openStep(
	ctx context.Context,
	stepRepo ports.StepRepository,
	tenantID kernel.TenantID,
	orderID kernel.UUID,
	status order.Status,
	actor string,
	at time.Time,
	notes string,
) error {
	count, err := stepRepo.CountSteps(ctx, tenantID, orderID)
	if err != nil {
		return err
	}

	step, err := timeline.NewWorkflowStep(orderID, tenantID, count+1, status, actor, at, notes)
	if err != nil {
		return err
	}

	return stepRepo.Add(ctx, step)
}

// advanceLedger closes the open step and opens the next one in the same
// transaction as the guarded order update. Terminal statuses only close; the
// ledger of a finished order has no open step.
func advanceLedger(
	ctx context.Context,
	stepRepo ports.StepRepository,
	tenantID kernel.TenantID,
	orderID kernel.UUID,
	newStatus order.Status,
	actor string,
	at time.Time,
	notes string,
) error {
	closeNote := ""
	if newStatus.IsTerminal() {
		closeNote = notes
	}

	if err := closeOpenStep(ctx, stepRepo, tenantID, orderID, at, closeNote); err != nil {
		return err
	}

	if newStatus.IsTerminal() {
		return nil
	}

	return openStep(ctx, stepRepo, tenantID, orderID, newStatus, actor, at, notes)
}

// heldBusySeconds measures how long a worker has held an order this time
// around: the span from the start of their current contiguous run of ledger
// steps until now. Starting from the worker's latest step and extending back
// through adjacent steps they also drove keeps a chef's cooking time in the
// span while a driver who abandoned a pickup and claimed again is only
// charged from the second claim, not the shelf time in between. The result
// feeds the worker's busy-time counters on release.
func heldBusySeconds(
	ctx context.Context,
	stepRepo ports.StepRepository,
	tenantID kernel.TenantID,
	orderID kernel.UUID,
	workerID string,
	now time.Time,
) (int64, error) {
	steps, err := stepRepo.GetSteps(ctx, tenantID, orderID)
	if err != nil {
		return 0, err
	}

	last := -1
	for i, step := range steps {
		if step.AssignedTo() == workerID {
			last = i
		}
	}
	if last == -1 {
		return 0, nil
	}

	start := last
	for start > 0 && steps[start-1].AssignedTo() == workerID {
		start--
	}

	if seconds := int64(now.Sub(steps[start].StartedAt()).Seconds()); seconds > 0 {
		return seconds, nil
	}
	return 0, nil
}
