package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/staff"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"
)

// ReportAvailabilityCommandHandler handles staff availability self-reports.
// Creates the registry record on first report, updates it afterwards.
// Registry-only operation, so it runs on the narrow staff unit of work.
type ReportAvailabilityCommandHandler struct {
	uowFactory StaffUoWFactory
}

// NewReportAvailabilityCommandHandler creates a handler for availability reports.
func NewReportAvailabilityCommandHandler(uowFactory StaffUoWFactory) ReportAvailabilityCommandHandler {
	return ReportAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes an availability report. Reporting the current status again
// is a no-op; a busy worker holding an order cannot self-release and gets
// staff.ErrStaffIsBusy. A report under a different role than the one on
// record is rejected rather than silently re-registering the worker.
func (h ReportAvailabilityCommandHandler) Handle(ctx context.Context, cmd ReportAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	worker, err := uow.StaffRepository().Get(ctx, cmd.TenantID(), cmd.StaffID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		worker, err = staff.NewStaffAvailability(cmd.StaffID(), cmd.TenantID(), cmd.Role(), cmd.Status())
		if err != nil {
			return err
		}
		if err = uow.StaffRepository().Add(ctx, worker); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if worker.Role() != cmd.Role() {
			return errs.NewValueIsInvalidErrorWithCause("role",
				fmt.Errorf("staff member %s is registered as %s", cmd.StaffID(), worker.Role()))
		}
		workerWasIn := worker.Status()
		if err = worker.Report(cmd.Status()); err != nil {
			return err
		}
		if err = uow.StaffRepository().Update(ctx, worker, workerWasIn); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
