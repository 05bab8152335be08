package commands

import (
	"errors"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/staff"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/guard"
)

var ErrReportAvailabilityCommandIsNotConstructed = errors.New(
	"ReportAvailabilityCommand must be created via NewReportAvailabilityCommand constructor",
)

// ReportAvailabilityCommand represents a staff member reporting their own
// shift state. The first report creates the registry record; later reports
// update it. Busy is never self-reported; only assignment matching sets it.
type ReportAvailabilityCommand struct { //nolint:recvcheck //using for validation
	tenantID kernel.TenantID
	staffID  string
	role     staff.Role
	status   staff.Status

	guard guard.ConstructorGuard
}

// NewReportAvailabilityCommand creates a validated availability report.
func NewReportAvailabilityCommand(
	tenantID kernel.TenantID,
	staffID string,
	role staff.Role,
	status staff.Status,
) (ReportAvailabilityCommand, error) {
	command := ReportAvailabilityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTenantID(tenantID),
		command.setStaffID(staffID),
		command.setRole(role),
		command.setStatus(status),
	); err != nil {
		return ReportAvailabilityCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrReportAvailabilityCommandIsNotConstructed)
}

// TenantID returns the tenant the staff member works for.
func (c ReportAvailabilityCommand) TenantID() kernel.TenantID {
	return c.tenantID
}

// StaffID returns the reporting staff member's identifier.
func (c ReportAvailabilityCommand) StaffID() string {
	return c.staffID
}

// Role returns the staff member's work role.
func (c ReportAvailabilityCommand) Role() staff.Role {
	return c.role
}

// Status returns the reported availability.
func (c ReportAvailabilityCommand) Status() staff.Status {
	return c.status
}

func (c *ReportAvailabilityCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *ReportAvailabilityCommand) setStaffID(staffID string) error {
	if staffID == "" {
		return staff.ErrStaffIDIsRequired
	}

	c.staffID = staffID
	return nil
}

func (c *ReportAvailabilityCommand) setRole(role staff.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	c.role = role
	return nil
}

func (c *ReportAvailabilityCommand) setStatus(status staff.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == staff.StatusBusy {
		return errs.NewValueIsInvalidErrorWithCause("status",
			errors.New("busy can only be set by work assignment"))
	}

	c.status = status
	return nil
}
