package staff

import (
	"errors"
	"fmt"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/guard"
)

// Domain errors for staff availability operations.
var (
	// ErrStaffIDIsRequired is returned when attempting to create a record without a staff identifier.
	ErrStaffIDIsRequired = errs.NewValueIsRequiredError("staffID")
	// ErrStaffIsBusy is returned when a busy staff member tries to report themselves
	// available or offline while still holding an order.
	ErrStaffIsBusy = errors.New("staff member holds an order and cannot change availability")
	// ErrStaffIsNotAvailable is returned when assigning work to a staff member who is not available.
	ErrStaffIsNotAvailable = errors.New("staff member is not available for work")
	// ErrStaffIsNotBusy is returned when releasing a staff member who holds no order.
	ErrStaffIsNotBusy = errors.New("staff member holds no order to release")
)

// StaffAvailability is the aggregate root tracking one staff member's shift
// state within a tenant. It is the single source of truth the assignment
// queue consults when matching queued work to workers.
//
// Business rules:
//   - Only the workflow engine flips a worker to busy or back; staff
//     themselves may only report available or offline
//   - A busy worker holds exactly one order and cannot self-report out of it
//   - Completed-work counters only ever grow; they feed the performance
//     dashboard and the matcher's least-loaded ordering
type StaffAvailability struct {
	// id is the opaque staff identifier chosen by the tenant (often an email)
	id string
	// tenantID is the owning organization
	tenantID kernel.TenantID
	// role is what kind of work this staff member performs
	role Role
	// status is the current availability state
	status Status
	// currentOrderID is the order held while busy, nil otherwise
	currentOrderID *kernel.UUID
	// ordersCompleted counts finished work items
	ordersCompleted int
	// totalBusySeconds accumulates time spent holding orders
	totalBusySeconds int64
	// guard ensures the record was properly constructed
	guard guard.ConstructorGuard
}

// NewStaffAvailability creates a fresh availability record for a staff member
// reporting for the first time. The record starts with the reported status and
// zeroed counters.
func NewStaffAvailability(id string, tenantID kernel.TenantID, role Role, status Status) (*StaffAvailability, error) {
	worker := &StaffAvailability{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		worker.setID(id),
		worker.setTenantID(tenantID),
		worker.setRole(role),
		worker.setStatus(status),
	); err != nil {
		return nil, err
	}

	return worker, nil
}

// RestoreStaffAvailability reconstructs a StaffAvailability aggregate from
// persistent storage, including counters and any held order.
func RestoreStaffAvailability(
	id string,
	tenantID kernel.TenantID,
	role Role,
	status Status,
	currentOrderID *kernel.UUID,
	ordersCompleted int,
	totalBusySeconds int64,
) (*StaffAvailability, error) {
	worker := &StaffAvailability{
		currentOrderID:   currentOrderID,
		ordersCompleted:  ordersCompleted,
		totalBusySeconds: totalBusySeconds,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		worker.setID(id),
		worker.setTenantID(tenantID),
		worker.setRole(role),
		worker.setStatus(status),
	); err != nil {
		return nil, err
	}

	if worker.status == StatusBusy && worker.currentOrderID == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("busy staff member %s holds no order", id))
	}
	if worker.status != StatusBusy && worker.currentOrderID != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s staff member %s holds an order", worker.status, id))
	}

	return worker, nil
}

// Validate ensures the record was created via a factory.
func (w *StaffAvailability) Validate() error {
	if w == nil {
		return guard.ErrDefaultConstructorGuard
	}
	return w.guard.Validate(guard.ErrDefaultConstructorGuard)
}

// ID returns the opaque staff identifier.
func (w *StaffAvailability) ID() string {
	return w.id
}

// TenantID returns the owning organization.
func (w *StaffAvailability) TenantID() kernel.TenantID {
	return w.tenantID
}

// Role returns what kind of work this staff member performs.
func (w *StaffAvailability) Role() Role {
	return w.role
}

// Status returns the current availability state.
func (w *StaffAvailability) Status() Status {
	return w.status
}

// CurrentOrderID returns the order held while busy, or nil.
func (w *StaffAvailability) CurrentOrderID() *kernel.UUID {
	return w.currentOrderID
}

// OrdersCompleted returns the number of finished work items.
func (w *StaffAvailability) OrdersCompleted() int {
	return w.ordersCompleted
}

// TotalBusySeconds returns the accumulated time spent holding orders.
func (w *StaffAvailability) TotalBusySeconds() int64 {
	return w.totalBusySeconds
}

// AverageBusySeconds returns the mean time spent per completed work item,
// or 0 when nothing has been completed yet.
func (w *StaffAvailability) AverageBusySeconds() float64 {
	if w.ordersCompleted == 0 {
		return 0
	}
	return float64(w.totalBusySeconds) / float64(w.ordersCompleted)
}

// Report applies a staff member's self-reported availability change.
//
// Staff may only report available or offline. A busy worker still holding an
// order cannot report themselves out of it; the engine releases them when the
// order moves on. Reporting the current status again is a no-op.
func (w *StaffAvailability) Report(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == StatusBusy {
		return errs.NewValueIsInvalidErrorWithCause("status",
			errors.New("busy can only be set by work assignment"))
	}
	if status == w.status {
		return nil
	}
	if w.status == StatusBusy && w.currentOrderID != nil {
		return ErrStaffIsBusy
	}

	w.status = status
	return nil
}

// Assign marks an available staff member busy with the given order.
// Called only by the workflow engine when an assignment match commits.
func (w *StaffAvailability) Assign(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if w.status != StatusAvailable {
		return ErrStaffIsNotAvailable
	}

	w.status = StatusBusy
	w.currentOrderID = &orderID
	return nil
}

// Release returns a busy staff member to available and updates their
// counters. busySeconds is the time the released order was held; completed
// is false when the work ended without finishing (a failed order or an
// abandoned pickup), in which case only the busy time is recorded.
func (w *StaffAvailability) Release(busySeconds int64, completed bool) error {
	if w.status != StatusBusy || w.currentOrderID == nil {
		return ErrStaffIsNotBusy
	}
	if busySeconds < 0 {
		busySeconds = 0
	}

	w.status = StatusAvailable
	w.currentOrderID = nil
	w.totalBusySeconds += busySeconds
	if completed {
		w.ordersCompleted++
	}
	return nil
}

func (w *StaffAvailability) setID(id string) error {
	if id == "" {
		return ErrStaffIDIsRequired
	}
	w.id = id
	return nil
}

func (w *StaffAvailability) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	w.tenantID = tenantID
	return nil
}

func (w *StaffAvailability) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	w.role = role
	return nil
}

func (w *StaffAvailability) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	w.status = status
	return nil
}
