package timeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/order"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/guard"
)

// SystemActor is recorded as the step actor when the workflow engine itself
// drives a transition (automatic confirmation, timer expiry, queue matching)
// rather than a named staff member.
const SystemActor = "system"

// Domain errors for timeline operations.
var (
	// ErrStepIsNotConstructed is returned when using an improperly initialized WorkflowStep.
	ErrStepIsNotConstructed = errors.New("WorkflowStep must be created via NewWorkflowStep constructor")
	// ErrStepIsAlreadyClosed is returned when closing a step that already has a completion time.
	ErrStepIsAlreadyClosed = errors.New("workflow step is already closed")
)

// WorkflowStep is one entry in an order's append-only timeline ledger. A step
// opens when the order enters a status and closes when it leaves it; the open
// step is always the last one. Closed steps are never modified again, which
// is what makes the ledger a trustworthy audit trail and the source for the
// per-stage duration metrics.
type WorkflowStep struct {
	// orderID is the order this step belongs to
	orderID kernel.UUID
	// tenantID is the owning organization
	tenantID kernel.TenantID
	// stepNumber is the 1-based position within the order's ledger
	stepNumber int
	// status is the order status this step records
	status order.Status
	// assignedTo names the actor responsible for the step, SystemActor for
	// engine-driven transitions
	assignedTo string
	// startedAt is when the order entered this status
	startedAt time.Time
	// completedAt is when the order left this status, nil while the step is open
	completedAt *time.Time
	// notes is an optional free-form annotation
	notes string
	// guard ensures the step was properly constructed
	guard guard.ConstructorGuard
}

// NewWorkflowStep opens a new ledger step for an order entering a status.
func NewWorkflowStep(
	orderID kernel.UUID,
	tenantID kernel.TenantID,
	stepNumber int,
	status order.Status,
	assignedTo string,
	startedAt time.Time,
	notes string,
) (*WorkflowStep, error) {
	step := &WorkflowStep{
		startedAt: startedAt,
		notes:     notes,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		step.setOrderID(orderID),
		step.setTenantID(tenantID),
		step.setStepNumber(stepNumber),
		step.setStatus(status),
		step.setAssignedTo(assignedTo),
	); err != nil {
		return nil, err
	}

	return step, nil
}

// RestoreWorkflowStep reconstructs a WorkflowStep from persistent storage.
func RestoreWorkflowStep(
	orderID kernel.UUID,
	tenantID kernel.TenantID,
	stepNumber int,
	status order.Status,
	assignedTo string,
	startedAt time.Time,
	completedAt *time.Time,
	notes string,
) (*WorkflowStep, error) {
	step, err := NewWorkflowStep(orderID, tenantID, stepNumber, status, assignedTo, startedAt, notes)
	if err != nil {
		return nil, err
	}

	step.completedAt = completedAt
	return step, nil
}

// Validate ensures the step was created via a factory.
func (s *WorkflowStep) Validate() error {
	if s == nil {
		return ErrStepIsNotConstructed
	}
	return s.guard.Validate(ErrStepIsNotConstructed)
}

// OrderID returns the order this step belongs to.
func (s *WorkflowStep) OrderID() kernel.UUID {
	return s.orderID
}

// TenantID returns the owning organization.
func (s *WorkflowStep) TenantID() kernel.TenantID {
	return s.tenantID
}

// StepNumber returns the 1-based position within the order's ledger.
func (s *WorkflowStep) StepNumber() int {
	return s.stepNumber
}

// Status returns the order status this step records.
func (s *WorkflowStep) Status() order.Status {
	return s.status
}

// AssignedTo returns the actor responsible for the step.
func (s *WorkflowStep) AssignedTo() string {
	return s.assignedTo
}

// StartedAt returns when the order entered this status.
func (s *WorkflowStep) StartedAt() time.Time {
	return s.startedAt
}

// CompletedAt returns when the order left this status, or nil while open.
func (s *WorkflowStep) CompletedAt() *time.Time {
	return s.completedAt
}

// Notes returns the optional annotation.
func (s *WorkflowStep) Notes() string {
	return s.notes
}

// IsOpen reports whether the order is still in this step's status.
func (s *WorkflowStep) IsOpen() bool {
	return s.completedAt == nil
}

// Close stamps the step's completion time. Closing an already closed step is
// rejected so the ledger stays append-only.
func (s *WorkflowStep) Close(at time.Time) error {
	if s.completedAt != nil {
		return ErrStepIsAlreadyClosed
	}

	s.completedAt = &at
	return nil
}

// Annotate replaces the step's free-form note. Used when a step closes for a
// reason worth recording, such as a failure marker or a timer expiry.
func (s *WorkflowStep) Annotate(notes string) {
	s.notes = notes
}

// DurationSeconds returns how long the order spent in this step, or nil while
// the step is still open.
func (s *WorkflowStep) DurationSeconds() *int64 {
	if s.completedAt == nil {
		return nil
	}

	seconds := int64(s.completedAt.Sub(s.startedAt).Seconds())
	return &seconds
}

func (s *WorkflowStep) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

func (s *WorkflowStep) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	s.tenantID = tenantID
	return nil
}

func (s *WorkflowStep) setStepNumber(stepNumber int) error {
	if stepNumber <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("stepNumber",
			fmt.Errorf("%d is not greater than 0", stepNumber))
	}
	s.stepNumber = stepNumber
	return nil
}

func (s *WorkflowStep) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

func (s *WorkflowStep) setAssignedTo(assignedTo string) error {
	if assignedTo == "" {
		return errs.NewValueIsRequiredError("assignedTo")
	}
	s.assignedTo = assignedTo
	return nil
}
