package ports

import (
	"context"
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/order"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/timeline"
)

// StepRepository defines the persistence contract for the append-only
// timeline ledger. Steps are only ever added or closed; closed steps are
// never modified.
type StepRepository interface {
	// Add persists a newly opened ledger step.
	Add(ctx context.Context, step *timeline.WorkflowStep) error

	// Update persists the closing of a step. Closed steps never change again.
	Update(ctx context.Context, step *timeline.WorkflowStep) error

	// GetOpenStep retrieves the order's single open step, the one recording
	// the order's current status. Returns errs.ErrObjectNotFound when the
	// order has no open step.
	GetOpenStep(ctx context.Context, tenantID kernel.TenantID, orderID kernel.UUID) (*timeline.WorkflowStep, error)

	// CountSteps returns how many ledger steps the order has, used to number
	// the next step.
	CountSteps(ctx context.Context, tenantID kernel.TenantID, orderID kernel.UUID) (int, error)

	// GetSteps retrieves the order's full ledger ordered by step number.
	GetSteps(ctx context.Context, tenantID kernel.TenantID, orderID kernel.UUID) ([]*timeline.WorkflowStep, error)

	// GetOpenStepsInStatusBefore retrieves open steps across all tenants whose
	// status matches and whose startedAt is at or before the cutoff. This is
	// how the timer sweep finds orders that have sat in a timed stage long
	// enough to advance.
	GetOpenStepsInStatusBefore(ctx context.Context, status order.Status, cutoff time.Time) ([]*timeline.WorkflowStep, error)
}
