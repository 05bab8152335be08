package queries

import (
	"errors"
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/guard"
)

var ErrGetTimelineQueryIsNotConstructed = errors.New(
	"GetTimelineQuery must be created via NewGetTimelineQuery constructor",
)

// GetTimelineQuery retrieves an order's full workflow ledger: every step
// the order has passed through, in order, with who worked it and for how
// long.
type GetTimelineQuery struct {
	tenantID kernel.TenantID
	orderID  kernel.UUID
	guard    guard.ConstructorGuard
}

// NewGetTimelineQuery creates a query for an order's workflow history.
func NewGetTimelineQuery(tenantID kernel.TenantID, orderID kernel.UUID) (GetTimelineQuery, error) {
	var errs error

	query := GetTimelineQuery{guard: guard.NewConstructorGuard()}

	if err := query.setTenantID(tenantID); err != nil {
		errs = errors.Join(errs, err)
	}
	if err := query.setOrderID(orderID); err != nil {
		errs = errors.Join(errs, err)
	}

	if errs != nil {
		return GetTimelineQuery{}, errs
	}

	return query, nil
}

func (q *GetTimelineQuery) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	q.tenantID = tenantID
	return nil
}

func (q *GetTimelineQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	q.orderID = orderID
	return nil
}

// TenantID returns the tenant scope of the query.
func (q GetTimelineQuery) TenantID() kernel.TenantID {
	return q.tenantID
}

// OrderID returns the order whose history is requested.
func (q GetTimelineQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
func (q GetTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetTimelineQueryIsNotConstructed)
}

// TimelineStepResponse is one ledger entry. DurationSeconds is nil while
// the step is still open.
type TimelineStepResponse struct {
	StepNumber      int
	Status          string
	AssignedTo      string
	StartedAt       time.Time
	CompletedAt     *time.Time
	DurationSeconds *int64
	Notes           string
}

// GetTimelineQueryResponse is the full ledger of one order.
// TotalDurationSeconds sums the closed steps only.
type GetTimelineQueryResponse struct {
	OrderID              kernel.UUID
	Steps                []TimelineStepResponse
	TotalDurationSeconds int64
}
