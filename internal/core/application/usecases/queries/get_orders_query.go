package queries

import (
	"errors"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/order"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves the orders visible to an actor, optionally
// filtered to a set of statuses. An empty status set means all statuses.
type GetOrdersQuery struct {
	tenantID kernel.TenantID
	actor    kernel.Actor
	statuses []order.Status
	guard    guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query to list orders as seen by an actor.
// Each requested status must be a known one.
func NewGetOrdersQuery(tenantID kernel.TenantID, actor kernel.Actor, statuses []order.Status) (GetOrdersQuery, error) {
	var errs error

	query := GetOrdersQuery{guard: guard.NewConstructorGuard()}

	if err := query.setTenantID(tenantID); err != nil {
		errs = errors.Join(errs, err)
	}
	if err := query.setActor(actor); err != nil {
		errs = errors.Join(errs, err)
	}
	if err := query.setStatuses(statuses); err != nil {
		errs = errors.Join(errs, err)
	}

	if errs != nil {
		return GetOrdersQuery{}, errs
	}

	return query, nil
}

func (q *GetOrdersQuery) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	q.tenantID = tenantID
	return nil
}

func (q *GetOrdersQuery) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	q.actor = actor
	return nil
}

func (q *GetOrdersQuery) setStatuses(statuses []order.Status) error {
	for _, status := range statuses {
		if err := status.Validate(); err != nil {
			return err
		}
	}
	q.statuses = statuses
	return nil
}

// TenantID returns the tenant scope of the query.
func (q GetOrdersQuery) TenantID() kernel.TenantID {
	return q.tenantID
}

// Actor returns who is asking.
func (q GetOrdersQuery) Actor() kernel.Actor {
	return q.actor
}

// Statuses returns the requested status filter, empty meaning all.
func (q GetOrdersQuery) Statuses() []order.Status {
	return q.statuses
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}
