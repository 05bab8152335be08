package queries

import (
	"errors"
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order on behalf of an actor. What the
// actor is allowed to see depends on their role: customers see their own
// orders, drivers see orders assigned to them plus orders awaiting pickup,
// everyone else on the tenant's side sees the whole tenant.
//
// Example:
//
//	query, err := NewGetOrderQuery(tenantID, orderID, actor)
//	if err != nil {
//	    return err
//	}
//
//	order, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // missing, or outside the actor's visibility
//	}
type GetOrderQuery struct {
	tenantID kernel.TenantID
	orderID  kernel.UUID
	actor    kernel.Actor
	guard    guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve one order as seen by an actor.
func NewGetOrderQuery(tenantID kernel.TenantID, orderID kernel.UUID, actor kernel.Actor) (GetOrderQuery, error) {
	var errs error

	query := GetOrderQuery{guard: guard.NewConstructorGuard()}

	if err := query.setTenantID(tenantID); err != nil {
		errs = errors.Join(errs, err)
	}
	if err := query.setOrderID(orderID); err != nil {
		errs = errors.Join(errs, err)
	}
	if err := query.setActor(actor); err != nil {
		errs = errors.Join(errs, err)
	}

	if errs != nil {
		return GetOrderQuery{}, errs
	}

	return query, nil
}

func (q *GetOrderQuery) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	q.tenantID = tenantID
	return nil
}

func (q *GetOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	q.orderID = orderID
	return nil
}

func (q *GetOrderQuery) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	q.actor = actor
	return nil
}

// TenantID returns the tenant scope of the query.
func (q GetOrderQuery) TenantID() kernel.TenantID {
	return q.tenantID
}

// OrderID returns the order being requested.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns who is asking.
func (q GetOrderQuery) Actor() kernel.Actor {
	return q.actor
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderItemResponse is one line of an order as stored at creation time.
type OrderItemResponse struct {
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// GetOrderQueryResponse is the read model of a single order.
type GetOrderQueryResponse struct {
	ID                   kernel.UUID
	CustomerID           string
	Items                []OrderItemResponse
	DeliveryAddress      string
	DeliveryInstructions string
	Status               string
	AssignedChef         *string
	AssignedDriver       *string
	TotalAmount          float64
	CreatedAt            time.Time
}
