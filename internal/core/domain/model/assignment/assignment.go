package assignment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/staff"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/guard"
)

// Category identifies which queue a work request belongs to.
type Category int

const (
	// CategoryUnknown represents an invalid or unset category.
	CategoryUnknown Category = iota
	// CategoryCooking requests a chef for a confirmed order.
	CategoryCooking
	// CategoryDelivery requests a driver for a ready order.
	CategoryDelivery
)

func getCategoryStrings() map[Category]string {
	return map[Category]string{
		CategoryUnknown:  "unknown",
		CategoryCooking:  "cooking",
		CategoryDelivery: "delivery",
	}
}

// ParseCategory converts a string into a Category. Matching is case-insensitive.
func ParseCategory(s string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for category, name := range getCategoryStrings() {
		if category != CategoryUnknown && name == normalized {
			return category, nil
		}
	}
	return CategoryUnknown, errs.NewValueIsInvalidErrorWithCause("category",
		fmt.Errorf("%q is not a valid assignment category", s))
}

// Validate checks that the category is one of the known queues.
func (c Category) Validate() error {
	if c != CategoryCooking && c != CategoryDelivery {
		return errs.NewValueIsInvalidErrorWithCause("category",
			fmt.Errorf("%d is not a valid assignment category", int(c)))
	}
	return nil
}

// String returns the wire name of the category.
func (c Category) String() string {
	if name, ok := getCategoryStrings()[c]; ok {
		return name
	}
	return getCategoryStrings()[CategoryUnknown]
}

// Role returns the staff role that serves this category of work.
func (c Category) Role() staff.Role {
	switch c {
	case CategoryCooking:
		return staff.RoleChef
	case CategoryDelivery:
		return staff.RoleDriver
	default:
		return staff.RoleUnknown
	}
}

// ErrRequestIsNotConstructed is returned when using an improperly initialized Request.
var ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")

// Request is one pending unit of work in the assignment queue: an order
// waiting for a chef or a driver. At most one request per (order, category)
// ever exists; enqueueing is idempotent at the storage layer.
type Request struct {
	// orderID is the order waiting for a worker
	orderID kernel.UUID
	// tenantID is the owning organization
	tenantID kernel.TenantID
	// category selects which queue and worker role serves this request
	category Category
	// enqueuedAt orders the queue oldest-first
	enqueuedAt time.Time
	// guard ensures the request was properly constructed
	guard guard.ConstructorGuard
}

// NewRequest creates a validated assignment request.
func NewRequest(orderID kernel.UUID, tenantID kernel.TenantID, category Category, enqueuedAt time.Time) (*Request, error) {
	request := &Request{
		enqueuedAt: enqueuedAt,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		request.setOrderID(orderID),
		request.setTenantID(tenantID),
		request.setCategory(category),
	); err != nil {
		return nil, err
	}

	return request, nil
}

// Validate ensures the request was created via NewRequest.
func (r *Request) Validate() error {
	if r == nil {
		return ErrRequestIsNotConstructed
	}
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

// OrderID returns the order waiting for a worker.
func (r *Request) OrderID() kernel.UUID {
	return r.orderID
}

// TenantID returns the owning organization.
func (r *Request) TenantID() kernel.TenantID {
	return r.tenantID
}

// Category returns which queue this request belongs to.
func (r *Request) Category() Category {
	return r.category
}

// EnqueuedAt returns when the request entered the queue.
func (r *Request) EnqueuedAt() time.Time {
	return r.enqueuedAt
}

func (r *Request) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	r.orderID = orderID
	return nil
}

func (r *Request) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	r.tenantID = tenantID
	return nil
}

func (r *Request) setCategory(category Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	r.category = category
	return nil
}
