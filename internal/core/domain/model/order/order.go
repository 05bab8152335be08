package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrItemsAreRequired is returned when attempting to create an order without line items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// Order represents a food order in the system. It is the aggregate root that
// owns the order lifecycle from placement through kitchen work to delivery.
//
// Order follows these invariants:
//   - Belongs to exactly one tenant; never visible across tenants
//   - Has at least one line item; the total is derived from the items once at
//     creation and never recomputed
//   - Status transitions follow the central transition table in Status
//   - A chef is assigned from Cooking onward; a driver from InDelivery onward
//   - Can only be created through NewOrder or RestoreOrder
//
// Customers and staff never write order state directly; they request
// transitions through the workflow engine, which is the sole writer.
type Order struct {
	// id is the unique identifier for the order within its tenant
	id kernel.UUID

	// tenantID is the owning organization
	tenantID kernel.TenantID

	// customerID identifies the customer who placed the order
	customerID string

	// items are the ordered lines, immutable after creation
	items []Item

	// deliveryAddress is the destination street address
	deliveryAddress string

	// deliveryInstructions are optional notes for the driver
	deliveryInstructions string

	// status is the current state in the order lifecycle
	status Status

	// assignedChef is the staff identifier of the chef working the order (nil if none yet)
	assignedChef *string

	// assignedDriver is the staff identifier of the driver carrying the order (nil if none yet)
	assignedDriver *string

	// total is the derived sum of item subtotals, fixed at creation
	total float64

	// createdAt is the placement time
	createdAt time.Time

	// isConstructed ensures the order was created via a factory
	isConstructed bool
}

// NewOrder creates a new Order in Pending status with validation. This is the
// only way to create a fresh order; the total is derived from the items here
// and is immutable afterwards.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - tenantID: Owning organization (must be valid)
//   - customerID: Customer placing the order (must be non-empty)
//   - items: At least one validated line item
//   - deliveryAddress: Destination address (must be non-empty)
//   - deliveryInstructions: Optional free-form notes
//   - createdAt: Placement time
//
// Returns the order if all validations pass, or an aggregated validation error.
func NewOrder(
	id kernel.UUID,
	tenantID kernel.TenantID,
	customerID string,
	items []Item,
	deliveryAddress string,
	deliveryInstructions string,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		status:               Pending,
		deliveryInstructions: deliveryInstructions,
		createdAt:            createdAt,
		isConstructed:        true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setTenantID(tenantID),
		order.setCustomerID(customerID),
		order.setItems(items),
		order.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return nil, err
	}

	total := 0.0
	for _, item := range order.items {
		total += item.Subtotal()
	}
	order.total = total

	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder, the status, assignments, and total come from the stored
// record; the assignment/status consistency rules are re-validated so corrupt
// rows cannot produce an impossible aggregate.
func RestoreOrder(
	id kernel.UUID,
	tenantID kernel.TenantID,
	customerID string,
	items []Item,
	deliveryAddress string,
	deliveryInstructions string,
	status Status,
	assignedChef *string,
	assignedDriver *string,
	total float64,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		status:               status,
		deliveryInstructions: deliveryInstructions,
		assignedChef:         assignedChef,
		assignedDriver:       assignedDriver,
		total:                total,
		createdAt:            createdAt,
		isConstructed:        true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setTenantID(tenantID),
		order.setCustomerID(customerID),
		order.setItems(items),
		order.setDeliveryAddress(deliveryAddress),
		status.Validate(),
		status.ValidateAssignments(assignedChef != nil, assignedDriver != nil),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// ValidateAssignments validates the consistency between order status and the
// presence of chef/driver assignments.
//
// Business rules:
//   - Orders before Cooking must not have a chef; from Cooking onward they must
//   - Orders before InDelivery must not have a driver; InDelivery and
//     Delivered must
//   - Failed orders may carry either, frozen for the audit trail
func (s Status) ValidateAssignments(hasChef, hasDriver bool) error {
	if s == Failed {
		return nil
	}

	chefRequired := s == Cooking || s == Packing || s == Ready || s == InDelivery || s == Delivered
	if chefRequired && !hasChef {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s requires an assigned chef", s))
	}
	if !chefRequired && hasChef {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to have a chef", s))
	}

	driverRequired := s == InDelivery || s == Delivered
	if driverRequired && !hasDriver {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s requires an assigned driver", s))
	}
	if !driverRequired && hasDriver {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to have a driver", s))
	}

	return nil
}

// Validate ensures the Order instance was properly constructed through a factory.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TenantID returns the owning organization.
func (o *Order) TenantID() kernel.TenantID {
	return o.tenantID
}

// CustomerID returns the customer who placed the order.
func (o *Order) CustomerID() string {
	return o.customerID
}

// Items returns a copy of the ordered lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// DeliveryAddress returns the destination address.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// DeliveryInstructions returns the optional driver notes.
func (o *Order) DeliveryInstructions() string {
	return o.deliveryInstructions
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// AssignedChef returns the chef working the order, or nil.
func (o *Order) AssignedChef() *string {
	return o.assignedChef
}

// AssignedDriver returns the driver carrying the order, or nil.
func (o *Order) AssignedDriver() *string {
	return o.assignedDriver
}

// Total returns the derived order total, fixed at creation.
func (o *Order) Total() float64 {
	return o.total
}

// CreatedAt returns the placement time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Confirm transitions the order from Pending to Confirmed.
// Confirmation is automatic and immediate on creation; it opens the order's
// first ledger step and queues the cooking assignment request.
func (o *Order) Confirm() error {
	return o.transitionTo(Confirmed)
}

// AssignChef transitions the order from Confirmed to Cooking and records the
// assigned chef. Called only by the assignment queue when a match commits.
func (o *Order) AssignChef(chefID string) error {
	if chefID == "" {
		return errs.NewValueIsRequiredError("chefID")
	}

	if err := o.transitionTo(Cooking); err != nil {
		return err
	}

	o.assignedChef = &chefID
	return nil
}

// StartPacking transitions the order from Cooking to Packing.
// The same chef who cooked the order packs it; the assignment is unchanged.
func (o *Order) StartPacking() error {
	return o.transitionTo(Packing)
}

// MarkReady transitions the order from Packing to Ready.
// The chef keeps their attribution on the order for the audit trail, but the
// workflow engine releases them in the availability registry.
func (o *Order) MarkReady() error {
	return o.transitionTo(Ready)
}

// AssignDriver transitions the order from Ready to InDelivery and records the
// driver. Reached either by a driver's explicit claim or by the assignment
// queue matching an available driver; first writer wins.
func (o *Order) AssignDriver(driverID string) error {
	if driverID == "" {
		return errs.NewValueIsRequiredError("driverID")
	}

	if err := o.transitionTo(InDelivery); err != nil {
		return err
	}

	o.assignedDriver = &driverID
	return nil
}

// CancelPickup returns an InDelivery order to Ready and clears the driver.
// This is the one backward edge in the workflow, used when a driver abandons
// a pickup; the delivery work is re-queued by the engine.
func (o *Order) CancelPickup() error {
	if err := o.transitionTo(Ready); err != nil {
		return err
	}

	o.assignedDriver = nil
	return nil
}

// Complete transitions the order from InDelivery to Delivered. Terminal.
func (o *Order) Complete() error {
	return o.transitionTo(Delivered)
}

// Fail moves the order to the Failed terminal state from any non-terminal
// state. Assignments are kept as-is so the audit trail shows who held the
// order when it failed; the registry release happens in the engine.
func (o *Order) Fail() error {
	return o.transitionTo(Failed)
}

// transitionTo applies the central transition table and attaches the order ID
// to any rejection so clients always see which order and state were involved.
func (o *Order) transitionTo(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidTransition) {
			return errs.NewInvalidTransitionError(o.id.String(), o.status.String(), target.String())
		}
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	o.tenantID = tenantID
	return nil
}

func (o *Order) setCustomerID(customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerID")
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryAddress = address
	return nil
}
