package commands

import (
	"errors"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerIsRequired = errors.New("customer is required")
	ErrAddressIsRequired  = errors.New("delivery address is required")
	ErrItemsAreRequired   = errors.New("at least one item is required")
)

// OrderItem carries one requested order line into the create command.
// Validation of the values themselves happens in the domain layer.
type OrderItem struct {
	SKU       string
	Name      string
	Quantity  int
	UnitPrice float64
}

// CreateOrderCommand represents a customer's request to place a food order.
// Encapsulates the order lines and delivery details for one tenant.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, tenant, "customer-42",
//	    []OrderItem{{SKU: "sku-1", Name: "Ceviche", Quantity: 1, UnitPrice: 18.99}},
//	    "Av. Larco 1301", "ring twice")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID              kernel.UUID
	tenantID             kernel.TenantID
	customerID           string
	items                []OrderItem
	deliveryAddress      string
	deliveryInstructions string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates identifiers and presence of the required fields; the order lines
// are validated in depth by the domain when the aggregate is built.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	tenantID kernel.TenantID,
	customerID string,
	items []OrderItem,
	deliveryAddress string,
	deliveryInstructions string,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		deliveryInstructions: deliveryInstructions,
		guard:                guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setTenantID(tenantID),
		command.setCustomerID(customerID),
		command.setItems(items),
		command.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier chosen for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TenantID returns the tenant placing the order.
func (c CreateOrderCommand) TenantID() kernel.TenantID {
	return c.tenantID
}

// CustomerID returns the customer placing the order.
func (c CreateOrderCommand) CustomerID() string {
	return c.customerID
}

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []OrderItem {
	return c.items
}

// DeliveryAddress returns the destination address.
func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// DeliveryInstructions returns the optional driver notes.
func (c CreateOrderCommand) DeliveryInstructions() string {
	return c.deliveryInstructions
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID string) error {
	if customerID == "" {
		return ErrCustomerIsRequired
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(deliveryAddress string) error {
	if deliveryAddress == "" {
		return ErrAddressIsRequired
	}

	c.deliveryAddress = deliveryAddress
	return nil
}
