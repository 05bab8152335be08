package order

import (
	"errors"
	"fmt"

	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a value object representing one ordered line: a menu SKU, its
// display name, the ordered quantity, and the unit price captured at order
// time. Items are immutable once the order is created; the order total is
// derived from them exactly once and never recomputed.
type Item struct {
	// sku identifies the menu entry this line refers to
	sku string

	// name is the display name captured at order time
	name string

	// quantity is the ordered count (must be positive)
	quantity int

	// unitPrice is the per-unit price captured at order time (must not be negative)
	unitPrice float64

	// isConstructed ensures the item was created via NewItem
	isConstructed bool
}

// NewItem creates a validated order line.
//
// Parameters:
//   - sku: menu entry identifier (must be non-empty)
//   - name: display name (must be non-empty)
//   - quantity: ordered count (must be greater than 0)
//   - unitPrice: per-unit price (must not be negative)
//
// Returns the item if all validations pass, or an aggregated validation error.
func NewItem(sku, name string, quantity int, unitPrice float64) (Item, error) {
	item := Item{isConstructed: true}

	if err := errors.Join(
		item.setSKU(sku),
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item was created via NewItem.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// SKU returns the menu entry identifier.
func (i Item) SKU() string {
	return i.sku
}

// Name returns the display name captured at order time.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the ordered count.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the per-unit price captured at order time.
func (i Item) UnitPrice() float64 {
	return i.unitPrice
}

// Subtotal returns quantity times unit price for this line.
func (i Item) Subtotal() float64 {
	return float64(i.quantity) * i.unitPrice
}

func (i *Item) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	i.sku = sku
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice float64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price is invalid",
			fmt.Errorf("%f is negative", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}
