// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It converts between the order domain aggregate and its
// relational representation, with order items stored as a JSONB document.
package orderrepo

import (
	"encoding/json"
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Indexed by tenant and status since the matcher and the
// dashboard both read along those dimensions.
type OrderDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID             string    `gorm:"type:varchar(64);index:idx_orders_tenant_status,priority:1"`
	CustomerID           string    `gorm:"index"`
	Items                string    `gorm:"type:jsonb"`
	DeliveryAddress      string
	DeliveryInstructions string
	Status               string  `gorm:"type:varchar(16);index:idx_orders_tenant_status,priority:2"`
	AssignedChef         *string `gorm:"index"`
	AssignedDriver       *string `gorm:"index"`
	TotalAmount          float64
	CreatedAt            time.Time
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// itemDTO is one order line inside the JSONB items document. The field names
// match the wire format the read side returns.
type itemDTO struct {
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// fromDomain converts an order domain aggregate to its database
// representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	items := make([]itemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemDTO{
			SKU:       item.SKU(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:                   aggregate.ID().Bytes(),
		TenantID:             aggregate.TenantID().String(),
		CustomerID:           aggregate.CustomerID(),
		Items:                string(itemsJSON),
		DeliveryAddress:      aggregate.DeliveryAddress(),
		DeliveryInstructions: aggregate.DeliveryInstructions(),
		Status:               aggregate.Status().String(),
		AssignedChef:         aggregate.AssignedChef(),
		AssignedDriver:       aggregate.AssignedDriver(),
		TotalAmount:          aggregate.Total(),
		CreatedAt:            aggregate.CreatedAt(),
	}, nil
}

// toDomain converts a database DTO back to an order aggregate using
// RestoreOrder, so stored rows pass the same consistency checks as live
// ones.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var storedItems []itemDTO
	if err = json.Unmarshal([]byte(dto.Items), &storedItems); err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(storedItems))
	for _, stored := range storedItems {
		item, itemErr := order.NewItem(stored.SKU, stored.Name, stored.Quantity, stored.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		tenantID,
		dto.CustomerID,
		items,
		dto.DeliveryAddress,
		dto.DeliveryInstructions,
		status,
		dto.AssignedChef,
		dto.AssignedDriver,
		dto.TotalAmount,
		dto.CreatedAt,
	)
}
