// Package assignmentrepo provides data transfer objects and mapping
// functions for the pending assignment queues.
package assignmentrepo

import (
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/assignment"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// RequestDTO represents one queued assignment request. The (order,
// category) primary key is what makes enqueueing idempotent.
type RequestDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Category   string    `gorm:"type:varchar(16);primaryKey;index:idx_requests_category_enqueued,priority:1"`
	TenantID   string    `gorm:"type:varchar(64)"`
	EnqueuedAt time.Time `gorm:"index:idx_requests_category_enqueued,priority:2"`
}

// TableName overrides GORM's default naming convention.
func (RequestDTO) TableName() string {
	return "assignment_requests"
}

// fromDomain converts an assignment request to its database representation.
func fromDomain(request *assignment.Request) RequestDTO {
	return RequestDTO{
		OrderID:    request.OrderID().Bytes(),
		Category:   request.Category().String(),
		TenantID:   request.TenantID().String(),
		EnqueuedAt: request.EnqueuedAt(),
	}
}

// toDomain converts a database DTO back to an assignment request.
func toDomain(dto RequestDTO) (*assignment.Request, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return nil, err
	}

	category, err := assignment.ParseCategory(dto.Category)
	if err != nil {
		return nil, err
	}

	return assignment.NewRequest(orderID, tenantID, category, dto.EnqueuedAt)
}
