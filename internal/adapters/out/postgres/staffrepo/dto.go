// Package staffrepo provides data transfer objects and mapping functions
// for staff availability persistence.
package staffrepo

import (
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/staff"

	"github.com/google/uuid"
)

// StaffDTO represents the database structure for a staff member's
// availability record. Staff IDs are tenant-scoped, so the primary key is
// the (tenant, id) pair.
type StaffDTO struct {
	TenantID         string     `gorm:"type:varchar(64);primaryKey;index:idx_staff_tenant_role_status,priority:1"`
	ID               string     `gorm:"primaryKey"`
	Role             string     `gorm:"type:varchar(16);index:idx_staff_tenant_role_status,priority:2"`
	Status           string     `gorm:"type:varchar(16);index:idx_staff_tenant_role_status,priority:3"`
	CurrentOrderID   *uuid.UUID `gorm:"type:uuid"`
	OrdersCompleted  int
	TotalBusySeconds int64
}

// TableName overrides GORM's default naming convention.
func (StaffDTO) TableName() string {
	return "staff_availability"
}

// fromDomain converts a staff availability aggregate to its database
// representation.
func fromDomain(worker *staff.StaffAvailability) StaffDTO {
	var currentOrderID *uuid.UUID
	if id := worker.CurrentOrderID(); id != nil {
		raw := id.Bytes()
		currentOrderID = &raw
	}

	return StaffDTO{
		TenantID:         worker.TenantID().String(),
		ID:               worker.ID(),
		Role:             worker.Role().String(),
		Status:           worker.Status().String(),
		CurrentOrderID:   currentOrderID,
		OrdersCompleted:  worker.OrdersCompleted(),
		TotalBusySeconds: worker.TotalBusySeconds(),
	}
}

// toDomain converts a database DTO back to a staff availability aggregate.
func toDomain(dto StaffDTO) (*staff.StaffAvailability, error) {
	tenantID, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return nil, err
	}

	role, err := staff.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}

	status, err := staff.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var currentOrderID *kernel.UUID
	if dto.CurrentOrderID != nil {
		orderID, orderErr := kernel.UUIDFromBytes((*dto.CurrentOrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		currentOrderID = &orderID
	}

	return staff.RestoreStaffAvailability(
		dto.ID,
		tenantID,
		role,
		status,
		currentOrderID,
		dto.OrdersCompleted,
		dto.TotalBusySeconds,
	)
}
