package queries

import (
	"context"
	"database/sql"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/staff"

	"gorm.io/gorm"
)

// GetStaffAvailabilityQueryHandler reads the tenant's staff roster from the
// database.
type GetStaffAvailabilityQueryHandler struct {
	db *gorm.DB
}

// NewGetStaffAvailabilityQueryHandler creates a handler for roster reads.
func NewGetStaffAvailabilityQueryHandler(db *gorm.DB) GetStaffAvailabilityQueryHandler {
	return GetStaffAvailabilityQueryHandler{db: db}
}

// Handle executes the query and groups the roster by availability.
func (h GetStaffAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query GetStaffAvailabilityQuery,
) (GetStaffAvailabilityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStaffAvailabilityQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, role, status, current_order_id, orders_completed
		FROM staff_availability
		WHERE tenant_id = ?
		ORDER BY id
	`, query.TenantID().String()).Rows()
	if err != nil {
		return GetStaffAvailabilityQueryResponse{}, err
	}
	defer rows.Close()

	response := GetStaffAvailabilityQueryResponse{
		Available: make([]StaffMemberResponse, 0),
		Busy:      make([]StaffMemberResponse, 0),
		Offline:   make([]StaffMemberResponse, 0),
	}

	for rows.Next() {
		var member StaffMemberResponse
		var currentOrder sql.NullString

		err = rows.Scan(&member.StaffID, &member.Role, &member.Status, &currentOrder, &member.OrdersCompleted)
		if err != nil {
			return GetStaffAvailabilityQueryResponse{}, err
		}

		if currentOrder.Valid {
			orderID, idErr := kernel.UUIDFromString(currentOrder.String)
			if idErr != nil {
				return GetStaffAvailabilityQueryResponse{}, idErr
			}
			member.CurrentOrderID = &orderID
		}

		switch member.Status {
		case staff.StatusAvailable.String():
			response.Available = append(response.Available, member)
			response.AvailableCount++
		case staff.StatusBusy.String():
			response.Busy = append(response.Busy, member)
			response.BusyCount++
		case staff.StatusOffline.String():
			response.Offline = append(response.Offline, member)
			response.OfflineCount++
		}
	}

	if err = rows.Err(); err != nil {
		return GetStaffAvailabilityQueryResponse{}, err
	}

	return response, nil
}
