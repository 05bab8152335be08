package queries

import (
	"errors"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/guard"
)

var ErrGetStaffAvailabilityQueryIsNotConstructed = errors.New(
	"GetStaffAvailabilityQuery must be created via NewGetStaffAvailabilityQuery constructor",
)

// GetStaffAvailabilityQuery retrieves the tenant's staff roster grouped by
// availability, so dispatch screens can show who is free, who is working
// what, and who is off shift.
type GetStaffAvailabilityQuery struct {
	tenantID kernel.TenantID
	guard    guard.ConstructorGuard
}

// NewGetStaffAvailabilityQuery creates a staff roster query for one tenant.
func NewGetStaffAvailabilityQuery(tenantID kernel.TenantID) (GetStaffAvailabilityQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetStaffAvailabilityQuery{}, err
	}

	return GetStaffAvailabilityQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// TenantID returns the tenant scope of the query.
func (q GetStaffAvailabilityQuery) TenantID() kernel.TenantID {
	return q.tenantID
}

// Validate ensures the query was created through the constructor.
func (q GetStaffAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrGetStaffAvailabilityQueryIsNotConstructed)
}

// StaffMemberResponse is one worker on the roster. CurrentOrderID is set
// only while the worker is busy.
type StaffMemberResponse struct {
	StaffID         string
	Role            string
	Status          string
	CurrentOrderID  *kernel.UUID
	OrdersCompleted int
}

// GetStaffAvailabilityQueryResponse is the grouped roster with headline
// counts per group.
type GetStaffAvailabilityQueryResponse struct {
	Available      []StaffMemberResponse
	Busy           []StaffMemberResponse
	Offline        []StaffMemberResponse
	AvailableCount int
	BusyCount      int
	OfflineCount   int
}
