package ports

import (
	"context"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/staff"
)

// StaffRepository defines the persistence contract for staff availability
// records. Records are keyed by (tenant, staff ID) and are tenant-scoped the
// same way orders are.
type StaffRepository interface {
	// Add persists a new availability record. Used on a staff member's first
	// report; the record must not already exist.
	Add(ctx context.Context, aggregate *staff.StaffAvailability) error

	// Update persists changes to an existing availability record, guarded by
	// the status the caller read the record in. Zero matched rows means a
	// concurrent writer flipped the worker first; the caller gets
	// errs.ErrConcurrencyConflict.
	Update(ctx context.Context, aggregate *staff.StaffAvailability, expectedStatus staff.Status) error

	// Get retrieves an availability record by tenant and staff identifier.
	// Returns errs.ErrObjectNotFound when the staff member never reported.
	Get(ctx context.Context, tenantID kernel.TenantID, id string) (*staff.StaffAvailability, error)

	// GetAllAvailableByRole retrieves the tenant's available workers of the
	// given role, the candidate set the assignment matcher chooses from.
	GetAllAvailableByRole(ctx context.Context, tenantID kernel.TenantID, role staff.Role) ([]*staff.StaffAvailability, error)
}
