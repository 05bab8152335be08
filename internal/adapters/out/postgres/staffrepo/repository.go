package staffrepo

import (
	"context"
	"errors"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/staff"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStaffRepository implements StaffRepository using GORM.
type GormStaffRepository struct {
	db *gorm.DB
}

// NewGormStaffRepository creates a new GORM staff availability repository.
func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// Add saves a new staff availability record to the database.
func (r *GormStaffRepository) Add(ctx context.Context, worker *staff.StaffAvailability) error {
	if err := worker.Validate(); err != nil {
		return err
	}

	dto := fromDomain(worker)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing staff availability record, guarded by the status
// the caller read it in. Matching zero rows means a concurrent writer flipped
// the worker first; the caller gets errs.ErrConcurrencyConflict and decides
// whether to retry or report.
func (r *GormStaffRepository) Update(ctx context.Context, worker *staff.StaffAvailability, expectedStatus staff.Status) error {
	if err := worker.Validate(); err != nil {
		return err
	}
	if err := expectedStatus.Validate(); err != nil {
		return err
	}

	dto := fromDomain(worker)

	// Map form so releasing a worker writes NULL into current_order_id.
	result := r.db.WithContext(ctx).Model(&StaffDTO{}).
		Where("tenant_id = ? AND id = ? AND status = ?",
			dto.TenantID, dto.ID, expectedStatus.String()).
		Updates(map[string]any{
			"status":             dto.Status,
			"current_order_id":   dto.CurrentOrderID,
			"orders_completed":   dto.OrdersCompleted,
			"total_busy_seconds": dto.TotalBusySeconds,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.ErrConcurrencyConflict
	}

	return nil
}

// Get retrieves a staff member's availability record by tenant and ID.
func (r *GormStaffRepository) Get(ctx context.Context, tenantID kernel.TenantID, id string) (*staff.StaffAvailability, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, staff.ErrStaffIDIsRequired
	}

	var dto StaffDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND id = ?", tenantID.String(), id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("staff member", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllAvailableByRole retrieves every available worker of a role on a
// tenant, ID ascending so the matcher's tie-break is stable.
func (r *GormStaffRepository) GetAllAvailableByRole(
	ctx context.Context,
	tenantID kernel.TenantID,
	role staff.Role,
) ([]*staff.StaffAvailability, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}
	if err := role.Validate(); err != nil {
		return nil, err
	}

	var dtos []StaffDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND role = ? AND status = ?",
			tenantID.String(), role.String(), staff.StatusAvailable.String()).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	workers := make([]*staff.StaffAvailability, 0, len(dtos))
	for _, dto := range dtos {
		worker, workerErr := toDomain(dto)
		if workerErr != nil {
			return nil, workerErr
		}
		workers = append(workers, worker)
	}

	return workers, nil
}
