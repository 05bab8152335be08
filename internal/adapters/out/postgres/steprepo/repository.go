package steprepo

import (
	"context"
	"errors"
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/order"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/timeline"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStepRepository implements StepRepository using GORM.
type GormStepRepository struct {
	db *gorm.DB
}

// NewGormStepRepository creates a new GORM workflow ledger repository.
func NewGormStepRepository(db *gorm.DB) *GormStepRepository {
	return &GormStepRepository{db: db}
}

// Add appends a new step to the ledger.
func (r *GormStepRepository) Add(ctx context.Context, step *timeline.WorkflowStep) error {
	if err := step.Validate(); err != nil {
		return err
	}

	dto := fromDomain(step)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes a step's closing fields. Only completed_at and notes ever
// change on a ledger row.
func (r *GormStepRepository) Update(ctx context.Context, step *timeline.WorkflowStep) error {
	if err := step.Validate(); err != nil {
		return err
	}

	dto := fromDomain(step)
	result := r.db.WithContext(ctx).Model(&StepDTO{}).
		Where("order_id = ? AND step_number = ?", dto.OrderID, dto.StepNumber).
		Updates(map[string]any{
			"completed_at": dto.CompletedAt,
			"notes":        dto.Notes,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("workflow step", dto.StepNumber)
	}

	return nil
}

// GetOpenStep retrieves the order's single open ledger step.
func (r *GormStepRepository) GetOpenStep(
	ctx context.Context,
	tenantID kernel.TenantID,
	orderID kernel.UUID,
) (*timeline.WorkflowStep, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto StepDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND order_id = ? AND completed_at IS NULL",
			tenantID.String(), orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("open workflow step", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CountSteps returns how many ledger rows the order has, open or closed.
func (r *GormStepRepository) CountSteps(
	ctx context.Context,
	tenantID kernel.TenantID,
	orderID kernel.UUID,
) (int, error) {
	if err := tenantID.Validate(); err != nil {
		return 0, err
	}
	if err := orderID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&StepDTO{}).
		Where("tenant_id = ? AND order_id = ?", tenantID.String(), orderID.Bytes()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// GetSteps retrieves the order's full ledger in step order.
func (r *GormStepRepository) GetSteps(
	ctx context.Context,
	tenantID kernel.TenantID,
	orderID kernel.UUID,
) ([]*timeline.WorkflowStep, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StepDTO
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_id = ?", tenantID.String(), orderID.Bytes()).
		Order("step_number").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetOpenStepsInStatusBefore retrieves open steps of a status started
// before the cutoff, across all tenants. This is the wait expiry sweep's
// scan; the waits are deployment-wide, not per tenant.
func (r *GormStepRepository) GetOpenStepsInStatusBefore(
	ctx context.Context,
	status order.Status,
	cutoff time.Time,
) ([]*timeline.WorkflowStep, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []StepDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND completed_at IS NULL AND started_at < ?",
			status.String(), cutoff).
		Order("started_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []StepDTO) ([]*timeline.WorkflowStep, error) {
	steps := make([]*timeline.WorkflowStep, 0, len(dtos))
	for _, dto := range dtos {
		step, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}
