package assignmentrepo

import (
	"context"
	"errors"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/assignment"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GORM assignment queue
// repository.
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Add enqueues an assignment request. Enqueueing the same (order, category)
// pair twice is a no-op, so retried workflows never double-queue.
func (r *GormAssignmentRepository) Add(ctx context.Context, request *assignment.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto := fromDomain(request)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}

// GetFirstPending retrieves the oldest queued request of a category, order
// ID breaking ties for a deterministic queue head.
func (r *GormAssignmentRepository) GetFirstPending(
	ctx context.Context,
	category assignment.Category,
) (*assignment.Request, error) {
	if err := category.Validate(); err != nil {
		return nil, err
	}

	var dto RequestDTO
	err := r.db.WithContext(ctx).
		Where("category = ?", category.String()).
		Order("enqueued_at, order_id").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment request", category.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Remove deletes a queued request. Removing an absent request is a no-op:
// the queue converges to the same state either way.
func (r *GormAssignmentRepository) Remove(
	ctx context.Context,
	orderID kernel.UUID,
	category assignment.Category,
) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := category.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("order_id = ? AND category = ?", orderID.Bytes(), category.String()).
		Delete(&RequestDTO{}).Error
}
