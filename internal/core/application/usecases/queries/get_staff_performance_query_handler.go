package queries

import (
	"context"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetStaffPerformanceQueryHandler computes per-worker productivity from the
// availability counters and the workflow ledger.
type GetStaffPerformanceQueryHandler struct {
	db *gorm.DB
}

// NewGetStaffPerformanceQueryHandler creates a handler for staff
// performance reads.
func NewGetStaffPerformanceQueryHandler(db *gorm.DB) GetStaffPerformanceQueryHandler {
	return GetStaffPerformanceQueryHandler{db: db}
}

// Handle executes the query. Only admins may read performance numbers;
// anyone else gets errs.ErrForbidden.
//
// Touched orders are counted through the ledger: each distinct order a
// worker has a step on. Completed tasks come from the release counters, so
// an order a worker was pulled off of lowers their completion rate.
func (h GetStaffPerformanceQueryHandler) Handle(
	ctx context.Context,
	query GetStaffPerformanceQuery,
) ([]StaffPerformanceResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if query.Actor().Role() != kernel.ActorRoleAdmin {
		return nil, errs.NewForbiddenError(query.Actor().ID(), "read staff performance")
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.role,
			s.orders_completed,
			s.total_busy_seconds,
			COALESCE(t.touched, 0) AS touched
		FROM staff_availability s
		LEFT JOIN (
			SELECT assigned_to, COUNT(DISTINCT order_id) AS touched
			FROM workflow_steps
			WHERE tenant_id = ?
			GROUP BY assigned_to
		) t ON t.assigned_to = s.id
		WHERE s.tenant_id = ?
		ORDER BY s.id
	`, query.TenantID().String(), query.TenantID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := make([]StaffPerformanceResponse, 0)

	for rows.Next() {
		var (
			row       StaffPerformanceResponse
			totalBusy int64
			touched   int
		)

		err = rows.Scan(&row.StaffID, &row.Role, &row.CompletedTasks, &totalBusy, &touched)
		if err != nil {
			return nil, err
		}

		if row.CompletedTasks > 0 {
			row.AvgTimeSeconds = float64(totalBusy) / float64(row.CompletedTasks)
		}
		if touched > 0 {
			row.CompletionRate = float64(row.CompletedTasks) / float64(touched) * 100
		}

		report = append(report, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return report, nil
}
