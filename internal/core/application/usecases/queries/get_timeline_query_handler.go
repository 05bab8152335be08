package queries

import (
	"context"
	"database/sql"
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetTimelineQueryHandler reads an order's workflow ledger from the
// database.
type GetTimelineQueryHandler struct {
	db *gorm.DB
}

// NewGetTimelineQueryHandler creates a handler for timeline reads.
func NewGetTimelineQueryHandler(db *gorm.DB) GetTimelineQueryHandler {
	return GetTimelineQueryHandler{db: db}
}

// Handle executes the query. Every order has at least one ledger step, so
// an empty ledger means the order does not exist on this tenant.
func (h GetTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetTimelineQuery,
) (GetTimelineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTimelineQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			step_number,
			status,
			assigned_to,
			started_at,
			completed_at,
			notes
		FROM workflow_steps
		WHERE tenant_id = ? AND order_id = ?
		ORDER BY step_number
	`, query.TenantID().String(), query.OrderID().String()).Rows()
	if err != nil {
		return GetTimelineQueryResponse{}, err
	}
	defer rows.Close()

	response := GetTimelineQueryResponse{
		OrderID: query.OrderID(),
		Steps:   make([]TimelineStepResponse, 0),
	}

	for rows.Next() {
		var (
			step        TimelineStepResponse
			startedAt   time.Time
			completedAt sql.NullTime
			notes       sql.NullString
		)

		err = rows.Scan(
			&step.StepNumber,
			&step.Status,
			&step.AssignedTo,
			&startedAt,
			&completedAt,
			&notes,
		)
		if err != nil {
			return GetTimelineQueryResponse{}, err
		}

		step.StartedAt = startedAt
		if notes.Valid {
			step.Notes = notes.String
		}
		if completedAt.Valid {
			closedAt := completedAt.Time
			duration := int64(closedAt.Sub(startedAt).Seconds())
			step.CompletedAt = &closedAt
			step.DurationSeconds = &duration
			response.TotalDurationSeconds += duration
		}

		response.Steps = append(response.Steps, step)
	}

	if err = rows.Err(); err != nil {
		return GetTimelineQueryResponse{}, err
	}

	if len(response.Steps) == 0 {
		return GetTimelineQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}

	return response, nil
}
