package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order read model from the database.
// Uses direct SQL in the CQRS pattern; the write-side aggregate is never
// materialized for reads.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. An order outside the requesting actor's
// visibility behaves exactly like a missing one: errs.ErrObjectNotFound.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	sqlText := `
		SELECT
			id,
			customer_id,
			items,
			delivery_address,
			delivery_instructions,
			status,
			assigned_chef,
			assigned_driver,
			total_amount,
			created_at
		FROM orders
		WHERE tenant_id = ? AND id = ?
	`
	args := []any{query.TenantID().String(), query.OrderID().String()}

	if clause, clauseArgs := visibilityClause(query.Actor()); clause != "" {
		sqlText += " AND " + clause
		args = append(args, clauseArgs...)
	}

	row := h.db.WithContext(ctx).Raw(sqlText, args...).Row()

	response, err := scanOrderRow(row.Scan)
	if err == sql.ErrNoRows {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

// scanOrderRow maps one orders row onto the read model. Shared with the
// order list query, which scans the same column set.
func scanOrderRow(scan func(dest ...any) error) (GetOrderQueryResponse, error) {
	var (
		response     GetOrderQueryResponse
		id           uuid.UUID
		itemsJSON    []byte
		instructions sql.NullString
		chef         sql.NullString
		driver       sql.NullString
		createdAt    time.Time
	)

	err := scan(
		&id,
		&response.CustomerID,
		&itemsJSON,
		&response.DeliveryAddress,
		&instructions,
		&response.Status,
		&chef,
		&driver,
		&response.TotalAmount,
		&createdAt,
	)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.ID = orderID
	response.CreatedAt = createdAt

	if err = json.Unmarshal(itemsJSON, &response.Items); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if instructions.Valid {
		response.DeliveryInstructions = instructions.String
	}
	if chef.Valid {
		response.AssignedChef = &chef.String
	}
	if driver.Valid {
		response.AssignedDriver = &driver.String
	}

	return response, nil
}
