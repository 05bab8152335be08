package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists orders for an actor straight from the
// database.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order list reads.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are newest first; orders outside the
// actor's visibility are simply absent from the list.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
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
		WHERE tenant_id = ?
	`
	args := []any{query.TenantID().String()}

	if statuses := query.Statuses(); len(statuses) > 0 {
		placeholders := make([]string, 0, len(statuses))
		for _, status := range statuses {
			placeholders = append(placeholders, "?")
			args = append(args, status.String())
		}
		sqlText += " AND status IN (" + strings.Join(placeholders, ", ") + ")"
	}

	if clause, clauseArgs := visibilityClause(query.Actor()); clause != "" {
		sqlText += " AND " + clause
		args = append(args, clauseArgs...)
	}

	sqlText += " ORDER BY created_at DESC, id"

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrderQueryResponse, 0)

	for rows.Next() {
		response, scanErr := scanOrderRow(rows.Scan)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
