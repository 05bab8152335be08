package queries

import (
	"context"
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const recentOrdersLimit = 10

// GetDashboardMetricsQueryHandler aggregates the tenant's order book into
// dashboard counters.
type GetDashboardMetricsQueryHandler struct {
	db *gorm.DB
}

// NewGetDashboardMetricsQueryHandler creates a handler for dashboard reads.
func NewGetDashboardMetricsQueryHandler(db *gorm.DB) GetDashboardMetricsQueryHandler {
	return GetDashboardMetricsQueryHandler{db: db}
}

// Handle executes the query. Revenue counts delivered orders only; an order
// that failed mid-flight never contributed revenue.
func (h GetDashboardMetricsQueryHandler) Handle(
	ctx context.Context,
	query GetDashboardMetricsQuery,
) (GetDashboardMetricsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDashboardMetricsQueryResponse{}, err
	}

	response := GetDashboardMetricsQueryResponse{
		StatusCounts: make(map[string]int),
		RecentOrders: make([]RecentOrderResponse, 0, recentOrdersLimit),
	}

	if err := h.collectStatusCounts(ctx, query.TenantID(), &response); err != nil {
		return GetDashboardMetricsQueryResponse{}, err
	}
	if err := h.collectRevenue(ctx, query.TenantID(), &response); err != nil {
		return GetDashboardMetricsQueryResponse{}, err
	}
	if err := h.collectRecentOrders(ctx, query.TenantID(), &response); err != nil {
		return GetDashboardMetricsQueryResponse{}, err
	}

	return response, nil
}

func (h GetDashboardMetricsQueryHandler) collectStatusCounts(
	ctx context.Context,
	tenantID kernel.TenantID,
	response *GetDashboardMetricsQueryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*)
		FROM orders
		WHERE tenant_id = ?
		GROUP BY status
	`, tenantID.String()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int

		if err = rows.Scan(&status, &count); err != nil {
			return err
		}

		response.StatusCounts[status] = count

		switch status {
		case order.Delivered.String():
			response.DeliveredCount = count
		case order.Failed.String():
			response.FailedCount = count
		default:
			response.ActiveOrders += count
		}
	}

	return rows.Err()
}

func (h GetDashboardMetricsQueryHandler) collectRevenue(
	ctx context.Context,
	tenantID kernel.TenantID,
	response *GetDashboardMetricsQueryResponse,
) error {
	row := h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE tenant_id = ? AND status = ?
	`, tenantID.String(), order.Delivered.String()).Row()

	return row.Scan(&response.TotalRevenue)
}

func (h GetDashboardMetricsQueryHandler) collectRecentOrders(
	ctx context.Context,
	tenantID kernel.TenantID,
	response *GetDashboardMetricsQueryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, customer_id, status, total_amount, created_at
		FROM orders
		WHERE tenant_id = ?
		ORDER BY created_at DESC, id
		LIMIT ?
	`, tenantID.String(), recentOrdersLimit).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var recent RecentOrderResponse
		var id uuid.UUID
		var createdAt time.Time

		err = rows.Scan(&id, &recent.CustomerID, &recent.Status, &recent.TotalAmount, &createdAt)
		if err != nil {
			return err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return idErr
		}
		recent.ID = orderID
		recent.CreatedAt = createdAt

		response.RecentOrders = append(response.RecentOrders, recent)
	}

	return rows.Err()
}
