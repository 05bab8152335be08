package queries

import (
	"errors"
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/guard"
)

var ErrGetDashboardMetricsQueryIsNotConstructed = errors.New(
	"GetDashboardMetricsQuery must be created via NewGetDashboardMetricsQuery constructor",
)

// GetDashboardMetricsQuery retrieves the tenant's operational snapshot:
// order counts per status, delivered revenue, and the most recent orders.
type GetDashboardMetricsQuery struct {
	tenantID kernel.TenantID
	guard    guard.ConstructorGuard
}

// NewGetDashboardMetricsQuery creates a dashboard query for one tenant.
func NewGetDashboardMetricsQuery(tenantID kernel.TenantID) (GetDashboardMetricsQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetDashboardMetricsQuery{}, err
	}

	return GetDashboardMetricsQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// TenantID returns the tenant scope of the query.
func (q GetDashboardMetricsQuery) TenantID() kernel.TenantID {
	return q.tenantID
}

// Validate ensures the query was created through the constructor.
func (q GetDashboardMetricsQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardMetricsQueryIsNotConstructed)
}

// RecentOrderResponse is a dashboard row for one recent order.
type RecentOrderResponse struct {
	ID          kernel.UUID
	CustomerID  string
	Status      string
	TotalAmount float64
	CreatedAt   time.Time
}

// GetDashboardMetricsQueryResponse is the tenant snapshot. StatusCounts
// only carries statuses with at least one order.
type GetDashboardMetricsQueryResponse struct {
	StatusCounts   map[string]int
	ActiveOrders   int
	DeliveredCount int
	FailedCount    int
	TotalRevenue   float64
	RecentOrders   []RecentOrderResponse
}
