// Package ports defines repository interfaces for the order workflow domain.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// All reads and writes are tenant-scoped; an order belonging to another
// tenant behaves exactly like a missing order.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, but only while
	// the stored row is still in expectedStatus. The guard makes every
	// transition a conditional write: when a concurrent transition got there
	// first the row no longer matches and Update returns
	// errs.ErrConcurrencyConflict without touching anything.
	Update(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error

	// Get retrieves an order aggregate by tenant and identifier.
	// Returns errs.ErrObjectNotFound when the order does not exist in this tenant.
	Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*order.Order, error)
}
