package ports

import (
	"context"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/assignment"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for the assignment
// queues. At most one pending request per (order, category) exists at a time.
type AssignmentRepository interface {
	// Add enqueues a request. Enqueueing is idempotent: a request for an
	// (order, category) pair that is already queued is a no-op, so retried
	// transitions never produce duplicate work.
	Add(ctx context.Context, request *assignment.Request) error

	// GetFirstPending retrieves the oldest pending request in the category,
	// ties broken by the smallest order identifier. Returns
	// errs.ErrObjectNotFound when the queue is empty.
	GetFirstPending(ctx context.Context, category assignment.Category) (*assignment.Request, error)

	// Remove deletes the request for the (order, category) pair. Removing an
	// absent request is a no-op.
	Remove(ctx context.Context, orderID kernel.UUID, category assignment.Category) error
}
