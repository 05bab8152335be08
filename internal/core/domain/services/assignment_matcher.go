package services

import (
	"errors"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/assignment"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/staff"
)

// ErrWorkerNotFound is returned when no suitable worker is available for an
// assignment request. This occurs when no workers are provided, or none of
// them match the request's role while being available for work.
var ErrWorkerNotFound = errors.New("worker not found")

// AssignmentMatcher is a domain service that picks the worker for a pending
// assignment request.
//
// Business rules:
//   - Only workers of the role serving the request's category are considered
//   - Only available workers are considered; busy and offline are skipped
//   - The least-loaded worker wins (fewest completed orders), so work spreads
//     evenly across the shift
//   - Ties break on the lexicographically smallest staff identifier, which
//     makes matching deterministic
//
// The matcher only selects; marking the worker busy and moving the order is
// the caller's job, inside one transaction with the queue removal.
type AssignmentMatcher struct{}

// NewAssignmentMatcher creates a new AssignmentMatcher instance.
func NewAssignmentMatcher() AssignmentMatcher {
	return AssignmentMatcher{}
}

// Match picks the best worker for the given request from the candidates.
// Returns ErrWorkerNotFound when no candidate qualifies.
func (m AssignmentMatcher) Match(request *assignment.Request, workers []*staff.StaffAvailability) (*staff.StaffAvailability, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	role := request.Category().Role()

	var best *staff.StaffAvailability
	for _, worker := range workers {
		if err := worker.Validate(); err != nil {
			return nil, err
		}

		if worker.Role() != role || worker.Status() != staff.StatusAvailable {
			continue
		}

		if best == nil ||
			worker.OrdersCompleted() < best.OrdersCompleted() ||
			(worker.OrdersCompleted() == best.OrdersCompleted() && worker.ID() < best.ID()) {
			best = worker
		}
	}

	if best == nil {
		return nil, ErrWorkerNotFound
	}

	return best, nil
}
