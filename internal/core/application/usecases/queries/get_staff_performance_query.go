package queries

import (
	"errors"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/pkg/guard"
)

var ErrGetStaffPerformanceQueryIsNotConstructed = errors.New(
	"GetStaffPerformanceQuery must be created via NewGetStaffPerformanceQuery constructor",
)

// GetStaffPerformanceQuery retrieves per-worker productivity numbers for a
// tenant. Admins only: the numbers feed performance reviews.
type GetStaffPerformanceQuery struct {
	tenantID kernel.TenantID
	actor    kernel.Actor
	guard    guard.ConstructorGuard
}

// NewGetStaffPerformanceQuery creates a staff performance query.
func NewGetStaffPerformanceQuery(tenantID kernel.TenantID, actor kernel.Actor) (GetStaffPerformanceQuery, error) {
	var errs error

	if err := tenantID.Validate(); err != nil {
		errs = errors.Join(errs, err)
	}
	if err := actor.Validate(); err != nil {
		errs = errors.Join(errs, err)
	}

	if errs != nil {
		return GetStaffPerformanceQuery{}, errs
	}

	return GetStaffPerformanceQuery{
		tenantID: tenantID,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// TenantID returns the tenant scope of the query.
func (q GetStaffPerformanceQuery) TenantID() kernel.TenantID {
	return q.tenantID
}

// Actor returns who is asking.
func (q GetStaffPerformanceQuery) Actor() kernel.Actor {
	return q.actor
}

// Validate ensures the query was created through the constructor.
func (q GetStaffPerformanceQuery) Validate() error {
	return q.guard.Validate(ErrGetStaffPerformanceQueryIsNotConstructed)
}

// StaffPerformanceResponse is one worker's productivity row.
// CompletionRate is a percentage over every order the worker has appeared
// on; a worker who finished everything they touched reads 100.0.
type StaffPerformanceResponse struct {
	StaffID        string
	Role           string
	CompletedTasks int
	AvgTimeSeconds float64
	CompletionRate float64
}
