// Package steprepo provides data transfer objects and mapping functions for
// the workflow ledger. Each row is one step an order passed through; the
// ledger is append-only except for closing a step.
package steprepo

import (
	"time"

	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/kernel"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/order"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/timeline"

	"github.com/google/uuid"
)

// StepDTO represents one workflow ledger row. The wait expiry sweep scans
// open steps by status and age, hence the partial-looking index on status
// and completed_at.
type StepDTO struct {
	OrderID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	StepNumber  int       `gorm:"primaryKey"`
	TenantID    string    `gorm:"type:varchar(64);index"`
	Status      string    `gorm:"type:varchar(16);index:idx_steps_status_open,priority:1"`
	AssignedTo  string    `gorm:"index"`
	StartedAt   time.Time
	CompletedAt *time.Time `gorm:"index:idx_steps_status_open,priority:2"`
	Notes       string
}

// TableName overrides GORM's default naming convention.
func (StepDTO) TableName() string {
	return "workflow_steps"
}

// fromDomain converts a workflow step to its database representation.
func fromDomain(step *timeline.WorkflowStep) StepDTO {
	return StepDTO{
		OrderID:     step.OrderID().Bytes(),
		StepNumber:  step.StepNumber(),
		TenantID:    step.TenantID().String(),
		Status:      step.Status().String(),
		AssignedTo:  step.AssignedTo(),
		StartedAt:   step.StartedAt(),
		CompletedAt: step.CompletedAt(),
		Notes:       step.Notes(),
	}
}

// toDomain converts a database DTO back to a workflow step.
func toDomain(dto StepDTO) (*timeline.WorkflowStep, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return timeline.RestoreWorkflowStep(
		orderID,
		tenantID,
		dto.StepNumber,
		status,
		dto.AssignedTo,
		dto.StartedAt,
		dto.CompletedAt,
		dto.Notes,
	)
}
