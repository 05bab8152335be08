package jobs

import (
	"fmt"
	"log/slog"

	"github.com/m4r-ant/200millas-Backend/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	workAssignmentJob *WorkAssignmentJob
	waitExpiryJob     *WaitExpiryJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	assignWorkHandler commands.AssignWorkCommandHandler,
	expireWaitsHandler commands.ExpireWaitsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		workAssignmentJob: NewWorkAssignmentJob(assignWorkHandler, logger),
		waitExpiryJob:     NewWaitExpiryJob(expireWaitsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.workAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start work assignment job: %w", err)
	}

	if err := jm.waitExpiryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.workAssignmentJob.Stop()
		return fmt.Errorf("failed to start wait expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.waitExpiryJob.Stop()
	jm.workAssignmentJob.Stop()
}
