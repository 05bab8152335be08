package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m4r-ant/200millas-Backend/internal/core/application/usecases/commands"
	"github.com/m4r-ant/200millas-Backend/internal/core/domain/model/assignment"

	"github.com/robfig/cron/v3"
)

// WorkAssignmentJob drains the pending assignment queues. Runs every second
// and matches at most one request per category per tick, keeping each match
// a short transaction.
type WorkAssignmentJob struct {
	handler commands.AssignWorkCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewWorkAssignmentJob creates a job that matches queued cooking and
// delivery requests with available workers.
func NewWorkAssignmentJob(handler commands.AssignWorkCommandHandler, logger *slog.Logger) *WorkAssignmentJob {
	return &WorkAssignmentJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "work_assignment_job"),
	}
}

// Start begins the assignment job to run every second.
func (j *WorkAssignmentJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		j.matchCategory(ctx, assignment.CategoryCooking)
		j.matchCategory(ctx, assignment.CategoryDelivery)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Work assignment job started (running every second)")
	return nil
}

func (j *WorkAssignmentJob) matchCategory(ctx context.Context, category assignment.Category) {
	cmd, err := commands.NewAssignWorkCommand(category)
	if err != nil {
		j.logger.ErrorContext(ctx, "Work assignment command invalid", "error", err)
		return
	}

	if err = j.handler.Handle(ctx, cmd); err != nil {
		// An empty queue or a fully busy roster is the normal idle state.
		if !errors.Is(err, commands.ErrNoRequestFound) && !errors.Is(err, commands.ErrNoWorkerFound) {
			j.logger.ErrorContext(ctx, "Work assignment job failed",
				"category", category.String(), "error", err)
		}
	}
}

// Stop stops the work assignment job.
func (j *WorkAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Work assignment job stopped")
}
