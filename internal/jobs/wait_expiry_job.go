package jobs

import (
	"context"
	"log/slog"

	"github.com/m4r-ant/200millas-Backend/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// WaitExpiryJob sweeps the bounded wait timers. Runs every five seconds;
// the waits are minutes long, so sub-second resolution buys nothing.
type WaitExpiryJob struct {
	handler commands.ExpireWaitsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewWaitExpiryJob creates a job that advances orders stuck past their
// configured waits.
func NewWaitExpiryJob(handler commands.ExpireWaitsCommandHandler, logger *slog.Logger) *WaitExpiryJob {
	return &WaitExpiryJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "wait_expiry_job"),
	}
}

// Start begins the wait expiry job.
func (j *WaitExpiryJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()

		if err := j.handler.Handle(ctx, commands.NewExpireWaitsCommand()); err != nil {
			j.logger.ErrorContext(ctx, "Wait expiry sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Wait expiry job started (running every five seconds)")
	return nil
}

// Stop stops the wait expiry job.
func (j *WaitExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Wait expiry job stopped")
}
