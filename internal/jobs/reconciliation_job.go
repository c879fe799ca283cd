package jobs

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ReconciliationJob runs the delivery reconciliation sweep on a schedule.
// A sweep that outlives its interval is not overlapped; the next run is
// skipped instead.
type ReconciliationJob struct {
	handler  commands.ReconcileDeliveriesCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewReconciliationJob creates the reconciliation job. schedule is a standard
// five-field cron expression.
func NewReconciliationJob(
	handler commands.ReconcileDeliveriesCommandHandler,
	schedule string,
	logger *slog.Logger,
) *ReconciliationJob {
	jobLogger := logger.With("component", "reconciliation_job")

	return &ReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.DefaultLogger),
		)),
		logger: jobLogger,
	}
}

// Start schedules the reconciliation sweep and starts the cron runner.
func (j *ReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewReconcileDeliveriesCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Reconciliation sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop stops the reconciliation job.
func (j *ReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Reconciliation job stopped")
}
