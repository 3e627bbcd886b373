package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// monitorSchedule runs the sweep every ten seconds. Frequent enough to catch
// a courier drifting off the corridor quickly; the per-route alert cooldown
// keeps dispatchers from being flooded.
const monitorSchedule = "*/10 * * * * *"

// DeviationMonitorJob periodically sweeps all routes in progress and records
// how far each courier sits from the planned corridor.
type DeviationMonitorJob struct {
	handler commands.MonitorDeviationsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDeviationMonitorJob creates the scheduled deviation sweep.
func NewDeviationMonitorJob(
	handler commands.MonitorDeviationsCommandHandler, logger *slog.Logger,
) *DeviationMonitorJob {
	return &DeviationMonitorJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "deviation_monitor_job"),
	}
}

// Start schedules the sweep.
func (j *DeviationMonitorJob) Start() error {
	_, err := j.cron.AddFunc(monitorSchedule, func() {
		ctx := context.Background()
		cmd := commands.NewMonitorDeviationsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Deviation monitor sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Deviation monitor job started (sweeping every 10 seconds)")
	return nil
}

// Stop stops the sweep.
func (j *DeviationMonitorJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Deviation monitor job stopped")
}
