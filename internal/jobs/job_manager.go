// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3. The only job is the stalled order watchdog;
// regular lifecycle progress is driven by the bus and the delivery timers,
// not by polling.
package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"orderflow/internal/core/ports"
)

// stalledOrderSchedule runs the watchdog once a minute. Lost verdicts are
// an operational anomaly; once a minute is tight enough to notice them and
// loose enough to stay invisible in database load.
const stalledOrderSchedule = "* * * * *"

// stalledOrderMinAge keeps freshly created orders out of the watchdog
// while their payment verdict is still legitimately in flight.
const stalledOrderMinAge = 5 * time.Minute

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	stalledOrderJob *StalledOrderJob
}

// NewJobManager creates a job manager wired to the order repository and
// the live actor registry.
func NewJobManager(
	orders ports.OrderRepository,
	actors actorLister,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		stalledOrderJob: NewStalledOrderJob(orders, actors, stalledOrderMinAge, stalledOrderSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.stalledOrderJob.Start(); err != nil {
		return fmt.Errorf("failed to start stalled order job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.stalledOrderJob.Stop()
}
