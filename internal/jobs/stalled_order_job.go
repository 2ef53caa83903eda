package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// actorLister reports which orders currently have a live state machine.
type actorLister interface {
	ActiveIDs() []kernel.UUID
}

// StalledOrderJob periodically cross-checks persisted in-flight orders
// against the live actor registry. An order that is non-terminal in the
// database but has no actor can never make progress: its payment verdict
// was lost, or the actor died without completing. The job logs these so
// operators can replay the verdict or cancel the order; it never mutates
// state itself.
type StalledOrderJob struct {
	orders   ports.OrderRepository
	actors   actorLister
	minAge   time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
	schedule string
}

// NewStalledOrderJob creates the watchdog. Orders younger than minAge are
// ignored so the job does not flag orders still waiting for their first
// verdict.
func NewStalledOrderJob(
	orders ports.OrderRepository,
	actors actorLister,
	minAge time.Duration,
	schedule string,
	logger *slog.Logger,
) *StalledOrderJob {
	return &StalledOrderJob{
		orders:   orders,
		actors:   actors,
		minAge:   minAge,
		cron:     cron.New(),
		logger:   logger.With("component", "stalled_order_job"),
		schedule: schedule,
	}
}

// Start begins the periodic check.
func (j *StalledOrderJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("stalled order job started", "schedule", j.schedule)
	return nil
}

// Stop stops the periodic check.
func (j *StalledOrderJob) Stop() {
	j.cron.Stop()
	j.logger.Info("stalled order job stopped")
}

func (j *StalledOrderJob) run(ctx context.Context) {
	active, err := j.orders.GetAllActive(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "stalled order check failed", "error", err)
		return
	}

	live := make(map[kernel.UUID]struct{})
	for _, id := range j.actors.ActiveIDs() {
		live[id] = struct{}{}
	}

	cutoff := time.Now().UTC().Add(-j.minAge)
	stalled := j.findStalled(active, live, cutoff)
	for _, aggregate := range stalled {
		j.logger.WarnContext(ctx, "order has no live state machine",
			"orderId", aggregate.ID().String(),
			"status", aggregate.Status().String(),
			"createdAt", aggregate.CreatedAt(),
		)
	}

	if len(stalled) == 0 {
		j.logger.DebugContext(ctx, "no stalled orders", "active", len(active))
	}
}

func (j *StalledOrderJob) findStalled(
	active []*order.Order,
	live map[kernel.UUID]struct{},
	cutoff time.Time,
) []*order.Order {
	var stalled []*order.Order
	for _, aggregate := range active {
		if _, ok := live[aggregate.ID()]; ok {
			continue
		}
		if aggregate.CreatedAt().After(cutoff) {
			continue
		}
		stalled = append(stalled, aggregate)
	}
	return stalled
}
