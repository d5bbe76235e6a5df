package jobs

import (
	"context"
	"log/slog"
	"time"

	"crowdship/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultExpirySchedule runs the expiry job every five minutes.
const DefaultExpirySchedule = "0 */5 * * * *"

// ExpireShipmentsHandler is satisfied by commands.ExpireShipmentsCommandHandler.
type ExpireShipmentsHandler interface {
	Handle(ctx context.Context, cmd commands.ExpireShipmentsCommand) (int, error)
}

// ShipmentExpiryJob cancels open shipments whose desired delivery date has passed,
// so they stop counting against the shopper's open-shipment quota.
type ShipmentExpiryJob struct {
	handler   ExpireShipmentsHandler
	schedule  string
	batchSize int
	timeout   time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewShipmentExpiryJob creates the job. Schedule uses the six-field cron syntax
// with seconds; an empty schedule means DefaultExpirySchedule.
func NewShipmentExpiryJob(handler ExpireShipmentsHandler, schedule string, logger *slog.Logger) *ShipmentExpiryJob {
	if schedule == "" {
		schedule = DefaultExpirySchedule
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ShipmentExpiryJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: commands.DefaultExpiryBatchSize,
		timeout:   time.Minute,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "shipment_expiry_job"),
	}
}

// Start registers the job on its schedule.
func (j *ShipmentExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Shipment expiry job started", "schedule", j.schedule)
	return nil
}

// RunOnce cancels one batch of expired shipments and returns how many were canceled.
func (j *ShipmentExpiryJob) RunOnce(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	cmd, err := commands.NewExpireShipmentsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Shipment expiry job misconfigured", "error", err)
		return 0
	}

	canceled, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Shipment expiry job failed", "error", err)
		return canceled
	}
	if canceled > 0 {
		j.logger.InfoContext(ctx, "Expired shipments canceled", "count", canceled)
	}
	return canceled
}

// Stop stops the schedule and waits for a running batch to finish.
func (j *ShipmentExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Shipment expiry job stopped")
}
