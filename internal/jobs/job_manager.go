package jobs

import (
	"fmt"
	"log/slog"
)

type scheduledJob interface {
	Start() error
	Stop()
}

type namedJob struct {
	name string
	job  scheduledJob
}

// JobManager owns the background jobs of the marketplace. Jobs start in
// registration order and stop in reverse.
type JobManager struct {
	jobs    []namedJob
	started []namedJob
	logger  *slog.Logger
}

func NewJobManager(
	expireShipmentsHandler ExpireShipmentsHandler,
	expirySchedule string,
	logger *slog.Logger,
) *JobManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobManager{
		jobs: []namedJob{
			{name: "shipment expiry", job: NewShipmentExpiryJob(expireShipmentsHandler, expirySchedule, logger)},
		},
		logger: logger.With("component", "job_manager"),
	}
}

// StartAll starts every job. When one fails, the jobs already running are
// stopped before the error is returned.
func (jm *JobManager) StartAll() error {
	for _, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
		jm.started = append(jm.started, j)
	}
	jm.logger.Info("background jobs started", "count", len(jm.started))
	return nil
}

// StopAll stops the running jobs and waits for in-flight runs.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].job.Stop()
	}
	jm.started = nil
}
