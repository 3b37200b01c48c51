package scheduler

import (
	"time"

	"charlymatloc-backend/internal/jobs"
	"charlymatloc-backend/internal/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner. An
// invalid cron spec is reported instead of being skipped silently.
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler

	// Complete reservations whose rental period has ended
	if _, err := s.cron.AddFunc(cfg.CompleteFinishedReservations, s.jobs.CompleteFinishedReservations); err != nil {
		logger.Error("Failed to register CompleteFinishedReservations job", "error", err, "spec", cfg.CompleteFinishedReservations)
		return err
	}

	// Drop carts left empty
	if _, err := s.cron.AddFunc(cfg.PurgeStaleCarts, s.jobs.PurgeStaleCarts); err != nil {
		logger.Error("Failed to register PurgeStaleCarts job", "error", err, "spec", cfg.PurgeStaleCarts)
		return err
	}

	logger.Info("All cron jobs registered successfully", "count", len(s.cron.Entries()))
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler has jobs registered
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
