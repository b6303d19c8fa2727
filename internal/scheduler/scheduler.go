package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"gearshare-booking-engine/internal/jobs"
	"gearshare-booking-engine/internal/logger"
)

// Scheduler manages cron job scheduling.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a scheduler wired to the provided job runner.
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{cron: c, jobs: jobRunner}
	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config()

	if _, err := s.cron.AddFunc(cfg.Scheduler.ExpireLapsedReservations, s.jobs.ExpireLapsedReservations); err != nil {
		logger.Error("Failed to register ExpireLapsedReservations job", "error", err)
	}

	// Lock rows live in postgres only under that backend; memory and
	// redis locks expire on their own.
	if cfg.Lock.Backend == "postgres" {
		if _, err := s.cron.AddFunc(cfg.Scheduler.ReapStaleLocks, s.jobs.ReapStaleLocks); err != nil {
			logger.Error("Failed to register ReapStaleLocks job", "error", err)
		}
	}

	logger.Info("All cron jobs registered")
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
}

// Stop gracefully stops the cron scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning reports whether any jobs are registered.
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
