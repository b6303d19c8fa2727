package jobs

import (
	"database/sql"

	"gearshare-booking-engine/internal/config"
	"gearshare-booking-engine/internal/logger"
)

// JobRunner coordinates all scheduled maintenance jobs.
type JobRunner struct {
	db     *sql.DB
	config *config.Config
}

func NewJobRunner(db *sql.DB, cfg *config.Config) *JobRunner {
	return &JobRunner{db: db, config: cfg}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery so one bad
// run cannot take the cron process down.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once, for manual execution via -run-once.
func (jr *JobRunner) RunAll() {
	jr.ExpireLapsedReservations()
	jr.ReapStaleLocks()
}
