package jobs

import (
	"flyerpoints-backend/internal/config"
	"flyerpoints-backend/internal/logger"
	"flyerpoints-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	leaderboard service.LeaderboardService
	config      *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(leaderboard service.LeaderboardService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		leaderboard: leaderboard,
		config:      cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
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

// RunAllWeeklyJobs runs all weekly jobs (for manual execution)
func (jr *JobRunner) RunAllWeeklyJobs() {
	jr.SnapshotLeaderboard()
}
