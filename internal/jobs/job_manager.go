// Package jobs provides the engine's scheduled background tasks, built on
// github.com/robfig/cron/v3. Jobs are coordinated through JobManager; a job
// that fails to start stops any already running jobs.
package jobs

import (
	"fmt"
	"log/slog"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/cache"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	cacheCleanupJob *CacheCleanupJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(store *cache.Cache, logger *slog.Logger) *JobManager {
	return &JobManager{
		cacheCleanupJob: NewCacheCleanupJob(store, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.cacheCleanupJob.Start(); err != nil {
		return fmt.Errorf("failed to start cache cleanup job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.cacheCleanupJob.Stop()
}
