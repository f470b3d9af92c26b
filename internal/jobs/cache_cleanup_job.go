package jobs

import (
	"context"
	"log/slog"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/cache"

	"github.com/robfig/cron/v3"
)

// CacheCleanupJob periodically sweeps expired entries out of the provider
// cache. Expiry is otherwise lazy, so without the sweep entries for keys that
// are never read again would sit in memory until process restart.
type CacheCleanupJob struct {
	store  *cache.Cache
	cron   *cron.Cron
	logger *slog.Logger
}

// NewCacheCleanupJob creates a job that sweeps the given cache every minute.
func NewCacheCleanupJob(store *cache.Cache, logger *slog.Logger) *CacheCleanupJob {
	return &CacheCleanupJob{
		store:  store,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "cache_cleanup_job"),
	}
}

// Start begins the cleanup job to run at the top of every minute.
func (j *CacheCleanupJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		removed := j.store.Sweep()
		if removed > 0 {
			j.logger.InfoContext(ctx, "Swept expired cache entries",
				"removed", removed, "remaining", j.store.Len())
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Cache cleanup job started (running every minute)")
	return nil
}

// Stop stops the cleanup job.
func (j *CacheCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Cache cleanup job stopped")
}
