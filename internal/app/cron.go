package app

import (
	"context"
	"time"

	pkgcron "github.com/limmud-app/core/internal/pkg/cron"
)

// registerCronJobs registers all scheduled background jobs.
func (a *App) registerCronJobs() {
	retention := time.Duration(a.cfg.Study.PurgeUnsavedAfterHours) * time.Hour
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	batchSize := a.cfg.Study.LinkSweepBatchSize

	a.sched.Register(pkgcron.Job{
		Name:        "purge_unsaved_sources",
		Description: "Delete AI-generated sources nobody kept",
		Interval:    time.Hour,
		Fn: func(ctx context.Context) error {
			_, err := a.catalogSvc.PurgeUnsavedGenerated(ctx, retention)
			return err
		},
	})

	a.sched.Register(pkgcron.Job{
		Name:        "sweep_source_links",
		Description: "Probe stored sefaria links and clear dead ones",
		Interval:    12 * time.Hour,
		Fn: func(ctx context.Context) error {
			return a.catalogSvc.SweepLinks(ctx, batchSize)
		},
	})
}
