package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// orphanCutoff is how old an unreferenced company logo upload must be
// before the reconcile job reports it. Uploads happen before the order
// insert, so young files may belong to in-flight requests.
const orphanCutoff = 24 * time.Hour

// initJobs wires the periodic maintenance jobs. File uploads are not
// rolled back when the following database write fails; the nightly
// sweep logs the leftovers so operators can reclaim them.
func (a *Application) initJobs() {
	a.sched = cron.New()

	_, err := a.sched.AddFunc("@daily", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		orphans, err := a.orders.ReconcileOrphanLogos(ctx, orphanCutoff)
		if err != nil {
			zap.L().Error("orphan upload reconcile failed", zap.Error(err))
			return
		}
		if len(orphans) > 0 {
			zap.L().Warn("orphan upload reconcile finished", zap.Int("count", len(orphans)))
		}
	})
	if err != nil {
		zap.L().Error("failed to schedule orphan reconcile job", zap.Error(err))
	}
}
