package schedule

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// IntervalRunner runs a job immediately and then every Interval until the
// context is cancelled. With a zero Interval it runs the job once, which is
// the mode for an external cron. Runs never overlap inside one process.
type IntervalRunner struct {
	Interval time.Duration
	Logger   *zap.Logger
}

func (r *IntervalRunner) Run(ctx context.Context, job func(context.Context)) {
	// Run immediately once at startup
	job(ctx)

	if r.Interval <= 0 {
		return
	}

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	r.Logger.Info("scheduler started", zap.Duration("interval", r.Interval))

	for {
		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
		// A tick racing a cancel must not start another run.
		if ctx.Err() != nil {
			r.Logger.Info("scheduler stopped")
			return
		}
		job(ctx)
	}
}
