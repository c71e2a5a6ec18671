package cron

import (
	"context"
	"fmt"
)

// Start registers the sweep job and starts the scheduler. Jobs inherit ctx values but outlive its cancellation until Stop.
func (s *scheduler) Start(ctx context.Context) error {
	jobCtx := context.WithoutCancel(ctx)

	if _, err := s.cron.AddFunc(s.schedule, func() { s.runSweep(jobCtx) }); err != nil {
		return fmt.Errorf("invalid retention schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.l.Infof(ctx, "retention.delivery.cron.Start: Retention sweep scheduled (%s UTC)", s.schedule)
	return nil
}

func (s *scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.l.Info(context.Background(), "retention.delivery.cron.Stop: Retention scheduler stopped")
}

func (s *scheduler) runSweep(ctx context.Context) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	out, err := s.uc.Sweep(ctx)
	if err != nil {
		s.l.Errorf(ctx, "retention.delivery.cron.runSweep: Sweep finished with errors: %v", err)
		return
	}
	if out.Skipped {
		return
	}
	s.l.Infof(ctx, "retention.delivery.cron.runSweep: Sweep done in %s", out.FinishedAt.Sub(out.StartedAt))
}
