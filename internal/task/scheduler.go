package task

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

const sweepInterval = 5 * time.Minute

// OverdueScheduler periodically flips Pending tasks past their due date to
// Overdue, so the status no longer depends on someone updating it by hand.
type OverdueScheduler struct {
	service *TaskService
	logger  *zap.Logger
}

func NewOverdueScheduler(service *TaskService, logger *zap.Logger) *OverdueScheduler {
	return &OverdueScheduler{service: service, logger: logger}
}

// Start runs the sweep loop on the fx lifecycle.
func (s *OverdueScheduler) Start(lc fx.Lifecycle) {
	ticker := time.NewTicker(sweepInterval)
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.logger.Info("starting overdue task scheduler", zap.Duration("interval", sweepInterval))
			go func() {
				sweepCtx := context.Background()
				s.service.SweepOverdue(sweepCtx)
				for {
					select {
					case <-ticker.C:
						s.service.SweepOverdue(sweepCtx)
					case <-done:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.logger.Info("stopping overdue task scheduler")
			ticker.Stop()
			close(done)
			return nil
		},
	})
}
