package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Refresher repeats the last dashboard action.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler periodically refreshes the dashboard.
type Scheduler struct {
	scheduler *gocron.Scheduler
	target    Refresher
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler. A non-positive interval disables refreshing.
func New(target Refresher, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		target:    target,
		interval:  interval,
		timeout:   30 * time.Second,
		logger:    logger.With("component", "scheduler"),
	}
}

// Start schedules the refresh job and starts the underlying scheduler. The
// first run happens one interval after Start; overlapping runs are skipped.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().SingletonMode().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		s.logger.Debug("refreshing dashboard")
		if err := s.target.Refresh(ctx); err != nil {
			s.logger.Warn("refresh failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
